package model

import "time"

// Review is a scored write-up of a title. The composite unique index is the
// authoritative guard for the one-review-per-author-per-title rule; the
// service layer's existence check is only a fast path.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TitleID   uint      `json:"-" gorm:"not null;uniqueIndex:idx_reviews_title_author"`
	AuthorID  uint      `json:"-" gorm:"not null;uniqueIndex:idx_reviews_title_author"`
	Author    *User     `json:"-" gorm:"foreignKey:AuthorID"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	Score     int       `json:"score" gorm:"not null"`
	CreatedAt time.Time `json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}
