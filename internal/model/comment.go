package model

import "time"

// Comment is a reply to a review.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ReviewID  uint      `json:"-" gorm:"not null;index"`
	AuthorID  uint      `json:"-" gorm:"not null"`
	Author    *User     `json:"-" gorm:"foreignKey:AuthorID"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}
