package router

import (
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"reviewhub/internal/auth"
	"reviewhub/internal/config"
	"reviewhub/internal/handler"
	"reviewhub/internal/model"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	catalogHandler *handler.CatalogHandler,
	titleHandler *handler.TitleHandler,
	reviewHandler *handler.ReviewHandler,
	commentHandler *handler.CommentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/token", authHandler.Token)

	api.GET("/categories", catalogHandler.ListCategories)
	api.GET("/genres", catalogHandler.ListGenres)
	api.GET("/titles", titleHandler.ListTitles)
	api.GET("/titles/:id", titleHandler.GetTitle)
	api.GET("/titles/:title_id/reviews", reviewHandler.ListReviews)
	api.GET("/titles/:title_id/reviews/:id", reviewHandler.GetReview)
	api.GET("/titles/:title_id/reviews/:review_id/comments", commentHandler.ListComments)
	api.GET("/titles/:title_id/reviews/:review_id/comments/:id", commentHandler.GetComment)

	// Partial semantics are forced through PATCH
	api.PUT("/titles/:title_id/reviews/:id", handler.MethodNotAllowed)
	api.PUT("/titles/:title_id/reviews/:review_id/comments/:id", handler.MethodNotAllowed)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/users/me", userHandler.GetMe)
	secured.PATCH("/users/me", userHandler.UpdateMe)

	secured.GET("/users", userHandler.ListUsers)
	secured.POST("/users", userHandler.CreateUser)
	secured.GET("/users/:username", userHandler.GetUser)
	secured.PATCH("/users/:username", userHandler.UpdateUser)
	secured.DELETE("/users/:username", userHandler.DeleteUser)

	secured.POST("/categories", catalogHandler.CreateCategory)
	secured.DELETE("/categories/:slug", catalogHandler.DeleteCategory)
	secured.POST("/genres", catalogHandler.CreateGenre)
	secured.DELETE("/genres/:slug", catalogHandler.DeleteGenre)

	secured.POST("/titles", titleHandler.CreateTitle)
	secured.PATCH("/titles/:id", titleHandler.UpdateTitle)
	secured.DELETE("/titles/:id", titleHandler.DeleteTitle)

	secured.POST("/titles/:title_id/reviews", reviewHandler.CreateReview)
	secured.PATCH("/titles/:title_id/reviews/:id", reviewHandler.UpdateReview)
	secured.DELETE("/titles/:title_id/reviews/:id", reviewHandler.DeleteReview)

	secured.POST("/titles/:title_id/reviews/:review_id/comments", commentHandler.CreateComment)
	secured.PATCH("/titles/:title_id/reviews/:review_id/comments/:id", commentHandler.UpdateComment)
	secured.DELETE("/titles/:title_id/reviews/:review_id/comments/:id", commentHandler.DeleteComment)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator with the domain rules registered.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return model.ValidateUsername(fl.Field().String()) == nil
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
