package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"reviewhub/internal/auth"
	domainerrors "reviewhub/internal/errors"
	"reviewhub/internal/permission"
)

// actorFromContext resolves the request actor from the JWT middleware, or the
// anonymous actor on public routes.
func actorFromContext(c echo.Context) permission.Actor {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return permission.AnonymousActor
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return permission.AnonymousActor
	}
	return permission.Actor{ID: claims.UserID, Username: claims.Username, Role: claims.Role}
}

// respondError maps a domain error onto the standard error response shape.
func respondError(err error) error {
	httpErr := domainerrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// validationError turns validator output into a field-scoped domain error.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domainerrors.NewValidation(strings.ToLower(fe.Field()), "failed "+fe.Tag()+" validation")
	}
	return domainerrors.NewValidation("body", "invalid request")
}

// paramUint parses a positive integer path parameter.
func paramUint(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, domainerrors.NewValidation(name, "must be a positive integer")
	}
	return uint(v), nil
}
