package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bizsites/website-builder/internal/api/middleware"
	"github.com/bizsites/website-builder/internal/core/domain"
	"github.com/bizsites/website-builder/internal/core/validation"
)

// decodeJSON reads the request body into dst. An empty body leaves dst
// untouched so missing fields are reported by validation. When fields have
// the wrong JSON type the remaining fields are still validated and both lists
// come back as one domain.ValidationError.
func decodeJSON(c echo.Context, dst any) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	decodeErr := validation.Decode(body, dst)
	var ve *domain.ValidationError
	if !errors.As(decodeErr, &ve) || ve.Fields[0].Path == "" {
		return decodeErr
	}
	return validation.Merge(dst, decodeErr, c.Validate(dst))
}

type sessionClaims struct {
	Username  string
	Role      string
	SessionID string
	ExpiresAt time.Time
}

// ctxSession extracts the claims injected by the Auth middleware. A missing
// role means the middleware did not run.
func ctxSession(c echo.Context) (sessionClaims, error) {
	var s sessionClaims
	s.Role, _ = c.Get(middleware.KeyRole).(string)
	if s.Role == "" {
		return s, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	s.Username, _ = c.Get(middleware.KeyUsername).(string)
	s.SessionID, _ = c.Get(middleware.KeySessionID).(string)
	s.ExpiresAt, _ = c.Get(middleware.KeyExpiresAt).(time.Time)
	return s, nil
}
