package rest

import (
	"errors"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-players/pkg/types"
	"github.com/goliatone/go-router"
)

// respondError maps domain and auth errors onto the JSON error envelope.
func respondError(c router.Context, err error) error {
	status := statusFor(err)
	return c.JSON(status, map[string]any{
		"ok":    false,
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	var richErr *goerrors.Error
	if errors.As(err, &richErr) {
		switch richErr.Category {
		case goerrors.CategoryAuth:
			return http.StatusUnauthorized
		case goerrors.CategoryAuthz:
			return http.StatusForbidden
		case goerrors.CategoryValidation:
			return http.StatusBadRequest
		case goerrors.CategoryNotFound:
			return http.StatusNotFound
		}
		return http.StatusInternalServerError
	}

	switch {
	case errors.Is(err, types.ErrIdentityRequired):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrHandleRequired),
		errors.Is(err, types.ErrRankRequired),
		errors.Is(err, types.ErrInvalidRegion),
		errors.Is(err, types.ErrInvalidRole),
		errors.Is(err, types.ErrInvalidPlatform):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrProfileNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
