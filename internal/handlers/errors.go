package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tahmid-rayat/momentgram/backend/internal/apperrors"
)

// httpError maps a domain error to the HTTP status its kind implies.
// Raw storage errors never reach this point; repositories translate
// them first.
// isConflict reports whether the error is a duplicate-write conflict,
// for callers that treat repeats as success.
func isConflict(err error) bool {
	return apperrors.IsKind(err, apperrors.KindConflict)
}

func httpError(err error) *echo.HTTPError {
	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidOperation:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case apperrors.KindNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case apperrors.KindConflict:
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case apperrors.KindForbidden:
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case apperrors.KindUnauthorized:
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
