package handler

import (
	"errors"
	"net/http"

	"github.com/BloggingApp/community-service/internal/service"
)

var (
	errNotAuthorized  = errors.New("user is not authorized")
	errInvalidSiteID  = errors.New("invalid site ID")
	errInvalidID      = errors.New("invalid ID")
	errInvalidStream  = errors.New("invalid stream type")
	errInvalidIDClaim = errors.New("token has no valid id claim")
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrParentNotFound),
		errors.Is(err, service.ErrPersonNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotCommentAuthor):
		return http.StatusForbidden
	case errors.Is(err, service.ErrEmptyText),
		errors.Is(err, service.ErrAmbiguousParent):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
