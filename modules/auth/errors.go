package auth

import (
	"errors"
	"net/http"

	"github.com/netman-app/authkit/handler"
	authsvc "github.com/netman-app/authkit/svc/auth"
)

// statusOf maps a service error kind to the response status.
func statusOf(k authsvc.Kind) int {
	switch k {
	case authsvc.KindBadRequest:
		return http.StatusBadRequest
	case authsvc.KindUnauthorized:
		return http.StatusUnauthorized
	case authsvc.KindForbidden:
		return http.StatusForbidden
	case authsvc.KindNotFound:
		return http.StatusNotFound
	case authsvc.KindUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func classify(err error) (*handler.Error, bool) {
	var e *authsvc.Error
	if !errors.As(err, &e) {
		return nil, false
	}
	return &handler.Error{Status: statusOf(e.Kind), Message: e.Message, Err: err}, true
}
