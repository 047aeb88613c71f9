package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/netman-app/authkit/handler"
	authsvc "github.com/netman-app/authkit/svc/auth"
)

var errUnauthorized = &handler.Error{Status: http.StatusUnauthorized, Message: "Пользователь не авторизован"}

// BearerAuth authenticates requests carrying
// "Authorization: Bearer <type_auth> <access_token>" and stores the
// principal in the request context. Other requests are rejected with 401.
func BearerAuth(a Authenticator, onError handler.ErrorHandler[handler.Context]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			typeAuth, token, ok := parseAuthorization(r.Header.Get("Authorization"))
			if !ok {
				onError(handler.NewContext(w, r), errUnauthorized)
				return
			}

			p, err := a.Authenticate(r.Context(), typeAuth, token)
			if err != nil {
				onError(handler.NewContext(w, r), err)
				return
			}

			next.ServeHTTP(w, r.WithContext(authsvc.WithPrincipal(r.Context(), p)))
		})
	}
}

func parseAuthorization(header string) (authsvc.ProviderType, string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 3 || !strings.EqualFold(parts[0], "Bearer") {
		return 0, "", false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, "", false
	}
	return authsvc.ProviderType(n), parts[2], true
}
