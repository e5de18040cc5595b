package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tanpawarit/Chative-Banking-Support/bank/auth"
	"github.com/tanpawarit/Chative-Banking-Support/bank/model"
	"github.com/tanpawarit/Chative-Banking-Support/bank/service"
)

type userKey struct{}

func withUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func userFromContext(ctx context.Context) *model.User {
	u, _ := ctx.Value(userKey{}).(*model.User)
	return u
}

// authMiddleware resolves the bearer token to a user. Authentication also
// refreshes the cached token used by chat tool calls.
func authMiddleware(users *service.Users) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			u, err := users.Authenticate(r.Context(), token)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), u)))
		})
	}
}
