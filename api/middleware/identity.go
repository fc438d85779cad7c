package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/escafood/kasadefteri-backend/api/responses"
	"github.com/escafood/kasadefteri-backend/pkg/config"
	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
	"github.com/escafood/kasadefteri-backend/pkg/logger"
)

type userLoader interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// Identity resolves the acting user from the request header and loads
// the account behind it. Every downstream handler receives the actor
// through the context; services take it as an explicit argument.
func Identity(logg *logger.Logger, cfg config.IdentityConfig, users userLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			username := strings.TrimSpace(r.Header.Get(cfg.Header))
			if username == "" {
				username = cfg.DevFallback
			}
			if username == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing identity header"))
				return
			}

			user, err := users.FindByUsername(ctx, username)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown user"))
				return
			}
			if !user.Active {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "account disabled"))
				return
			}

			ctx = WithActor(ctx, user.Username)
			ctx = WithRole(ctx, user.Role)
			if logg != nil {
				ctx = logg.WithActor(ctx, user.Username)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
