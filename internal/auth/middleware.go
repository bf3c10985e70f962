package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/mustafakart000/hospital-backend/pkg/api"
	"github.com/mustafakart000/hospital-backend/pkg/interfaces"
	"github.com/mustafakart000/hospital-backend/pkg/logger"
	"github.com/mustafakart000/hospital-backend/pkg/types"
)

type contextKey string

const accountContextKey contextKey = "account"

// SubjectResolver resolves a verified token subject to its account
type SubjectResolver interface {
	ResolveSubject(subject string) (*types.Account, error)
}

// Guard enforces authentication and role checks on protected routes
type Guard struct {
	tokens   interfaces.TokenService
	resolver SubjectResolver
	logger   *logger.Logger
}

// NewGuard creates a new route guard
func NewGuard(tokens interfaces.TokenService, resolver SubjectResolver, log *logger.Logger) *Guard {
	return &Guard{
		tokens:   tokens,
		resolver: resolver,
		logger:   log,
	}
}

// RequireRoles wraps a handler so only authenticated accounts holding one
// of the allowed roles pass. Missing or invalid tokens yield 401; a valid
// token with the wrong role yields 403. With no roles listed, any
// authenticated account passes.
func (g *Guard) RequireRoles(roles ...types.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractBearerToken(r)
			if tokenString == "" {
				api.WriteError(w, types.NewAuthenticationError(types.ErrCodeUnauthenticated, "missing authorization token"))
				return
			}

			subject, ok := g.tokens.Verify(tokenString)
			if !ok {
				g.logger.Security("invalid_token", r.RemoteAddr)
				api.WriteError(w, types.NewAuthenticationError(types.ErrCodeUnauthenticated, "invalid or expired token"))
				return
			}

			account, err := g.resolver.ResolveSubject(subject)
			if err != nil {
				g.logger.Security("unknown_token_subject", subject)
				api.WriteError(w, types.NewAuthenticationError(types.ErrCodeUnauthenticated, "invalid or expired token"))
				return
			}

			if len(roles) > 0 && !hasAnyRole(account.Role, roles) {
				g.logger.Security("role_denied", account.Username)
				api.WriteError(w, types.NewAuthorizationError(types.ErrCodeForbidden, "insufficient permissions"))
				return
			}

			ctx := context.WithValue(r.Context(), accountContextKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountFromContext returns the authenticated account placed in the
// request context by the guard
func AccountFromContext(ctx context.Context) (*types.Account, bool) {
	account, ok := ctx.Value(accountContextKey).(*types.Account)
	return account, ok
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func hasAnyRole(role types.Role, allowed []types.Role) bool {
	for _, candidate := range allowed {
		if role == candidate {
			return true
		}
	}
	return false
}
