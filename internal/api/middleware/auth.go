package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bhartnell/pmi-scheduler/internal/api/handlers"
	"github.com/bhartnell/pmi-scheduler/internal/domain"
	"github.com/bhartnell/pmi-scheduler/internal/integrations/userservice"
)

// UserIDHeader заголовок, в котором сессионный слой передает ID пользователя
const UserIDHeader = "X-User-ID"

const (
	msgUnauthorized = "authentication required"
	msgForbidden    = "insufficient role"
)

// Auth определяет роль пользователя через сервис пользователей и кладет Capability в контекст
// Пользователь с ролью ниже minViewRole получает 403
func Auth(client UserServiceClient, minViewRole, minEditRole domain.Role, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
			if userID == "" {
				logger.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, UserIDHeader)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			user, err := client.GetUser(r.Context(), userID)
			if err != nil {
				switch {
				case errors.Is(err, userservice.ErrUserNotFound):
					logger.Warn("%s %s - Unknown user: user_id=%s", r.Method, r.URL.Path, userID)
					handlers.RespondUnauthorized(w, msgUnauthorized)
				case errors.Is(err, userservice.ErrUnavailable):
					logger.Error("%s %s - User service unavailable: user_id=%s, error=%v", r.Method, r.URL.Path, userID, err)
					handlers.RespondServiceUnavailable(w)
				default:
					logger.Error("%s %s - Failed to resolve user: user_id=%s, error=%v", r.Method, r.URL.Path, userID, err)
					handlers.RespondInternalError(w)
				}
				return
			}

			role, err := domain.ParseRole(user.Role)
			if err != nil || !role.AtLeast(minViewRole) {
				logger.Warn("%s %s - Access denied: user_id=%s, role=%q", r.Method, r.URL.Path, userID, user.Role)
				handlers.RespondForbidden(w, msgForbidden)
				return
			}

			capability := domain.NewCapability(userID, role, minEditRole)
			next.ServeHTTP(w, r.WithContext(WithCapability(r.Context(), capability)))
		})
	}
}
