package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-SalonClient/internal/api/handlers"
	"github.com/m04kA/SMC-SalonClient/internal/domain"
)

type contextKey string

const sessionKey contextKey = "access_session"

var (
	ErrMissingToken = errors.New("auth: missing bearer token")
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Claims полезная нагрузка токена доступа.
// Роль может прийти одной строкой (role) или списком (roles).
type Claims struct {
	Role  string   `json:"role,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// AllRoles объединяет role и roles
func (c *Claims) AllRoles() []string {
	roles := make([]string, 0, len(c.Roles)+1)
	if c.Role != "" {
		roles = append(roles, c.Role)
	}
	return append(roles, c.Roles...)
}

// Auth проверяет bearer токен и кладет в контекст явную сессию доступа.
// Без валидного токена возвращает 401 с навигацией на вход.
type Auth struct {
	secret       []byte
	allowedRoles []string
	logger       Logger
}

func NewAuth(secret string, allowedRoles []string, logger Logger) *Auth {
	return &Auth{
		secret:       []byte(secret),
		allowedRoles: allowedRoles,
		logger:       logger,
	}
}

// Middleware возвращает middleware для gorilla/mux
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			a.logger.Warn("%s %s - Unauthorized: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w)
			return
		}

		claims, err := a.parse(token)
		if err != nil {
			a.logger.Warn("%s %s - Unauthorized: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w)
			return
		}

		session := &domain.AccessSession{
			Subject: claims.Subject,
			Roles:   claims.AllRoles(),
			Token:   token,
		}

		if len(a.allowedRoles) > 0 && !session.HasAnyRole(a.allowedRoles...) {
			a.logger.Warn("%s %s - Forbidden: subject=%s, roles=%v", r.Method, r.URL.Path, session.Subject, session.Roles)
			handlers.RespondForbidden(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

func (a *Auth) parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}

// WithSession кладет сессию доступа в контекст
func WithSession(ctx context.Context, session *domain.AccessSession) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSession достает сессию доступа из контекста
func GetSession(ctx context.Context) (*domain.AccessSession, bool) {
	session, ok := ctx.Value(sessionKey).(*domain.AccessSession)
	return session, ok && session != nil
}
