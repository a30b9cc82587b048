package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const (
	msgInvalidToken     = "Invalid authentication token."
	msgNotAuthenticated = "Authentication credentials were not provided."
	msgPermissionDenied = "You do not have permission to perform this action."
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
)

var (
	// ErrInvalidToken возвращается для токена с неверной подписью, сроком или форматом
	ErrInvalidToken = errors.New("invalid token")
)

type actorKey struct{}

// Actor личность, выданная внешним слоем аутентификации.
// Пустой Subject означает анонимного клиента.
type Actor struct {
	Subject string
	IsStaff bool
}

// IsAnonymous true для запроса без токена
func (a Actor) IsAnonymous() bool {
	return a.Subject == ""
}

// Claims полезная нагрузка токена
type Claims struct {
	IsStaff bool `json:"is_staff"`
	jwt.RegisteredClaims
}

// TokenVerifier проверяет HMAC-подписанные токены
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify разбирает токен и возвращает личность из claims sub и is_staff
func (v *TokenVerifier) Verify(raw string) (Actor, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}))
	if err != nil {
		return Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return Actor{}, ErrInvalidToken
	}
	return Actor{Subject: claims.Subject, IsStaff: claims.IsStaff}, nil
}

// Sign выпускает токен, используется в тестах и локальной разработке
func (v *TokenVerifier) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Identify кладет Actor в контекст. Без заголовка Authorization запрос анонимный,
// с неверным токеном отклоняется с 401.
func Identify(verifier *TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(authorizationHeader)
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !strings.HasPrefix(header, bearerPrefix) {
				respondError(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			actor, err := verifier.Verify(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
			if err != nil {
				respondError(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// RequireStaff пропускает только сотрудников: анонимный клиент получает 401, остальные 403
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := GetActor(r.Context())
		switch {
		case actor.IsAnonymous():
			respondError(w, http.StatusUnauthorized, msgNotAuthenticated)
		case !actor.IsStaff:
			respondError(w, http.StatusForbidden, msgPermissionDenied)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// WithActor возвращает контекст с личностью
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor возвращает личность из контекста, анонимную если ее нет
func GetActor(ctx context.Context) Actor {
	actor, _ := ctx.Value(actorKey{}).(Actor)
	return actor
}

func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": msg})
}
