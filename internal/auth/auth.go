// auth проверяет bearer-токены (HS256), выпущенные редакционным auth-сервисом,
// и превращает их в models.Caller.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/review-comments/internal/config"
	"github.com/pribylovaa/review-comments/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

const leeway = 5 * time.Second

type claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier проверяет подпись и стандартные claims (iss, aud, exp).
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
}

func NewVerifier(cfg config.AuthConfig) *Verifier {
	return &Verifier{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

// Verify возвращает вызывающего из токена.
// Роль проверяется только на непустоту: неизвестные роли отсекает сервисный слой.
func (v *Verifier) Verify(tokenStr string) (models.Caller, error) {
	const op = "auth/Verify"

	token, err := jwt.ParseWithClaims(tokenStr, &claims{},
		func(*jwt.Token) (any, error) {
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(leeway),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Caller{}, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return models.Caller{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return models.Caller{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil || id == uuid.Nil {
		return models.Caller{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if c.Role == "" {
		return models.Caller{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return models.Caller{ID: id, Name: c.Name, Role: models.Role(c.Role)}, nil
}

// Mint выпускает токен с тем же секретом. Используется commentsctl и тестами
// для локальной разработки; в проде токены выпускает auth-сервис.
func (v *Verifier) Mint(caller models.Caller, now time.Time, ttl time.Duration) (string, error) {
	const op = "auth/Mint"

	cl := claims{
		Name: caller.Name,
		Role: string(caller.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    v.issuer,
			Subject:   caller.ID.String(),
			Audience:  jwt.ClaimStrings{v.audience},
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}
