package testbackend

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/donatehub/donatehub-client/internal/core/domain"
)

const userKey = "user"

type claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for u that expires after ttl. A negative ttl
// yields an already expired token.
func (s *Server) IssueToken(u domain.User, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return t.SignedString(s.secret)
}

func (s *Server) parseToken(raw string) (*claims, error) {
	var cl claims
	tkn, err := jwt.ParseWithClaims(raw, &cl, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return &cl, nil
}

func hashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

func checkPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// authenticate resolves the bearer token to a stored user.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return message(c, http.StatusUnauthorized, "No token, authorization denied")
		}

		cl, err := s.parseToken(parts[1])
		if err != nil {
			return message(c, http.StatusUnauthorized, "Token is not valid")
		}
		u, ok := s.store.user(cl.Subject)
		if !ok {
			return message(c, http.StatusUnauthorized, "Token is not valid")
		}
		c.Set(userKey, u)
		return next(c)
	}
}

// allow rejects users whose role is not listed.
func allow(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := currentUser(c)
			for _, r := range roles {
				if u.Role == r {
					return next(c)
				}
			}
			return message(c, http.StatusForbidden, "Access denied")
		}
	}
}

func currentUser(c echo.Context) domain.User {
	u, _ := c.Get(userKey).(domain.User)
	return u
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"message": msg})
}
