package http

import (
	"errors"
	"net/http"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Roles carried in the token. A restaurant-admin and courier token must
// additionally resolve through the user directory before acting.
const (
	RoleCustomer        = "customer"
	RoleCourier         = "courier"
	RoleRestaurantAdmin = "restaurant_admin"
	RoleAdmin           = "admin"
)

const actorContextKey = "actor"

// Claims is the accepted token payload: the subject is the user account
// id, the role decides which endpoints the token may call.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Actor is the authenticated caller, extracted from a verified token.
type Actor struct {
	UserID kernel.UUID
	Role   string
}

// AuthMiddleware verifies the Bearer token and stores the Actor on the
// request context.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := actorFromHeader(c.Request().Header.Get(echo.HeaderAuthorization), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorDTO{
					Code:    http.StatusUnauthorized,
					Message: "invalid or missing token",
				})
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFromHeader(header string, secret []byte) (Actor, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return Actor{}, errors.New("missing bearer token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		strings.TrimPrefix(header, prefix),
		claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return Actor{}, err
	}
	if !token.Valid {
		return Actor{}, errors.New("token is not valid")
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Actor{}, err
	}

	return Actor{UserID: userID, Role: claims.Role}, nil
}

// GenerateToken signs a token for the given user, mainly for seeding and
// tests. Token issuing otherwise lives outside this service.
func GenerateToken(secret []byte, userID kernel.UUID, role string, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = userID.String()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             role,
		RegisteredClaims: claims,
	})
	return token.SignedString(secret)
}

func actorFrom(c echo.Context) (Actor, bool) {
	actor, ok := c.Get(actorContextKey).(Actor)
	return actor, ok
}

// requireRole rejects callers whose token carries none of the allowed
// roles. RoleAdmin passes everywhere.
func requireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := actorFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, ErrorDTO{
					Code:    http.StatusUnauthorized,
					Message: "authentication required",
				})
			}

			if actor.Role == RoleAdmin {
				return next(c)
			}
			for _, role := range roles {
				if actor.Role == role {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, ErrorDTO{
				Code:    http.StatusForbidden,
				Message: "insufficient role",
			})
		}
	}
}
