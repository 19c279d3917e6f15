// middleware/jwt_middleware.go
package middleware

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mandisetu/mandisetu_backend/models"
)

// RoleAdmin is the claim value for back-office tokens. It lives outside
// the marketplace Role set on purpose: admins are not Accounts.
const RoleAdmin = "Admin"

// tokenValidity matches the 7-day sessions issued on login and signup.
const tokenValidity = 7 * 24 * time.Hour

// JwtCustomClaims is the bearer token payload. Downstream handlers trust
// these claims as the authenticated principal without re-reading the
// store; that capability-token trust boundary is deliberate.
type JwtCustomClaims struct {
	UserID      string `json:"id"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	jwt.StandardClaims
}

// Valid implements the Claims interface for Echo's JWT middleware.
func (c JwtCustomClaims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return errors.New("token is expired")
	}
	if c.NotBefore > 0 && time.Now().Unix() < c.NotBefore {
		return errors.New("token used before valid")
	}
	return nil
}

// GetJWTSecret returns the JWT secret from environment variables
func GetJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET environment variable is required")
	}
	return secret
}

// GenerateToken issues a signed bearer token for a marketplace account.
func GenerateToken(account *models.Account) (string, error) {
	claims := &JwtCustomClaims{
		UserID:      account.ID.Hex(),
		Role:        string(account.Role),
		PhoneNumber: account.PhoneNumber,
		Name:        account.Name,
		Email:       account.Email,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(tokenValidity).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(GetJWTSecret()))
}

// GenerateAdminToken issues a signed bearer token for a back-office admin.
func GenerateAdminToken(admin *models.Admin) (string, error) {
	claims := &JwtCustomClaims{
		UserID: admin.ID.Hex(),
		Role:   RoleAdmin,
		Name:   admin.Name,
		Email:  admin.Email,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(tokenValidity).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(GetJWTSecret()))
}

// ParseToken verifies a raw token string and returns its claims.
func ParseToken(tokenString string) (*JwtCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(GetJWTSecret()), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JwtCustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// GetJWTConfig returns JWT middleware configuration
func GetJWTConfig() middleware.JWTConfig {
	return middleware.JWTConfig{
		Claims:     &JwtCustomClaims{},
		SigningKey: []byte(GetJWTSecret()),
		SuccessHandler: func(c echo.Context) {
			user := c.Get("user").(*jwt.Token)

			if IsTokenBlacklisted(user.Raw) {
				c.Error(echo.NewHTTPError(echo.ErrUnauthorized.Code, "Token has been invalidated"))
				return
			}

			claims := user.Claims.(*JwtCustomClaims)
			c.Set("userId", claims.UserID)
			c.Set("role", claims.Role)
			c.Set("phoneNumber", claims.PhoneNumber)
		},
		ErrorHandler: func(err error) error {
			return echo.NewHTTPError(echo.ErrUnauthorized.Code, "Invalid or expired token")
		},
	}
}

// JWTMiddleware authenticates bearer tokens on protected groups.
func JWTMiddleware() echo.MiddlewareFunc {
	return middleware.JWTWithConfig(GetJWTConfig())
}

// GetClaims extracts token claims set by JWTMiddleware, or nil.
func GetClaims(c echo.Context) *JwtCustomClaims {
	user := c.Get("user")
	if user == nil {
		return nil
	}
	token, ok := user.(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(*JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// ExtractUserID returns the authenticated principal's id as an ObjectID.
func ExtractUserID(c echo.Context) (primitive.ObjectID, error) {
	claims := GetClaims(c)
	if claims == nil {
		return primitive.NilObjectID, echo.ErrUnauthorized
	}
	return primitive.ObjectIDFromHex(claims.UserID)
}

// ExtractRole returns the authenticated principal's role claim.
func ExtractRole(c echo.Context) string {
	if role, ok := c.Get("role").(string); ok && role != "" {
		return role
	}
	if claims := GetClaims(c); claims != nil {
		return claims.Role
	}
	return ""
}
