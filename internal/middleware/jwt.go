package middleware

import (
	"fmt"
	"strings"
	"time"

	"Petfolio/config"
	"Petfolio/internal/domain/user"
	appErrors "Petfolio/internal/errors"
	"Petfolio/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

type JwtService struct {
	secret      []byte
	expiration  time.Duration
	userService *user.Service
}

func NewJwtService(cfg config.JWTConfig, userService *user.Service) (*JwtService, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is not configured")
	}
	return &JwtService{
		secret:      []byte(cfg.Secret),
		expiration:  cfg.Expiration,
		userService: userService,
	}, nil
}

func (s *JwtService) GenerateToken(userID ulid.ULID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", appErrors.ErrInternalServer.WithError(err)
	}
	return signed, nil
}

// ValidateToken checks signature and expiry and returns the subject. The
// user must still exist: tokens outlive account deletion otherwise.
func (s *JwtService) ValidateToken(c *gin.Context, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", appErrors.ErrUnauthorized.WithError(err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", appErrors.ErrUnauthorized
	}

	userID, err := pkg.ParseULID(claims.Subject)
	if err != nil {
		return "", appErrors.ErrUnauthorized.WithError(err)
	}
	if err := s.userService.Exists(c.Request.Context(), userID); err != nil {
		return "", appErrors.ErrUnauthorized.WithError(err)
	}

	return claims.Subject, nil
}

func AuthMiddleware(jwtSvc *JwtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Missing Authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Authorization header must be 'Bearer <token>'")
			return
		}

		userID, err := jwtSvc.ValidateToken(c, parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(appErrors.ErrUnauthorized.StatusCode, gin.H{
		"error":   appErrors.ErrUnauthorized.Code,
		"message": message,
	})
	c.Abort()
}
