package jwt

import (
	"errors"
	"sync"
	"time"

	"github.com/Pincessis17/MerchFlow/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims session claims. CompanyID is the tenant every query is scoped to.
type JWTClaims struct {
	UserID          uint   `json:"user_id"`
	CompanyID       uint   `json:"company_id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	IsPlatformOwner bool   `json:"is_platform_owner"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies session tokens
type JWTManager struct {
	secretKey     string
	tokenDuration time.Duration
}

// NewJWTManager creates a manager with an explicit key and lifetime.
func NewJWTManager(secretKey string, tokenDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     secretKey,
		tokenDuration: tokenDuration,
	}
}

// GenerateToken signs a session token for a user.
func (manager *JWTManager) GenerateToken(userID, companyID uint, email, name, role string, isPlatformOwner bool) (string, error) {
	claims := JWTClaims{
		UserID:          userID,
		CompanyID:       companyID,
		Email:           email,
		Name:            name,
		Role:            role,
		IsPlatformOwner: isPlatformOwner,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(manager.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "MerchFlow",
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(manager.secretKey))
}

// VerifyToken parses and validates a session token.
func (manager *JWTManager) VerifyToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&JWTClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(manager.secretKey), nil
		},
	)

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return nil, errors.New("cannot parse token claims")
	}

	return claims, nil
}

// RefreshToken re-issues a token with the same identity.
func (manager *JWTManager) RefreshToken(tokenString string) (string, error) {
	claims, err := manager.VerifyToken(tokenString)
	if err != nil {
		return "", err
	}

	return manager.GenerateToken(
		claims.UserID,
		claims.CompanyID,
		claims.Email,
		claims.Name,
		claims.Role,
		claims.IsPlatformOwner,
	)
}

// GetTokenDuration token lifetime
func (manager *JWTManager) GetTokenDuration() time.Duration {
	return manager.tokenDuration
}

var (
	defaultManager *JWTManager
	once           sync.Once
)

// GetJWTManager returns the global manager built from config.
func GetJWTManager() *JWTManager {
	once.Do(func() {
		cfg := config.GetConfig()
		tokenDuration, err := time.ParseDuration(cfg.JWT.TokenDuration)
		if err != nil {
			tokenDuration = 24 * time.Hour
		}
		defaultManager = NewJWTManager(cfg.JWT.SecretKey, tokenDuration)
	})
	return defaultManager
}
