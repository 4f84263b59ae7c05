package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"github.com/ArowuTest/nebula-luck-backend/internal/models"
)

var (
	// ErrInvalidCredentials is returned for a wrong username or password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for a token that fails verification
	ErrInvalidToken = errors.New("invalid token")
)

// AuthOptions configures the single admin account
type AuthOptions struct {
	Username     string
	PasswordHash string // bcrypt
	Secret       string
	ExpiresIn    time.Duration
}

type authService struct {
	opts AuthOptions
	now  func() time.Time
}

// NewAuthService creates a new AuthService implementation
func NewAuthService(opts AuthOptions) AuthService {
	return &authService{opts: opts, now: time.Now}
}

// Login checks the admin credentials and issues an HS256 token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.opts.Username)) == 1
	err := bcrypt.CompareHashAndPassword([]byte(s.opts.PasswordHash), []byte(req.Password))
	if !userOK || err != nil {
		slog.Warn("Admin login failed", "username", req.Username)
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	claims := models.AdminClaims{
		Role: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.opts.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.ExpiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.opts.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &models.LoginResponse{Token: token, ExpiresIn: int(s.opts.ExpiresIn.Seconds())}, nil
}

// ValidateToken verifies the signature and expiry of an admin token
func (s *authService) ValidateToken(tokenString string) (*models.AdminClaims, error) {
	claims := &models.AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.opts.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, jwt.ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Role != models.RoleAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
