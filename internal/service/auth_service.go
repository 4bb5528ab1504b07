package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/jengzang/flightarcs-backend-go/internal/models"
	"github.com/jengzang/flightarcs-backend-go/internal/repository"
)

const tokenIssuer = "flightarcs"

// AuthService handles registration, login and token validation
type AuthService struct {
	users    *repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
	cost     int
	now      func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(users *repository.UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// Register creates a user with a bcrypt password hash
func (s *AuthService) Register(creds models.Credentials) (*models.User, error) {
	username := strings.TrimSpace(creds.Username)
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: string(hash)}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	slog.Info("[AuthService] user registered", "user_id", user.ID)
	return user, nil
}

// Login checks the password and issues a signed token
func (s *AuthService) Login(creds models.Credentials) (*models.TokenResponse, error) {
	user, err := s.users.GetByUsername(strings.TrimSpace(creds.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := s.now().Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &models.TokenResponse{
		Token:     signed,
		ExpiresAt: expiresAt.Unix(),
		UserID:    user.ID,
	}, nil
}

// ParseToken validates a token and returns its user ID
func (s *AuthService) ParseToken(tokenString string) (int64, error) {
	return ParseToken(s.secret, tokenString)
}

// ParseToken validates an HS256 token signed with secret and returns the
// user ID in its subject
func ParseToken(secret []byte, tokenString string) (int64, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("%w: bad subject", ErrInvalidCredentials)
	}
	return userID, nil
}
