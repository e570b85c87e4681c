package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cherishedwords/internal/models"
	"cherishedwords/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest account password SignUp accepts.
const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService is the identity provider: it registers accounts, signs them in
// and issues the JWTs that scope card access.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	log       logrus.FieldLogger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration, log logrus.FieldLogger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// SignUp registers a new account and returns it together with a session token.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*models.User, string, error) {
	email = normalizeEmail(email)
	if len(password) < MinPasswordLength {
		return nil, "", ErrWeakPassword
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", fmt.Errorf("%s: %w", email, ErrEmailInUse)
	}
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Email: email, Password: string(hashedPassword)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	s.log.WithField("user_id", user.ID).Info("user signed up")
	return user, token, nil
}

// SignIn authenticates an account and returns it together with a session token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		// Do not reveal whether the account exists.
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CurrentUser resolves the account a token was issued for.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     now.Add(s.tokenTTL).Unix(),
		"iat":     now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		s.log.WithError(err).Debug("token validation failed")
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if id, _ := claims["user_id"].(string); id == "" {
		return nil, fmt.Errorf("%w: missing user_id", ErrInvalidToken)
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
