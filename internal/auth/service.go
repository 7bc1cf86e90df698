package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/inamate/scenekit/internal/typeid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
)

const tokenTTL = 24 * time.Hour

type userRecord struct {
	User
	passwordHash []byte
}

// Service keeps accounts in memory for the life of the process.
type Service struct {
	mu        sync.RWMutex
	byEmail   map[string]*userRecord
	byID      map[string]*userRecord
	jwtSecret []byte
	cost      int
}

func NewService(jwtSecret string) *Service {
	return &Service{
		byEmail:   make(map[string]*userRecord),
		byID:      make(map[string]*userRecord),
		jwtSecret: []byte(jwtSecret),
		cost:      12,
	}
}

type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Claims is what a validated token says about its bearer.
type Claims struct {
	UserID      string
	DisplayName string
}

func (s *Service) Register(ctx context.Context, email, password, displayName string) (*AuthResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	key := strings.ToLower(strings.TrimSpace(email))
	rec := &userRecord{
		User: User{
			ID:          typeid.NewUserID(),
			Email:       key,
			DisplayName: displayName,
		},
		passwordHash: hash,
	}

	s.mu.Lock()
	if _, taken := s.byEmail[key]; taken {
		s.mu.Unlock()
		return nil, ErrEmailTaken
	}
	s.byEmail[key] = rec
	s.byID[rec.ID] = rec
	s.mu.Unlock()

	token, err := s.issueToken(rec.User)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: rec.User}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	rec, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(rec.User)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: rec.User}, nil
}

func (s *Service) ValidateToken(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	userID, ok := claims["sub"].(string)
	if !ok || typeid.Validate(userID, typeid.PrefixUser) != nil {
		return Claims{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	name, _ := claims["name"].(string)

	return Claims{UserID: userID, DisplayName: name}, nil
}

func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := rec.User
	return &u, nil
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := rec.User
	return &u, nil
}

func (s *Service) issueToken(u User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"name": u.DisplayName,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
