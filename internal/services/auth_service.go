package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenVerifier verifies Firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthService registers users and issues API tokens
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	FirebaseLogin(ctx context.Context, idToken string) (*models.AuthResponse, error)
	ParseToken(token string) (*models.JwtCustomClaims, error)
}

type authService struct {
	userRepo  repositories.UserRepository
	firebase  TokenVerifier
	jwtSecret []byte
	jwtTTL    time.Duration
	log       *zap.Logger
}

// NewAuthService creates an AuthService. firebase may be nil, in which case
// FirebaseLogin returns ErrUnavailable.
func NewAuthService(userRepo repositories.UserRepository, firebase TokenVerifier, jwtSecret string, jwtTTL time.Duration, log *zap.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		firebase:  firebase,
		jwtSecret: []byte(jwtSecret),
		jwtTTL:    jwtTTL,
		log:       log,
	}
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashed),
		Bio:      req.Bio,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username or email already registered", ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.respond(user)
}

// Login authenticates by username and password. Unknown users and wrong
// passwords produce the same error.
func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.respond(user)
}

// FirebaseLogin exchanges a Firebase ID token for an API token, linking the
// Firebase account to an existing user by email or creating a new one.
func (s *authService) FirebaseLogin(ctx context.Context, idToken string) (*models.AuthResponse, error) {
	if s.firebase == nil {
		return nil, fmt.Errorf("%w: firebase login", ErrUnavailable)
	}

	token, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.log.Debug("firebase token rejected", zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	uid := token.UID
	email, _ := token.Claims["email"].(string)
	email = strings.ToLower(email)

	user, err := s.userRepo.GetUserByFirebaseUID(ctx, uid)
	if err == nil {
		return s.respond(user)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("get user by firebase uid: %w", err)
	}

	if email != "" {
		user, err = s.userRepo.GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			user.FirebaseUID = &uid
			if err := s.userRepo.UpdateUser(ctx, user); err != nil {
				return nil, fmt.Errorf("link firebase uid: %w", err)
			}
			return s.respond(user)
		case !errors.Is(err, repositories.ErrNotFound):
			return nil, fmt.Errorf("get user by email: %w", err)
		}
	}

	user = &models.User{
		Username:    firebaseUsername(uid),
		Email:       email,
		FirebaseUID: &uid,
	}
	if user.Email == "" {
		user.Email = uid + "@firebase.local"
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: firebase account already registered", ErrConflict)
		}
		return nil, fmt.Errorf("create firebase user: %w", err)
	}
	return s.respond(user)
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

func firebaseUsername(uid string) string {
	name := nonAlnum.ReplaceAllString(uid, "")
	if len(name) > 20 {
		name = name[:20]
	}
	return "fb" + name
}

// ParseToken validates an HS256 API token and returns its claims
func (s *authService) ParseToken(tokenString string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

func (s *authService) respond(user *models.User) (*models.AuthResponse, error) {
	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &models.AuthResponse{User: user, Token: token}, nil
}

func (s *authService) generateJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}
