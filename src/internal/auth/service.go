package auth

import (
	"context"
	"errors"
	"time"

	"recipebox-svc/src/internal/admin"
	"recipebox-svc/src/internal/config"
	"recipebox-svc/src/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	// Login checks the credentials against the stored admin identity and
	// mints a signed session token. Unknown username and wrong password are
	// deliberately indistinguishable in the returned error.
	Login(ctx context.Context, username, password string) (*LoginResponse, error)

	// Verify validates the signature and expiry of a bearer token and
	// returns its claims. Any failure maps to models.ErrTokenInvalid.
	Verify(tokenString string) (*Claims, error)
}

type authService struct {
	adminRepo admin.Repository
	jwtKey    []byte
	tokenTTL  time.Duration

	// injectable clock for expiry boundary tests
	nowFunc func() time.Time
}

func NewAuthService(adminRepo admin.Repository, cfg *config.SecuritySettings) Service {
	return &authService{
		adminRepo: adminRepo,
		jwtKey:    []byte(cfg.JwtKey),
		tokenTTL:  time.Duration(cfg.TokenTTLHours) * time.Hour,
		nowFunc:   time.Now,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	if username == "" || password == "" {
		return nil, models.ErrCredentialsRequired
	}

	identity, err := s.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if identity == nil {
		logrus.WithField("username", username).Warn("Login attempt for unknown username")
		return nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		logrus.WithField("username", username).Warn("Login attempt with wrong password")
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.mintToken(identity)
	if err != nil {
		logrus.WithError(err).Error("Failed to sign session token")
		return nil, err
	}

	logrus.WithField("username", identity.Username).Info("Login successful")

	return &LoginResponse{
		Token:    token,
		Username: identity.Username,
		Message:  "Login successful",
	}, nil
}

func (s *authService) mintToken(identity *admin.Identity) (string, error) {
	now := s.nowFunc()

	claims := &Claims{
		UserID:   identity.ID.Hex(),
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

func (s *authService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.jwtKey, nil
	}, jwt.WithTimeFunc(s.nowFunc))

	// Expiry, forgery and malformed tokens all collapse into the same
	// outcome; the cause is logged but never surfaced to the caller.
	if err != nil {
		logrus.WithError(err).Debug("Token verification failed")
		return nil, models.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, models.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, models.ErrTokenInvalid
	}

	return claims, nil
}
