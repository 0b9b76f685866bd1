package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/mcardoso/storefront/internal/hash"
	"github.com/mcardoso/storefront/internal/models"
	"github.com/mcardoso/storefront/internal/repo"
)

const accessTokenTTL = 15 * time.Minute

var ErrBadCredentials = errors.New("bad credentials")

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

// EnsureUser creates the user when it does not exist yet. Used at startup to
// bootstrap the admin account from the environment.
func (s *AuthService) EnsureUser(ctx context.Context, username, password, role string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password required", ErrValidation)
	}

	_, err := s.Repo.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	return s.Repo.CreateUser(ctx, &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	})
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrBadCredentials
		}
		return "", err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", ErrBadCredentials
	}

	return SignAccessToken(user.ID.String(), user.Role, s.JWTSecret)
}

func SignAccessToken(userID, role string, secret []byte) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	})
	return token.SignedString(secret)
}

// ParseAccessToken validates the signature and returns the subject and role.
func ParseAccessToken(raw string, secret []byte) (userID, role string, err error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", "", err
	}
	if !token.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	r, _ := claims["role"].(string)
	if sub == "" {
		return "", "", errors.New("invalid subject claim")
	}
	return sub, r, nil
}
