package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/config"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/repository"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// AuthService signs users in and issues JWT pairs. Refresh tokens are held
// in redis keyed by jti so they can be revoked.
type AuthService struct {
	profiles *repository.ProfileRepository
	rdb      *redis.Client
	cfg      *config.Config
}

func NewAuthService(profiles *repository.ProfileRepository, rdb *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{profiles: profiles, rdb: rdb, cfg: cfg}
}

// TokenPair is the access/refresh token pair returned on login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// LoginRequest authenticates by email and password.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a token pair plus the profile.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*TokenPair, *entity.Profile, error) {
	profile, err := s.profiles.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("credenciales inválidas")
	}
	if !profile.Active {
		return nil, nil, fmt.Errorf("la cuenta está deshabilitada")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, fmt.Errorf("credenciales inválidas")
	}

	pair, err := s.generateTokenPair(ctx, profile)
	if err != nil {
		return nil, nil, err
	}
	return pair, profile, nil
}

// Me returns the caller's profile.
func (s *AuthService) Me(ctx context.Context, userID string) (*entity.Profile, error) {
	return s.profiles.FindByID(ctx, userID)
}

// RefreshToken exchanges a valid refresh token for a new pair. The old
// refresh token is revoked.
func (s *AuthService) RefreshToken(ctx context.Context, refreshTokenString string) (*TokenPair, error) {
	token, err := jwt.Parse(refreshTokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims["type"] != "refresh" {
		return nil, fmt.Errorf("invalid token type")
	}

	jti, _ := claims["jti"].(string)
	userID, err := s.rdb.Get(ctx, "token:refresh:"+jti).Result()
	if err != nil {
		return nil, fmt.Errorf("refresh token expired or invalid")
	}

	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	s.rdb.Del(ctx, "token:refresh:"+jti)
	return s.generateTokenPair(ctx, profile)
}

// Logout revokes the refresh token named by jti.
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	if jti == "" {
		return nil
	}
	return s.rdb.Del(ctx, "token:refresh:"+jti).Err()
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *AuthService) generateTokenPair(ctx context.Context, profile *entity.Profile) (*TokenPair, error) {
	now := time.Now()
	jti := uuid.New().String()

	clientID := ""
	if profile.ClientID != nil {
		clientID = *profile.ClientID
	}

	accessClaims := jwt.MapClaims{
		"sub":       profile.ID,
		"uid":       profile.ID,
		"name":      profile.FullName,
		"email":     profile.Email,
		"role":      profile.Role,
		"client_id": clientID,
		"iss":       s.cfg.JWT.Issuer,
		"iat":       now.Unix(),
		"exp":       now.Add(s.cfg.JWT.AccessTokenExpire).Unix(),
		"jti":       jti,
	}
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	// The access token carries the same jti so logout can revoke the session.
	refreshClaims := jwt.MapClaims{
		"sub":  profile.ID,
		"type": "refresh",
		"iss":  s.cfg.JWT.Issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.JWT.RefreshTokenExpire).Unix(),
		"jti":  jti,
	}
	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if s.rdb != nil {
		s.rdb.Set(ctx, "token:refresh:"+jti, profile.ID, s.cfg.JWT.RefreshTokenExpire)
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.cfg.JWT.AccessTokenExpire.Seconds()),
	}, nil
}
