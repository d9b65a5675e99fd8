package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	userEntity "blog/internal/core/user"
	userPort "blog/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL مدت اعتبار توکن ورود
const TokenTTL = 24 * time.Hour

const tokenIssuer = "blog"

// UserService سرویس مدیریت کاربران و توکن‌ها
type UserService struct {
	UserRepository userPort.UserRepository
	TokenStore     userPort.TokenStore
	Logger         *zap.Logger
	jwtKey         []byte
	now            func() time.Time
}

func NewUserService(repo userPort.UserRepository, tokens userPort.TokenStore, jwtKey []byte, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: repo,
		TokenStore:     tokens,
		Logger:         logger,
		jwtKey:         jwtKey,
		now:            time.Now,
	}
}

// RegisterUser ثبت‌نام کاربر جدید
func (s *UserService) RegisterUser(ctx context.Context, username, email, password string) (*userPort.UserDTO, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, userEntity.ErrUsernameRequired
	}

	// بررسی اینکه آیا این یوزرنیم قبلاً ثبت شده است
	existing, err := s.UserRepository.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, userEntity.ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, userEntity.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// هش کردن پسورد
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: username,
		Email:    strings.TrimSpace(email),
		Password: string(hashedPassword),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.Logger.Info("User registered", zap.String("username", u.Username))
	return toDTO(u), nil
}

// LoginUser ورود کاربر و صدور توکن JWT
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	// همان نرمال‌سازی ثبت‌نام
	username = strings.TrimSpace(username)

	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userEntity.ErrNotFound) {
			return nil, userEntity.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	// مقایسه پسورد هش‌شده
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.Logger.Info("Invalid password", zap.String("username", username))
		return nil, userEntity.ErrInvalidCredentials
	}

	expiresAt := s.now().Add(TokenTTL)
	token, err := s.generateJWT(u, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// LogoutUser باطل کردن توکن تا زمان انقضای خودش
func (s *UserService) LogoutUser(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}

	ttl := time.Unix(claims.ExpiresAt, 0).Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.TokenStore.Revoke(ctx, claims.Id, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// Authenticate تبدیل توکن به کاربر فعلی
func (s *UserService) Authenticate(ctx context.Context, token string) (*userEntity.User, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.TokenStore.IsRevoked(ctx, claims.Id)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, userEntity.ErrInvalidToken
	}

	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return nil, userEntity.ErrInvalidToken
	}

	u, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userEntity.ErrNotFound) {
			return nil, userEntity.ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// generateJWT برای تولید توکن JWT
func (s *UserService) generateJWT(u *userEntity.User, expiresAt time.Time) (string, error) {
	claims := &jwt.StandardClaims{
		Id:        uuid.Must(uuid.NewV4()).String(),
		Subject:   u.ID.String(),
		Issuer:    tokenIssuer,
		IssuedAt:  s.now().Unix(),
		ExpiresAt: expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

func (s *UserService) parse(token string) (*jwt.StandardClaims, error) {
	claims := &jwt.StandardClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, userEntity.ErrInvalidToken
	}
	if claims.Id == "" || claims.Issuer != tokenIssuer {
		return nil, userEntity.ErrInvalidToken
	}
	return claims, nil
}

func toDTO(u *userEntity.User) *userPort.UserDTO {
	return &userPort.UserDTO{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
	}
}
