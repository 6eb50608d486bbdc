package auth

import (
	"context"
	"errors"

	"go-merchant/internal/config"
	"go-merchant/internal/features/notification"
	"go-merchant/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*Merchant, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, userID string) (*Merchant, error)
}

type AuthServiceImpl struct {
	MerchantRepo  MerchantRepository
	Notifications notification.NotificationService
}

func NewAuthService(merchantRepo MerchantRepository, notifications notification.NotificationService, cfg *config.Config) AuthService {
	utils.SetSecret(cfg.JWTSecret)
	return &AuthServiceImpl{
		MerchantRepo:  merchantRepo,
		Notifications: notifications,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, email, name, password string) (*Merchant, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	if existing, err := s.MerchantRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, errors.New("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	merchant := &Merchant{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.MerchantRepo.Create(ctx, merchant); err != nil {
		return nil, err
	}

	// Best effort; registration succeeds even if the notification write fails.
	s.Notifications.Notify(ctx, &notification.Notification{
		UserID:  merchant.ID,
		Title:   "Welcome to your dashboard",
		Message: "Your merchant account is ready. Add a store to start selling.",
		Type:    notification.NotificationTypeInfo,
	})

	return merchant, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	merchant, err := s.MerchantRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrMerchantNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(merchant.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateToken(merchant.ID, merchant.Email)
}

func (s *AuthServiceImpl) Me(ctx context.Context, userID string) (*Merchant, error) {
	return s.MerchantRepo.FindByID(ctx, userID)
}
