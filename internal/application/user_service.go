package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-qkart-backend/internal/domain/entity"
	repo "github.com/oksasatya/go-qkart-backend/internal/domain/repository"
	"github.com/oksasatya/go-qkart-backend/pkg/apperror"
	mailtpl "github.com/oksasatya/go-qkart-backend/pkg/mailer/templates"
)

var ErrEmailTaken = apperror.Conflict("Email already taken")

// UserDefaults are applied to every newly registered user.
type UserDefaults struct {
	WalletMoney float64
	Address     string
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

type UserService struct {
	Repo     repo.UserRepository
	Hasher   entity.PasswordHasher
	Defaults UserDefaults
	Mail     *Notifier
	Logger   *logrus.Logger

	now func() time.Time
}

func NewUserService(repo repo.UserRepository, hasher entity.PasswordHasher, defaults UserDefaults, mail *Notifier, logger *logrus.Logger) *UserService {
	return &UserService{
		Repo:     repo,
		Hasher:   hasher,
		Defaults: defaults,
		Mail:     mail,
		Logger:   logger,
		now:      time.Now,
	}
}

// GetUserByID returns nil without error when no user matches.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

// GetUserByEmail returns nil without error when no user matches.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// CreateUser validates the input, rejects taken emails and stores a user with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	if err := entity.ValidateNewUser(in.Name, in.Email, in.Password); err != nil {
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			return nil, apperror.BadRequest("Invalid user").WithDetails(verr.Fields)
		}
		return nil, err
	}

	email := entity.NormalizeEmail(in.Email)
	taken, err := s.Repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	u := entity.NewUser(in.Name, email, in.Password, s.Defaults.WalletMoney, s.Defaults.Address)
	if err := u.PrepareForPersist(s.Hasher, s.now()); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	registrations.Add(1)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user registered")
	}
	s.Mail.Send(ctx, u.Email, mailtpl.Welcome, mailtpl.Data{Name: u.Name})
	return u, nil
}

// GetUserAddressByID returns the email + address projection, or nil when absent.
func (s *UserService) GetUserAddressByID(ctx context.Context, id string) (*entity.UserAddress, error) {
	a, err := s.Repo.GetAddressByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get address %s: %w", id, err)
	}
	return a, nil
}

// SetAddress persists a new address on u and returns it.
func (s *UserService) SetAddress(ctx context.Context, u *entity.User, newAddress string) (string, error) {
	newAddress = strings.TrimSpace(newAddress)
	if newAddress == "" {
		return "", apperror.BadRequest("Address is required")
	}
	u.Address = newAddress
	if err := u.PrepareForPersist(s.Hasher, s.now()); err != nil {
		return "", fmt.Errorf("prepare user: %w", err)
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", fmt.Errorf("update address: %w", err)
	}
	s.Mail.Send(ctx, u.Email, mailtpl.AddressUpdated, mailtpl.Data{Name: u.Name, Address: u.Address})
	return u.Address, nil
}
