package admins

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/models"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/validate"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Input is the form used to create an admin account.
type Input struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service encapsulates admin account logic
type Service struct {
	repo AdminRepository
	v    *validate.Validator
	cost int
}

func NewService(r AdminRepository, v *validate.Validator) *Service {
	return &Service{repo: r, v: v, cost: bcrypt.DefaultCost}
}

// Create validates in, hashes the password and stores a new admin.
func (s *Service) Create(ctx context.Context, in Input) (*models.Admin, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.v.Struct(in); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	a := &models.Admin{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Authenticate returns the admin for email when password matches, otherwise
// ErrInvalidCredentials. Unknown emails and wrong passwords are not distinguished.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.Admin, error) {
	a, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	return s.repo.GetByID(ctx, id)
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
