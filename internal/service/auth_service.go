package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/repository"
	"github.com/escolalab/escolar-api/internal/tenancy"
)

// AuthService authenticates staff members and issues tokens.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Roles() []string
}

type authService struct {
	staff     repository.StaffRepository
	validator *validator.Validate
	secret    string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(staff repository.StaffRepository, validator *validator.Validate, secret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		staff:     staff,
		validator: validator,
		secret:    secret,
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

// Login verifies credentials and returns a signed token. Missing accounts and
// wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	staff, err := s.staff.GetByRegistration(ctx, req.Registration)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(staff.ID), 10),
		"name": staff.Name,
		"role": staff.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	if staff.SchoolID != nil {
		claims["school_id"] = *staff.SchoolID
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to sign token")
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{
		Token: token,
		Staff: dto.LoginStaff{
			ID:       staff.ID,
			Name:     staff.Name,
			Role:     staff.Role,
			SchoolID: staff.SchoolID,
		},
	}, nil
}

// Roles lists the closed role set.
func (s *authService) Roles() []string {
	roles := tenancy.Roles()
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	return names
}
