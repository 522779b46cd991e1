package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/models"
	"github.com/escolalab/escolar-api/internal/repository"
)

type fakeStaffAccounts struct {
	repository.StaffRepository
	byRegistration map[string]models.Staff
}

func (f *fakeStaffAccounts) GetByRegistration(_ context.Context, registration string) (models.Staff, error) {
	staff, ok := f.byRegistration[registration]
	if !ok {
		return models.Staff{}, gorm.ErrRecordNotFound
	}
	return staff, nil
}

func seedAccount(t *testing.T, registration, password, role string, schoolID *uint) *fakeStaffAccounts {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeStaffAccounts{byRegistration: map[string]models.Staff{
		registration: {
			ID:           7,
			Name:         "Ana Lima",
			Registration: registration,
			PasswordHash: string(hash),
			Role:         role,
			SchoolID:     schoolID,
		},
	}}
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	schoolID := uint(1)
	staff := seedAccount(t, "t-100", "correct-horse", "teacher", &schoolID)
	svc := NewAuthService(staff, testValidator(), "test-secret", time.Hour, testLogger())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Registration: "t-100", Password: "battery-staple"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceLoginUnknownRegistration(t *testing.T) {
	staff := &fakeStaffAccounts{byRegistration: map[string]models.Staff{}}
	svc := NewAuthService(staff, testValidator(), "test-secret", time.Hour, testLogger())

	// A missing account looks exactly like a wrong password.
	_, err := svc.Login(context.Background(), dto.LoginRequest{Registration: "nobody", Password: "whatever"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceLoginIssuesVerifiableToken(t *testing.T) {
	schoolID := uint(3)
	staff := seedAccount(t, "t-100", "correct-horse", "teacher", &schoolID)
	svc := NewAuthService(staff, testValidator(), "test-secret", time.Hour, testLogger())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Registration: "t-100", Password: "correct-horse"})
	require.NoError(t, err)
	require.Equal(t, uint(7), resp.Staff.ID)
	require.Equal(t, "teacher", resp.Staff.Role)

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "7", claims["sub"])
	require.Equal(t, "Ana Lima", claims["name"])
	require.Equal(t, "teacher", claims["role"])
	require.EqualValues(t, 3, claims["school_id"])
}

func TestAuthServiceLoginAdminTokenOmitsSchool(t *testing.T) {
	staff := seedAccount(t, "adm-1", "correct-horse", "administrator", nil)
	svc := NewAuthService(staff, testValidator(), "test-secret", time.Hour, testLogger())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Registration: "adm-1", Password: "correct-horse"})
	require.NoError(t, err)

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	_, present := claims["school_id"]
	require.False(t, present, "administrators belong to no single school")
}

func TestAuthServiceRolesClosedSet(t *testing.T) {
	svc := NewAuthService(&fakeStaffAccounts{}, testValidator(), "test-secret", time.Hour, testLogger())
	require.ElementsMatch(t, []string{"administrator", "supervisor", "teacher"}, svc.Roles())
}
