package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/repository"
	"smartride-backend/internal/security"
)

type authService struct {
	customerRepo repository.CustomerRepository
	staffRepo    repository.StaffRepository
	tokens       security.TokenManager
	// adminCredentials maps admin username to password, loaded from
	// configuration. There is no default fallback password.
	adminCredentials map[string]string
}

func NewAuthService(
	customerRepo repository.CustomerRepository,
	staffRepo repository.StaffRepository,
	tokens security.TokenManager,
	adminCredentials map[string]string,
) AuthService {
	return &authService{
		customerRepo:     customerRepo,
		staffRepo:        staffRepo,
		tokens:           tokens,
		adminCredentials: adminCredentials,
	}
}

func (s *authService) RegisterCustomer(ctx context.Context, name, email, phone, licenseNo, password string) (*domain.Customer, error) {
	exists, err := s.customerRepo.ExistsByEmailOrLicense(ctx, email, licenseNo)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflictf("a customer with this email or license number already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	customer := &domain.Customer{
		Name:         name,
		Email:        email,
		Phone:        phone,
		LicenseNo:    licenseNo,
		PasswordHash: string(hash),
	}
	// A concurrent registration can still hit the unique constraint;
	// the repository surfaces that as Conflict.
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *authService) LoginCustomer(ctx context.Context, email, password string) (*domain.Customer, string, string, error) {
	customer, err := s.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", domain.NotFoundf("invalid email or password")
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", domain.NotFoundf("invalid email or password")
	}

	access, err := s.tokens.GenerateAccessToken(customer.ID, customer.Name, security.RoleCustomer)
	if err != nil {
		return nil, "", "", fmt.Errorf("generate access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(customer.ID, security.RoleCustomer)
	if err != nil {
		return nil, "", "", fmt.Errorf("generate refresh token: %w", err)
	}
	return customer, access, refresh, nil
}

func (s *authService) LoginAdmin(ctx context.Context, username, password string) (*domain.Staff, string, string, error) {
	want, ok := s.adminCredentials[username]
	if !ok || subtle.ConstantTimeCompare([]byte(want), []byte(password)) != 1 {
		return nil, "", "", domain.NotFoundf("invalid credentials")
	}

	// Bootstrap the staff row on first login, mirroring registration
	// of configured admins.
	staff, err := s.staffRepo.GetByName(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		staff = &domain.Staff{
			Name:  username,
			Role:  domain.StaffRoleAdmin,
			Email: fmt.Sprintf("%s@smartride.local", strings.ToLower(strings.ReplaceAll(username, " ", ""))),
		}
		err = s.staffRepo.Create(ctx, staff)
	}
	if err != nil {
		return nil, "", "", err
	}

	access, err := s.tokens.GenerateAccessToken(staff.ID, staff.Name, security.RoleAdmin)
	if err != nil {
		return nil, "", "", fmt.Errorf("generate access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(staff.ID, security.RoleAdmin)
	if err != nil {
		return nil, "", "", fmt.Errorf("generate refresh token: %w", err)
	}
	return staff, access, refresh, nil
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh, security.TokenTypeRefresh)
	if err != nil {
		return "", "", err
	}

	name := claims.Name
	if claims.Role == security.RoleCustomer {
		customer, err := s.customerRepo.GetByID(ctx, claims.SubjectID)
		if err != nil {
			return "", "", err
		}
		name = customer.Name
	}

	access, err := s.tokens.GenerateAccessToken(claims.SubjectID, name, claims.Role)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}
	newRefresh, err := s.tokens.GenerateRefreshToken(claims.SubjectID, claims.Role)
	if err != nil {
		return "", "", fmt.Errorf("generate refresh token: %w", err)
	}
	return access, newRefresh, nil
}

func (s *authService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *authService) SearchCustomers(ctx context.Context, search string) ([]domain.Customer, error) {
	return s.customerRepo.Search(ctx, search)
}

func (s *authService) UpdateProfile(ctx context.Context, id int64, name, email, phone, licenseNo string) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.Name = name
	customer.Email = email
	customer.Phone = phone
	customer.LicenseNo = licenseNo
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}
