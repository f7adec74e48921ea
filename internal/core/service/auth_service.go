package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/port"
)

const licenseIDAttempts = 5

// AuthResult is what a successful signup or login hands back to the
// client: the public identity plus a fresh bearer token.
type AuthResult struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	LicenseID string `json:"licenseID,omitempty"`
	Token     string `json:"token"`
}

type AuthService struct {
	users   port.UserRepository
	sellers port.SellerRepository
	admins  port.AdminRepository
	tokens  port.TokenManager
	log     *logrus.Entry
}

func NewAuthService(users port.UserRepository, sellers port.SellerRepository, admins port.AdminRepository, tokens port.TokenManager, logger *logrus.Logger) *AuthService {
	return &AuthService{
		users:   users,
		sellers: sellers,
		admins:  admins,
		tokens:  tokens,
		log:     logger.WithField("component", "auth_service"),
	}
}

type UserSignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Mobile   string `json:"mobile"`
	Address  string `json:"address"`
}

func (s *AuthService) UserSignup(ctx context.Context, in UserSignupInput) (AuthResult, error) {
	email := strings.ToLower(in.Email)
	s.log.WithField("email", email).Info("user signup attempt")

	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return AuthResult{}, domain.ErrAccountExists
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, domain.User{
		Name:          in.Name,
		Email:         email,
		Password:      hash,
		Mobile:        in.Mobile,
		Address:       in.Address,
		LikedProducts: []primitive.ObjectID{},
		Role:          domain.RoleUser,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(domain.Account{ID: user.ID.Hex(), Role: user.Role})
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	s.log.WithField("userId", user.ID.Hex()).Info("user created")
	return AuthResult{ID: user.ID.Hex(), Name: user.Name, Email: user.Email, Token: token}, nil
}

func (s *AuthService) UserLogin(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(email)
	s.log.WithField("email", email).Info("user login attempt")

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return AuthResult{}, domain.ErrInvalidCredentials
	}
	if !checkPassword(user.Password, password) {
		s.log.WithField("email", email).Warn("user login failed")
		return AuthResult{}, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.log.WithField("email", email).Warn("user login blocked: account disabled")
		return AuthResult{}, domain.ErrAccountDisabled
	}

	token, err := s.tokens.Issue(domain.Account{ID: user.ID.Hex(), Role: user.Role})
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	return AuthResult{ID: user.ID.Hex(), Name: user.Name, Email: user.Email, Token: token}, nil
}

type SellerSignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (s *AuthService) SellerSignup(ctx context.Context, in SellerSignupInput) (AuthResult, error) {
	email := strings.ToLower(in.Email)
	s.log.WithField("email", email).Info("seller signup attempt")

	// Either the business name or the email colliding is a conflict.
	if existing, err := s.sellers.FindByNameOrEmail(ctx, in.Name, email); err == nil && existing != nil {
		return AuthResult{}, domain.ErrAccountExists
	}

	licenseID, err := s.generateLicenseID(ctx)
	if err != nil {
		return AuthResult{}, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	now := time.Now().UTC()
	seller, err := s.sellers.Create(ctx, domain.Seller{
		LicenseID: licenseID,
		Name:      in.Name,
		Email:     email,
		Password:  hash,
		Role:      domain.RoleSeller,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("create seller: %w", err)
	}

	s.log.WithField("sellerId", seller.ID.Hex()).Info("seller created")

	// Signup does not log the seller in; the license id is handed out so
	// the seller can complete verification first.
	return AuthResult{ID: seller.ID.Hex(), Name: seller.Name, Email: seller.Email, LicenseID: seller.LicenseID}, nil
}

func (s *AuthService) SellerLogin(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(email)
	s.log.WithField("email", email).Info("seller login attempt")

	seller, err := s.sellers.FindByEmail(ctx, email)
	if err != nil || seller == nil {
		return AuthResult{}, domain.ErrInvalidCredentials
	}
	if !checkPassword(seller.Password, password) {
		s.log.WithField("email", email).Warn("seller login failed")
		return AuthResult{}, domain.ErrInvalidCredentials
	}
	if !seller.IsActive {
		s.log.WithField("email", email).Warn("seller login blocked: account disabled")
		return AuthResult{}, domain.ErrAccountDisabled
	}

	token, err := s.tokens.Issue(domain.Account{ID: seller.ID.Hex(), Role: seller.Role})
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	return AuthResult{ID: seller.ID.Hex(), Name: seller.Name, Email: seller.Email, LicenseID: seller.LicenseID, Token: token}, nil
}

type AdminSignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (s *AuthService) AdminSignup(ctx context.Context, in AdminSignupInput) (AuthResult, error) {
	email := strings.ToLower(in.Email)
	s.log.WithField("email", email).Info("admin signup attempt")

	if existing, err := s.admins.FindByEmail(ctx, email); err == nil && existing != nil {
		return AuthResult{}, domain.ErrAccountExists
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	now := time.Now().UTC()
	admin, err := s.admins.Create(ctx, domain.Admin{
		Name:      in.Name,
		Email:     email,
		Password:  hash,
		Role:      domain.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("create admin: %w", err)
	}

	token, err := s.tokens.Issue(domain.Account{ID: admin.ID.Hex(), Role: admin.Role})
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	s.log.WithField("adminId", admin.ID.Hex()).Info("admin created")
	return AuthResult{ID: admin.ID.Hex(), Name: admin.Name, Email: admin.Email, Token: token}, nil
}

func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(email)

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil || admin == nil {
		return AuthResult{}, domain.ErrInvalidCredentials
	}
	if !checkPassword(admin.Password, password) {
		return AuthResult{}, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.Account{ID: admin.ID.Hex(), Role: admin.Role})
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	s.log.WithField("adminId", admin.ID.Hex()).Info("admin logged in")
	return AuthResult{ID: admin.ID.Hex(), Name: admin.Name, Email: admin.Email, Token: token}, nil
}

// generateLicenseID produces a short uppercase seller code, retrying on
// the unlikely collision.
func (s *AuthService) generateLicenseID(ctx context.Context) (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	for attempt := 0; attempt < licenseIDAttempts; attempt++ {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate license id: %w", err)
		}
		for i := range buf {
			buf[i] = alphabet[int(buf[i])%len(alphabet)]
		}
		licenseID := "SLR-" + string(buf)

		exists, err := s.sellers.LicenseIDExists(ctx, licenseID)
		if err != nil {
			return "", fmt.Errorf("check license id: %w", err)
		}
		if !exists {
			return licenseID, nil
		}
	}
	return "", fmt.Errorf("could not generate unique license id after %d attempts", licenseIDAttempts)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
