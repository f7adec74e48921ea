package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/port"
)

// AdminService covers account administration and category management.
type AdminService struct {
	users      port.UserRepository
	sellers    port.SellerRepository
	admins     port.AdminRepository
	categories port.CategoryRepository
	cache      port.CacheRepository
	log        *logrus.Entry
}

func NewAdminService(users port.UserRepository, sellers port.SellerRepository, admins port.AdminRepository, categories port.CategoryRepository, cache port.CacheRepository, logger *logrus.Logger) *AdminService {
	return &AdminService{
		users:      users,
		sellers:    sellers,
		admins:     admins,
		categories: categories,
		cache:      cache,
		log:        logger.WithField("component", "admin_service"),
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

// ToggleUserStatus flips isActive and returns the new state. A disabled
// user is blocked at the next login; outstanding tokens keep working
// until they expire.
func (s *AdminService) ToggleUserStatus(ctx context.Context, userID string) (bool, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, domain.ErrAccountNotFound
	}

	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return false, err
	}

	user.IsActive = !user.IsActive
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, *user); err != nil {
		return false, fmt.Errorf("update user: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"userId":   userID,
		"isActive": user.IsActive,
	}).Info("user status toggled")
	return user.IsActive, nil
}

func (s *AdminService) ListSellers(ctx context.Context) ([]domain.Seller, error) {
	return s.sellers.FindAll(ctx)
}

func (s *AdminService) ToggleSellerStatus(ctx context.Context, sellerID string) (bool, error) {
	sid, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return false, domain.ErrAccountNotFound
	}

	seller, err := s.sellers.FindByID(ctx, sid)
	if err != nil {
		return false, err
	}

	seller.IsActive = !seller.IsActive
	seller.UpdatedAt = time.Now().UTC()
	if err := s.sellers.Update(ctx, *seller); err != nil {
		return false, fmt.Errorf("update seller: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"sellerId": sellerID,
		"isActive": seller.IsActive,
	}).Info("seller status toggled")
	return seller.IsActive, nil
}

func (s *AdminService) ChangePassword(ctx context.Context, adminID, oldPassword, newPassword string) error {
	aid, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		return domain.ErrInvalidID
	}

	admin, err := s.admins.FindByID(ctx, aid)
	if err != nil {
		return err
	}
	if !checkPassword(admin.Password, oldPassword) {
		return domain.ErrPasswordIncorrect
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	admin.Password = hash
	admin.UpdatedAt = time.Now().UTC()

	if err := s.admins.Update(ctx, *admin); err != nil {
		return fmt.Errorf("update admin: %w", err)
	}

	s.log.WithField("adminId", adminID).Info("admin password changed")
	return nil
}

type CategoryInput struct {
	Name          string   `json:"name" validate:"required"`
	Subcategories []string `json:"subcategories"`
}

func (s *AdminService) CreateCategory(ctx context.Context, in CategoryInput) (domain.Category, error) {
	name := strings.ToLower(in.Name)

	if existing, err := s.categories.FindByName(ctx, name); err == nil && existing != nil {
		return domain.Category{}, domain.ErrCategoryExists
	}

	subcats := make([]string, 0, len(in.Subcategories))
	for _, sc := range in.Subcategories {
		subcats = append(subcats, strings.ToLower(sc))
	}

	now := time.Now().UTC()
	category, err := s.categories.Create(ctx, domain.Category{
		Name:          name,
		Subcategories: subcats,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}

	s.invalidateListing(ctx)
	s.log.WithField("category", name).Info("category created")
	return category, nil
}

func (s *AdminService) UpdateCategory(ctx context.Context, categoryID string, in CategoryInput) (domain.Category, error) {
	cid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return domain.Category{}, domain.ErrCategoryNotFound
	}

	category, err := s.categories.FindByID(ctx, cid)
	if err != nil {
		return domain.Category{}, err
	}

	if in.Name != "" {
		category.Name = strings.ToLower(in.Name)
	}
	if in.Subcategories != nil {
		subcats := make([]string, 0, len(in.Subcategories))
		for _, sc := range in.Subcategories {
			subcats = append(subcats, strings.ToLower(sc))
		}
		category.Subcategories = subcats
	}
	category.UpdatedAt = time.Now().UTC()

	if err := s.categories.Update(ctx, *category); err != nil {
		return domain.Category{}, fmt.Errorf("update category: %w", err)
	}

	s.invalidateListing(ctx)
	return *category, nil
}

func (s *AdminService) DeleteCategory(ctx context.Context, categoryID string) error {
	cid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return domain.ErrCategoryNotFound
	}
	if err := s.categories.Delete(ctx, cid); err != nil {
		return err
	}
	s.invalidateListing(ctx)
	s.log.WithField("categoryId", categoryID).Info("category deleted")
	return nil
}

func (s *AdminService) invalidateListing(ctx context.Context) {
	if err := s.cache.InvalidateActiveProducts(ctx); err != nil {
		s.log.WithError(err).Warn("product cache invalidation failed")
	}
}
