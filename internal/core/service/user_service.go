package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/port"
)

type UserService struct {
	users    port.UserRepository
	products port.ProductRepository
	log      *logrus.Entry
}

func NewUserService(users port.UserRepository, products port.ProductRepository, logger *logrus.Logger) *UserService {
	return &UserService{
		users:    users,
		products: products,
		log:      logger.WithField("component", "user_service"),
	}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return s.users.FindByID(ctx, uid)
}

// UpdateProfileInput carries the only profile fields a user may change.
// Email is immutable; any other field arriving at the handler is rejected
// before this input is built.
type UpdateProfileInput struct {
	Name    *string `json:"name"`
	Mobile  *string `json:"mobile"`
	Address *string `json:"address"`
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Mobile != nil {
		user.Mobile = *in.Mobile
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, *user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.WithField("userId", userID).Info("profile updated")
	return user, nil
}

// UpdateProfilePic records the new picture URL and returns the previous
// one so the caller can remove the orphaned file.
func (s *UserService) UpdateProfilePic(ctx context.Context, userID, imageURL string) (string, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", domain.ErrInvalidID
	}

	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return "", err
	}

	previous := user.ProfilePic
	user.ProfilePic = imageURL
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, *user); err != nil {
		return "", fmt.Errorf("update user: %w", err)
	}

	s.log.WithField("userId", userID).Info("profile picture updated")
	return previous, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrInvalidID
	}

	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return err
	}

	if !checkPassword(user.Password, oldPassword) {
		s.log.WithField("userId", userID).Warn("password change rejected: wrong old password")
		return domain.ErrPasswordIncorrect
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, *user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.log.WithField("userId", userID).Info("password changed")
	return nil
}

// ToggleLike flips a product in the user's liked set and reports the
// resulting action ("liked" or "unliked").
func (s *UserService) ToggleLike(ctx context.Context, userID, productID string) (string, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", domain.ErrInvalidID
	}
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return "", domain.ErrProductNotFound
	}

	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return "", err
	}

	action := "liked"
	liked := user.LikedProducts[:0:0]
	found := false
	for _, id := range user.LikedProducts {
		if id == pid {
			found = true
			continue
		}
		liked = append(liked, id)
	}
	if found {
		action = "unliked"
	} else {
		liked = append(liked, pid)
	}
	user.LikedProducts = liked
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, *user); err != nil {
		return "", fmt.Errorf("update user: %w", err)
	}
	return action, nil
}

func (s *UserService) LikedProducts(ctx context.Context, userID string) ([]domain.Product, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(user.LikedProducts) == 0 {
		return []domain.Product{}, nil
	}
	return s.products.FindByIDs(ctx, user.LikedProducts)
}
