package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
)

func newAdminFixture(t *testing.T) (*AdminService, *mockUserRepo, *mockSellerRepo, *mockCategoryRepo, *mockCache) {
	t.Helper()
	users := newMockUserRepo()
	sellers := newMockSellerRepo()
	admins := newMockAdminRepo()
	categories := newMockCategoryRepo()
	cache := &mockCache{}
	return NewAdminService(users, sellers, admins, categories, cache, testLogger()), users, sellers, categories, cache
}

func TestToggleUserStatus(t *testing.T) {
	svc, users, _, _, _ := newAdminFixture(t)
	ctx := context.Background()

	user, err := users.Create(ctx, domain.User{Name: "Asha", Email: "asha@example.com", IsActive: true})
	require.NoError(t, err)

	active, err := svc.ToggleUserStatus(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.False(t, active)

	active, err = svc.ToggleUserStatus(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.True(t, active)

	_, err = svc.ToggleUserStatus(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestToggleSellerStatus(t *testing.T) {
	svc, _, sellers, _, _ := newAdminFixture(t)
	ctx := context.Background()

	seller, err := sellers.Create(ctx, domain.Seller{Name: "Acme", Email: "ops@acme.test", IsActive: true})
	require.NoError(t, err)

	active, err := svc.ToggleSellerStatus(ctx, seller.ID.Hex())
	require.NoError(t, err)
	assert.False(t, active)
}

func TestCategoryLifecycle(t *testing.T) {
	svc, _, _, _, cache := newAdminFixture(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryInput{Name: "Electronics", Subcategories: []string{"Audio"}})
	require.NoError(t, err)
	assert.Equal(t, "electronics", category.Name)
	assert.Equal(t, []string{"audio"}, category.Subcategories)
	assert.Equal(t, 1, cache.invalidations)

	_, err = svc.CreateCategory(ctx, CategoryInput{Name: "ELECTRONICS"})
	assert.ErrorIs(t, err, domain.ErrCategoryExists)

	updated, err := svc.UpdateCategory(ctx, category.ID.Hex(), CategoryInput{Subcategories: []string{"audio", "video"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"audio", "video"}, updated.Subcategories)

	require.NoError(t, svc.DeleteCategory(ctx, category.ID.Hex()))
	err = svc.DeleteCategory(ctx, category.ID.Hex())
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}
