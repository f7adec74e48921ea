package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
)

// mapWriteErr folds duplicate-key violations into the domain conflict
// sentinel so services never see driver error types.
func mapWriteErr(err error, op string) error {
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrAccountExists
	}
	return fmt.Errorf("%s: %w", op, err)
}

type UserAdapter struct {
	coll *mongo.Collection
}

func NewUserAdapter(db *mongo.Database) *UserAdapter {
	return &UserAdapter{coll: db.Collection(usersCollection)}
}

func (a *UserAdapter) Create(ctx context.Context, user domain.User) (domain.User, error) {
	result, err := a.coll.InsertOne(ctx, user)
	if err != nil {
		return domain.User{}, mapWriteErr(err, "insert user")
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (a *UserAdapter) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	err := a.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (a *UserAdapter) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := a.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (a *UserAdapter) FindAll(ctx context.Context) ([]domain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := a.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find all users: %w", err)
	}

	var users []domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (a *UserAdapter) Update(ctx context.Context, user domain.User) error {
	result, err := a.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return mapWriteErr(err, "update user")
	}
	if result.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

type SellerAdapter struct {
	coll *mongo.Collection
}

func NewSellerAdapter(db *mongo.Database) *SellerAdapter {
	return &SellerAdapter{coll: db.Collection(sellersCollection)}
}

func (a *SellerAdapter) Create(ctx context.Context, seller domain.Seller) (domain.Seller, error) {
	result, err := a.coll.InsertOne(ctx, seller)
	if err != nil {
		return domain.Seller{}, mapWriteErr(err, "insert seller")
	}
	seller.ID = result.InsertedID.(primitive.ObjectID)
	return seller, nil
}

func (a *SellerAdapter) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Seller, error) {
	var seller domain.Seller
	err := a.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&seller)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find seller: %w", err)
	}
	return &seller, nil
}

func (a *SellerAdapter) FindByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	var seller domain.Seller
	err := a.coll.FindOne(ctx, bson.M{"email": email}).Decode(&seller)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find seller by email: %w", err)
	}
	return &seller, nil
}

func (a *SellerAdapter) FindByNameOrEmail(ctx context.Context, name, email string) (*domain.Seller, error) {
	filter := bson.M{"$or": []bson.M{{"name": name}, {"email": email}}}

	var seller domain.Seller
	err := a.coll.FindOne(ctx, filter).Decode(&seller)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find seller by name or email: %w", err)
	}
	return &seller, nil
}

func (a *SellerAdapter) FindAll(ctx context.Context) ([]domain.Seller, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := a.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find all sellers: %w", err)
	}

	var sellers []domain.Seller
	if err := cursor.All(ctx, &sellers); err != nil {
		return nil, fmt.Errorf("decode sellers: %w", err)
	}
	return sellers, nil
}

func (a *SellerAdapter) Update(ctx context.Context, seller domain.Seller) error {
	result, err := a.coll.ReplaceOne(ctx, bson.M{"_id": seller.ID}, seller)
	if err != nil {
		return mapWriteErr(err, "update seller")
	}
	if result.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (a *SellerAdapter) LicenseIDExists(ctx context.Context, licenseID string) (bool, error) {
	count, err := a.coll.CountDocuments(ctx, bson.M{"licenseID": licenseID})
	if err != nil {
		return false, fmt.Errorf("count license ids: %w", err)
	}
	return count > 0, nil
}

type AdminAdapter struct {
	coll *mongo.Collection
}

func NewAdminAdapter(db *mongo.Database) *AdminAdapter {
	return &AdminAdapter{coll: db.Collection(adminsCollection)}
}

func (a *AdminAdapter) Create(ctx context.Context, admin domain.Admin) (domain.Admin, error) {
	result, err := a.coll.InsertOne(ctx, admin)
	if err != nil {
		return domain.Admin{}, mapWriteErr(err, "insert admin")
	}
	admin.ID = result.InsertedID.(primitive.ObjectID)
	return admin, nil
}

func (a *AdminAdapter) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Admin, error) {
	var admin domain.Admin
	err := a.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &admin, nil
}

func (a *AdminAdapter) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var admin domain.Admin
	err := a.coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	return &admin, nil
}

func (a *AdminAdapter) Update(ctx context.Context, admin domain.Admin) error {
	result, err := a.coll.ReplaceOne(ctx, bson.M{"_id": admin.ID}, admin)
	if err != nil {
		return mapWriteErr(err, "update admin")
	}
	if result.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
