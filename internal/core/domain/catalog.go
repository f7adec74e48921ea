package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryRef struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Seller        primitive.ObjectID `bson:"seller" json:"seller"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	Stock         int                `bson:"stock" json:"stock"`
	Category      CategoryRef        `bson:"category" json:"category"`
	Subcategories []string           `bson:"subcategories" json:"subcategories"`
	Images        []string           `bson:"images" json:"images"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Category struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Subcategories []string           `bson:"subcategories" json:"subcategories"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
