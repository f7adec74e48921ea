package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Account is the verified identity attached to a request after token
// verification. It is never persisted; id and role come straight from
// the signed claims.
type Account struct {
	ID   string
	Role Role
}

type User struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name          string               `bson:"name" json:"name"`
	Email         string               `bson:"email" json:"email"`
	Password      string               `bson:"password" json:"-"`
	Mobile        string               `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Address       string               `bson:"address,omitempty" json:"address,omitempty"`
	ProfilePic    string               `bson:"profilePic,omitempty" json:"profilePic,omitempty"`
	LikedProducts []primitive.ObjectID `bson:"likedProducts" json:"likedProducts"`
	Role          Role                 `bson:"role" json:"role"`
	IsActive      bool                 `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

type Seller struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LicenseID string             `bson:"licenseID" json:"licenseID"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      Role               `bson:"role" json:"role"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
