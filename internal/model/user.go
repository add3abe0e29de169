package model

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// PetRef points at a pet owned by a user.
type PetRef struct {
	Pet primitive.ObjectID `bson:"pet" json:"pet"`
}

// UserDocument is an uploaded file attached to a user profile.
type UserDocument struct {
	Name      string `bson:"name" json:"name"`
	Reference string `bson:"reference" json:"reference"`
}

// User is a registered adopter or administrator.
// Password always holds a bcrypt hash once persisted and is never serialized to JSON.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName string             `bson:"first_name" json:"first_name" validate:"required"`
	LastName  string             `bson:"last_name" json:"last_name" validate:"required"`
	Email     string             `bson:"email" json:"email" validate:"required"`
	Age       int                `bson:"age" json:"age" validate:"required"`
	Password  string             `bson:"password" json:"-" validate:"required"`
	Role      string             `bson:"role" json:"role" validate:"oneof=user admin"`
	Pets      []PetRef           `bson:"pets" json:"pets"`
	Documents []UserDocument     `bson:"documents" json:"documents"`
}

func (User) CollectionName() string { return "users" }

func (User) UniqueFields() []string { return []string{"email"} }

func (u User) ObjectID() primitive.ObjectID { return u.ID }

func (u *User) SetObjectID(id primitive.ObjectID) { u.ID = id }

func (u *User) ApplyDefaults() {
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Pets == nil {
		u.Pets = []PetRef{}
	}
	if u.Documents == nil {
		u.Documents = []UserDocument{}
	}
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
