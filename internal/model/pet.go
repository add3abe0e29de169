package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pet is an animal available for (or already given in) adoption.
type Pet struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name      string              `bson:"name" json:"name" validate:"required"`
	Specie    string              `bson:"specie" json:"specie" validate:"required"`
	BirthDate *time.Time          `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	Adopted   bool                `bson:"adopted" json:"adopted"`
	Owner     *primitive.ObjectID `bson:"owner,omitempty" json:"owner,omitempty"`
	Image     string              `bson:"image,omitempty" json:"image,omitempty"`
}

func (Pet) CollectionName() string { return "pets" }

func (Pet) UniqueFields() []string { return nil }

func (p Pet) ObjectID() primitive.ObjectID { return p.ID }

func (p *Pet) SetObjectID(id primitive.ObjectID) { p.ID = id }

// ApplyDefaults is a no-op: adopted already defaults to false.
func (p *Pet) ApplyDefaults() {}
