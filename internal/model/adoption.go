package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Adoption records that a user adopted a pet.
// Nothing ties it to Pet.Adopted/Pet.Owner; callers update both independently.
type Adoption struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Owner primitive.ObjectID `bson:"owner" json:"owner" validate:"required"`
	Pet   primitive.ObjectID `bson:"pet" json:"pet" validate:"required"`
}

func (Adoption) CollectionName() string { return "adoptions" }

func (Adoption) UniqueFields() []string { return nil }

func (a Adoption) ObjectID() primitive.ObjectID { return a.ID }

func (a *Adoption) SetObjectID(id primitive.ObjectID) { a.ID = id }

func (a *Adoption) ApplyDefaults() {}
