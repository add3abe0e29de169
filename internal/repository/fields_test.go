package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adoptapi/internal/model"
)

func TestCoerceFilter(t *testing.T) {
	id := primitive.NewObjectID()

	got, err := CoerceFilter[model.Pet](Filter{
		"_id":       id.Hex(),
		"adopted":   "true",
		"name":      "Rex",
		"birthDate": "2020-01-02",
	})
	require.NoError(t, err)

	assert.Equal(t, id, got["_id"])
	assert.Equal(t, true, got["adopted"])
	assert.Equal(t, "Rex", got["name"])
	bd, ok := got["birthDate"].(*time.Time)
	require.True(t, ok)
	assert.True(t, bd.Equal(time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)))
}

func TestCoerceFilter_UnknownKey(t *testing.T) {
	got, err := CoerceFilter[model.Pet](Filter{"name": "Rex", "nmae": "zzz"})
	assert.Nil(t, got)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "nmae", ve.Field)
	assert.True(t, IsValidation(err))

	// go field names are not storage names
	_, err = CoerceFilter[model.Pet](Filter{"BirthDate": "2020-01-02"})
	assert.True(t, IsValidation(err))
}

func TestCoerceFields(t *testing.T) {
	owner := primitive.NewObjectID()
	pet := primitive.NewObjectID()

	got, err := CoerceFields[model.User](Fields{
		"_id":  primitive.NewObjectID().Hex(),
		"age":  float64(33),
		"pets": []any{map[string]any{"pet": pet.Hex()}},
		"role": "admin",
	})
	require.NoError(t, err)
	assert.NotContains(t, got, "_id")
	assert.Equal(t, 33, got["age"])
	assert.Equal(t, []model.PetRef{{Pet: pet}}, got["pets"])
	assert.Equal(t, "admin", got["role"])

	pf, err := CoerceFields[model.Pet](Fields{"owner": owner.Hex(), "birthDate": "2019-05-06T10:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, &owner, pf["owner"])
	require.IsType(t, &time.Time{}, pf["birthDate"])
}

func TestCoerce_Invalid(t *testing.T) {
	_, err := CoerceFields[model.User](Fields{"age": "old"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "age", ve.Field)

	_, err = CoerceFilter[model.Pet](Filter{"_id": "123"})
	assert.True(t, IsValidation(err))
}

func TestCoerce_NilBecomesZero(t *testing.T) {
	got, err := CoerceFields[model.Pet](Fields{"owner": nil})
	require.NoError(t, err)
	assert.Equal(t, (*primitive.ObjectID)(nil), got["owner"])
}

func TestFieldHelpers(t *testing.T) {
	p := &model.Pet{Name: "Rex"}

	v, ok := FieldValue(p, "name")
	require.True(t, ok)
	assert.Equal(t, "Rex", v)

	_, ok = FieldValue(p, "nope")
	assert.False(t, ok)

	assert.True(t, SetField(p, "adopted", true))
	assert.True(t, p.Adopted)
	assert.False(t, SetField(p, "adopted", "yes"))
	assert.True(t, SetField(p, "owner", nil))
	assert.Nil(t, p.Owner)
}

func TestValidate(t *testing.T) {
	err := Validate(&model.Pet{Specie: "Dog"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
	assert.Equal(t, "validation failed: name is required", err.Error())

	err = Validate(&model.User{FirstName: "a", LastName: "b", Email: "c", Age: 1, Password: "p", Role: "root"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "role", ve.Field)

	assert.NoError(t, Validate(&model.Pet{Name: "a", Specie: "b"}))
}

func TestParseID(t *testing.T) {
	id := primitive.NewObjectID()
	got, err := ParseID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseID("xyz")
	assert.True(t, IsValidation(err))
}

func TestConflictError(t *testing.T) {
	err := error(&ConflictError{Field: "email"})
	assert.True(t, IsConflict(err))
	assert.False(t, IsValidation(err))
	assert.Equal(t, "duplicate key: email already exists", err.Error())
}
