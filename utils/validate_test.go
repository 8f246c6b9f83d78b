package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type sampleInput struct {
	Email   string `json:"email" validate:"required,email"`
	Pincode string `json:"pincode" validate:"required,len=6,numeric"`
	Note    string `form:"note" validate:"required"`
}

func TestValidateNamesJSONFields(t *testing.T) {
	err := Validate(sampleInput{Email: "nope", Pincode: "12"})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
	assert.Contains(t, err.Error(), "missing required fields: note")
	assert.Contains(t, err.Error(), "invalid fields: email, pincode")

	assert.NoError(t, Validate(sampleInput{Email: "a@b.co", Pincode: "560001", Note: "x"}))
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, h.Check(hash, "s3cret"))
	assert.False(t, h.Check(hash, "wrong"))

	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).Cost)
}
