package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Slug     string `validate:"required,slug"`
	Duration int    `validate:"gt=0,lte=1440"`
}

func TestStruct(t *testing.T) {
	valid := sample{Name: "Intro call", Email: "ann@example.com", Slug: "intro-call-30", Duration: 30}
	require.NoError(t, Struct(valid))

	err := Struct(sample{Email: "not-an-email", Slug: "Intro Call", Duration: 0})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Name(required)")
	assert.Contains(t, err.Error(), "Email(email)")
	assert.Contains(t, err.Error(), "Slug(slug)")
	assert.Contains(t, err.Error(), "Duration(gt)")

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.HasTag("email"))
	assert.True(t, verr.HasTag("required"))
	assert.False(t, verr.HasTag("max"))
}

func TestIsSlug(t *testing.T) {
	assert.True(t, IsSlug("30min"))
	assert.True(t, IsSlug("quick-chat"))
	assert.False(t, IsSlug("quick--chat"))
	assert.False(t, IsSlug("-chat"))
	assert.False(t, IsSlug("Chat"))
	assert.False(t, IsSlug(""))
}
