package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCerealPatch_Missing(t *testing.T) {
	name, cal := "Kix", 110
	p := CerealPatch{Name: &name, Calories: &cal}

	missing := p.Missing()
	assert.Len(t, missing, 14)
	assert.Equal(t, "mfr", missing[0])
	assert.NotContains(t, missing, "name")
	assert.NotContains(t, missing, "calories")

	assert.Len(t, CerealPatch{}.Missing(), len(CerealFields))
}

func TestCerealPatch_ApplyTo(t *testing.T) {
	img := "Kix.jpg"
	c := Cereal{ID: 3, Name: "Kix", Calories: 110, Rating: 39.2, ImagePath: &img}

	rating := 40.5
	CerealPatch{Rating: &rating}.ApplyTo(&c)
	assert.Equal(t, Cereal{ID: 3, Name: "Kix", Calories: 110, Rating: 40.5, ImagePath: &img}, c)

	CerealPatch{ImagePathSet: true}.ApplyTo(&c)
	assert.Nil(t, c.ImagePath)
}
