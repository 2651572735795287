package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneKeepsEmptyCountries(t *testing.T) {
	seed := NewVisitedOverlay(VisitedCountriesID, "#000000")

	clone := seed.Clone()
	require.NotNil(t, clone.Countries)
	assert.Empty(t, clone.Countries)

	data, err := json.Marshal(CloneAll([]Overlay{seed}))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"countries":[]`)
}

func TestCloneDoesNotAlias(t *testing.T) {
	order := 2
	o := Overlay{ID: "a", Countries: []string{"FR"}, Order: &order}

	c := o.Clone()
	c.Countries[0] = "IT"
	*c.Order = 5

	assert.Equal(t, []string{"FR"}, o.Countries)
	assert.Equal(t, 2, *o.Order)
}

func TestCloneKeepsNilCountries(t *testing.T) {
	assert.Nil(t, Overlay{ID: "a"}.Clone().Countries)
}
