package service

import (
	"errors"
	"net/url"
	"testing"

	"github.com/DennisRussell0/cereal-api/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	q := url.Values{
		"rating":   {"68.402973"},
		"mfr":      {"K"},
		"calories": {" 100 "},
		"name":     {""},
		"id":       {"3"},
		"unknown":  {"x"},
	}
	f, err := ParseFilter(q)
	require.NoError(t, err)
	assert.Equal(t, []repo.Condition{
		{Column: "mfr", Op: repo.OpContains, Value: "K"},
		{Column: "calories", Op: repo.OpEquals, Value: 100},
		{Column: "rating", Op: repo.OpEquals, Value: 68.402973},
	}, f.Conditions)
}

func TestParseFilter_InvalidValues(t *testing.T) {
	tests := []struct {
		query string
		field string
	}{
		{"calories=abc", "calories"},
		{"calories=100.5", "calories"},
		{"calories=99999999999", "calories"},
		{"sodium=-2147483649", "sodium"},
		{"fiber=lots", "fiber"},
		{"cups=NaN", "cups"},
		{"weight=Inf", "weight"},
		{"mfr=K&shelf=top", "shelf"},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			require.NoError(t, err)

			_, err = ParseFilter(q)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tc.field, ve.Field)
			assert.Equal(t, "Invalid value for "+tc.field, ve.Error())
		})
	}
}

func TestFilterKey_DistinguishesFilters(t *testing.T) {
	a, _ := ParseFilter(url.Values{"calories": {"100"}})
	b, _ := ParseFilter(url.Values{"calories": {"110"}})
	c, _ := ParseFilter(url.Values{"name": {"100"}})
	d, _ := ParseFilter(url.Values{"calories": {"100"}})

	assert.NotEqual(t, filterKey(a), filterKey(b))
	assert.NotEqual(t, filterKey(a), filterKey(c))
	assert.Equal(t, filterKey(a), filterKey(d))
	assert.Equal(t, "", filterKey(repo.CerealFilter{}))
}
