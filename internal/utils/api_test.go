package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloatParam(t *testing.T) {
	params := url.Values{"lat": {"26.85"}, "bad": {"not-a-number"}}

	val, fieldErrors := ParseFloatParam(params, "lat", nil)
	assert.Equal(t, 26.85, val)
	assert.Empty(t, fieldErrors)

	_, fieldErrors = ParseFloatParam(params, "bad", nil)
	assert.Contains(t, fieldErrors, "bad")

	val, fieldErrors = ParseFloatParam(params, "missing", nil)
	assert.Equal(t, 0.0, val)
	assert.Empty(t, fieldErrors)
}

func TestParseIntParam(t *testing.T) {
	params := url.Values{"hour": {"17"}, "bad": {"1.5"}}

	val, fieldErrors := ParseIntParam(params, "hour", nil)
	assert.Equal(t, 17, val)
	assert.Empty(t, fieldErrors)

	_, fieldErrors = ParseIntParam(params, "bad", nil)
	assert.Contains(t, fieldErrors, "bad")
}

func TestParseStopList(t *testing.T) {
	assert.Equal(t, []string{"Rampur", "Sitapur", "Devgarh"}, ParseStopList("Rampur, Sitapur ,Devgarh"))
	assert.Equal(t, []string{"Rampur"}, ParseStopList("Rampur,,"))
	assert.Nil(t, ParseStopList(""))
}
