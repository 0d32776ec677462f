package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("bus-1"))
	assert.NoError(t, ValidateID("auto_42.v2"))

	assert.Error(t, ValidateID(""))
	assert.Error(t, ValidateID(strings.Repeat("a", 101)))
	assert.Error(t, ValidateID("bus 1"))
	assert.Error(t, ValidateID("<script>"))
}

func TestValidateStopName(t *testing.T) {
	assert.NoError(t, ValidateStopName("Rampur"))
	assert.NoError(t, ValidateStopName("Govindpur Chowk"))

	assert.Error(t, ValidateStopName(""))
	assert.Error(t, ValidateStopName(strings.Repeat("a", 201)))
	assert.Error(t, ValidateStopName("Rampur<script>"))
	assert.Error(t, ValidateStopName("x; DROP TABLE stops; --"))
}

func TestValidateLatitudeLongitude(t *testing.T) {
	assert.NoError(t, ValidateLatitude(26.85))
	assert.NoError(t, ValidateLatitude(-90))
	assert.Error(t, ValidateLatitude(90.1))
	assert.Error(t, ValidateLatitude(-91))

	assert.NoError(t, ValidateLongitude(80.95))
	assert.NoError(t, ValidateLongitude(180))
	assert.Error(t, ValidateLongitude(180.1))
	assert.Error(t, ValidateLongitude(-181))
}

func TestValidateHour(t *testing.T) {
	assert.NoError(t, ValidateHour(0))
	assert.NoError(t, ValidateHour(23))
	assert.Error(t, ValidateHour(-1))
	assert.Error(t, ValidateHour(24))
}
