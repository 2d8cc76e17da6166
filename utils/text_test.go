package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"health-tracker-backend/utils"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "i cant breathe", utils.Normalize("I can't breathe!"))
	assert.Equal(t, "hello there", utils.Normalize("  Hello,   there.  "))
	assert.Equal(t, "cant", utils.Normalize("CAN’T"))
	assert.Equal(t, "", utils.Normalize("?!"))
}

func TestContainsPhrase(t *testing.T) {
	normalized := utils.Normalize("I have a terrible headache")
	assert.True(t, utils.ContainsPhrase(normalized, "headache"))
	assert.True(t, utils.ContainsPhrase(normalized, "i have a"))
	// Whole-word only: "ache" inside "headache" doesn't count.
	assert.False(t, utils.ContainsPhrase(normalized, "ache"))
}
