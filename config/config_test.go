package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	require.NoError(t, Load())
	c := Get()

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "mongodb", c.Database.Type)
	assert.Equal(t, "health_tracker", c.Database.Name)
	assert.Equal(t, 0.9, c.Dialogue.MatchConfidence)
	assert.Equal(t, 0.3, c.Dialogue.FallbackConfidence)
	assert.Equal(t, 0.5, c.Dialogue.MinConfidence)
	assert.Equal(t, "gemini", c.Knowledge.Provider)
}

func TestValidateConfidenceOrdering(t *testing.T) {
	t.Setenv("INTENT_MIN_CONFIDENCE", "0.2")
	err := Load()
	assert.Error(t, err)

	t.Setenv("INTENT_MIN_CONFIDENCE", "0.5")
	require.NoError(t, Load())
}

func TestBuildDatabaseURI(t *testing.T) {
	c := &Config{}
	c.Database.Host = "localhost"
	c.Database.Port = "27017"
	c.Database.Name = "health_tracker"
	assert.Equal(t, "mongodb://localhost:27017/health_tracker", c.BuildDatabaseURI())

	c.Database.URI = "mongodb://custom:27017/other"
	assert.Equal(t, "mongodb://custom:27017/other", c.BuildDatabaseURI())
}
