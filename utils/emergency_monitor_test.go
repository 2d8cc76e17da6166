package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-tracker-backend/models"
	"health-tracker-backend/utils"
)

func TestScanHighTier(t *testing.T) {
	mon := utils.NewEmergencyMonitor()

	ev := mon.Scan("I'm having severe chest pain and can't breathe")
	require.NotNil(t, ev)
	assert.Equal(t, models.TierHigh, ev.Tier)
	assert.Contains(t, ev.Matched, "chest pain")
}

func TestScanSelfHarm(t *testing.T) {
	mon := utils.NewEmergencyMonitor()

	ev := mon.Scan("I feel suicidal")
	require.NotNil(t, ev)
	assert.Equal(t, "self_harm", ev.Category)
	assert.Equal(t, models.TierHigh, ev.Tier)
}

func TestScanMediumTier(t *testing.T) {
	mon := utils.NewEmergencyMonitor()

	ev := mon.Scan("severe pain in my leg")
	require.NotNil(t, ev)
	assert.Equal(t, models.TierMedium, ev.Tier)
}

func TestScanApostropheVariants(t *testing.T) {
	mon := utils.NewEmergencyMonitor()

	require.NotNil(t, mon.Scan("I can't breathe"))
	require.NotNil(t, mon.Scan("i cant breathe"))
}

func TestScanNoMatch(t *testing.T) {
	mon := utils.NewEmergencyMonitor()

	assert.Nil(t, mon.Scan("my knee hurts a little"))
	assert.Nil(t, mon.Scan("I have a headache"))
}
