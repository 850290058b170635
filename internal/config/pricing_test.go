package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePricingConfig_SortsDescending(t *testing.T) {
	cfg := PricingConfig{
		VolumeSteps: []VolumeStep{
			{MinQuantity: 2000, Factor: 0.9},
			{MinQuantity: 5000, Factor: 0.8},
		},
	}
	normalizePricingConfig(&cfg)

	assert.Equal(t, int64(5000), cfg.VolumeSteps[0].MinQuantity)
	assert.Equal(t, int64(2000), cfg.VolumeSteps[1].MinQuantity)
}

func TestNormalizePricingConfig_EmptyFallsBackToDefaults(t *testing.T) {
	cfg := PricingConfig{}
	normalizePricingConfig(&cfg)

	assert.Equal(t, DefaultPricingConfig().VolumeSteps, cfg.VolumeSteps)
}

func TestValidatePricingConfig(t *testing.T) {
	assert.NoError(t, validatePricingConfig(DefaultPricingConfig()))

	bad := PricingConfig{VolumeSteps: []VolumeStep{{MinQuantity: 0, Factor: 0.9}}}
	assert.Error(t, validatePricingConfig(bad))

	bad = PricingConfig{VolumeSteps: []VolumeStep{{MinQuantity: 100, Factor: 1.5}}}
	assert.Error(t, validatePricingConfig(bad))
}
