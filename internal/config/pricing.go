package config

import (
	"errors"
	"log"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// VolumeStep applies Factor to base-price quotes once quantity reaches MinQuantity.
type VolumeStep struct {
	MinQuantity int64   `mapstructure:"minQuantity"`
	Factor      float64 `mapstructure:"factor"`
}

// PricingConfig holds operator-tunable pricing defaults.
type PricingConfig struct {
	VolumeSteps []VolumeStep `mapstructure:"volumeSteps"`
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		VolumeSteps: []VolumeStep{
			{MinQuantity: 5000, Factor: 0.8},
			{MinQuantity: 2000, Factor: 0.9},
		},
	}
}

// PricingConfigHolder exposes the current pricing config with hot reload.
type PricingConfigHolder struct {
	current atomic.Value // holds PricingConfig
}

func NewPricingConfigHolder() (*PricingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/boostpanel/config") // Volume-mounted config
	v.AddConfigPath("/etc/boostpanel")            // System config
	v.AddConfigPath(".")                          // Current directory (dev mode)

	v.SetEnvPrefix("BOOSTPANEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultPricingConfig()
		v.SetDefault("pricing.volumeSteps", defaults.VolumeSteps)
	}

	var cfg PricingConfig
	if err := v.UnmarshalKey("pricing", &cfg); err != nil {
		return nil, err
	}
	normalizePricingConfig(&cfg)
	if err := validatePricingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PricingConfig
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Printf("[pricing-config] reload failed: %v", err)
			return
		}
		normalizePricingConfig(&updated)
		if err := validatePricingConfig(updated); err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *PricingConfigHolder) Get() PricingConfig {
	return h.current.Load().(PricingConfig)
}

func normalizePricingConfig(cfg *PricingConfig) {
	if len(cfg.VolumeSteps) == 0 {
		cfg.VolumeSteps = DefaultPricingConfig().VolumeSteps
	}
	// Lookup expects descending thresholds: first matching step wins.
	sort.Slice(cfg.VolumeSteps, func(i, j int) bool {
		return cfg.VolumeSteps[i].MinQuantity > cfg.VolumeSteps[j].MinQuantity
	})
}

func validatePricingConfig(cfg PricingConfig) error {
	for _, step := range cfg.VolumeSteps {
		if step.MinQuantity <= 0 {
			return errors.New("pricing.volumeSteps minQuantity must be positive")
		}
		if step.Factor <= 0 || step.Factor > 1 {
			return errors.New("pricing.volumeSteps factor must be in (0, 1]")
		}
	}
	return nil
}
