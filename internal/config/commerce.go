package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CommerceConfig holds business parameters that operators tune without a
// redeploy: commission percentages per organization tier, the flat shipping
// fee, and the display currency.
type CommerceConfig struct {
	CommissionByTier map[string]float64 `mapstructure:"commissionByTier"`
	ShippingFee      int64              `mapstructure:"shippingFee"`
	Currency         string             `mapstructure:"currency"`
}

func DefaultCommerceConfig() CommerceConfig {
	return CommerceConfig{
		CommissionByTier: map[string]float64{
			"VIP":      10,
			"STANDARD": 20,
		},
		ShippingFee: 30_000,
		Currency:    "VND",
	}
}

// CommerceConfigHolder serves the current commerce config and hot-reloads it
// when the file changes.
type CommerceConfigHolder struct {
	current atomic.Value // holds CommerceConfig
}

func NewCommerceHolder() (*CommerceConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("commerce")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/stagehub/config") // Volume-mounted config
	v.AddConfigPath("/etc/stagehub")            // System config
	v.AddConfigPath(".")                        // Current directory (dev mode)

	v.SetEnvPrefix("STAGEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultCommerceConfig()
		v.SetDefault("commerce.commissionByTier", defaults.CommissionByTier)
		v.SetDefault("commerce.shippingFee", defaults.ShippingFee)
		v.SetDefault("commerce.currency", defaults.Currency)
	}

	var cfg CommerceConfig
	if err := v.UnmarshalKey("commerce", &cfg); err != nil {
		return nil, err
	}
	if err := validateCommerceConfig(cfg); err != nil {
		return nil, err
	}

	holder := &CommerceConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CommerceConfig
		if err := v.UnmarshalKey("commerce", &updated); err != nil {
			log.Printf("[commerce-config] reload failed: %v", err)
			return
		}
		if err := validateCommerceConfig(updated); err != nil {
			log.Printf("[commerce-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[commerce-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// Current returns the active commerce config.
func (h *CommerceConfigHolder) Current() CommerceConfig {
	return h.current.Load().(CommerceConfig)
}

// CommissionFor returns the commission percent for an organization tier.
func (h *CommerceConfigHolder) CommissionFor(tier string) float64 {
	cfg := h.Current()
	if pct, ok := cfg.CommissionByTier[strings.ToUpper(strings.TrimSpace(tier))]; ok {
		return pct
	}
	return cfg.CommissionByTier["STANDARD"]
}

func validateCommerceConfig(cfg CommerceConfig) error {
	if len(cfg.CommissionByTier) == 0 {
		return errors.New("commerce config requires at least one commission tier")
	}
	for tier, pct := range cfg.CommissionByTier {
		if pct < 0 || pct > 100 {
			return errors.New("commission percent out of range for tier " + tier)
		}
	}
	if cfg.ShippingFee < 0 {
		return errors.New("shipping fee must not be negative")
	}
	return nil
}

// NewStaticCommerceHolder returns a holder with fixed values, for tests.
func NewStaticCommerceHolder(cfg CommerceConfig) *CommerceConfigHolder {
	holder := &CommerceConfigHolder{}
	holder.current.Store(cfg)
	return holder
}
