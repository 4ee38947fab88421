package config

import "time"

// Pipeline tunes the simulation. Cooldowns are deliberately configuration, not
// constants: product has not settled whether declining a counter should cool
// the seller for less time than an outright reject.
type Pipeline struct {
	CatalogPath string `env:"CATALOG_PATH"`

	CommissionPercent   float64 `env:"COMMISSION_PERCENT" envDefault:"0.08"`
	ListingExpiryMonths int     `env:"LISTING_EXPIRY_MONTHS" envDefault:"3"`

	RejectCooldown  time.Duration `env:"NEGOTIATION_REJECT_COOLDOWN" envDefault:"1h"`
	CounterCooldown time.Duration `env:"NEGOTIATION_COUNTER_COOLDOWN" envDefault:"30m"`

	// RandomSeed fixes the random source for reproducible runs; 0 seeds from
	// the wall clock.
	RandomSeed int64 `env:"RANDOM_SEED" envDefault:"0"`
}
