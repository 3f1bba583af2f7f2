package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Config holds the overall application configuration.
type Config struct {
	CallsAPIURL string `envconfig:"CALLS_API_URL" default:"https://api.bland.ai/v1/calls"`
	CallsAPIKey string `envconfig:"CALLS_API_KEY" required:"true"`

	// PageLimit is the page size (or offset-window width) requested per
	// call-records page. Pagination selects the request shape: "offset",
	// "token" or "shortpage".
	PageLimit  int    `envconfig:"CALLS_PAGE_LIMIT" default:"1000"`
	Pagination string `envconfig:"CALLS_PAGINATION" default:"offset"`

	// FlatRatePerCall is the billable rate used to derive call profit.
	FlatRatePerCall decimal.Decimal `envconfig:"FLAT_RATE_PER_CALL" default:"2.50"`

	// Timezone is the reference zone the API's date filtering is anchored
	// to; day bounds are computed in this zone before hitting the wire.
	Timezone string        `envconfig:"REFERENCE_TIMEZONE" default:"UTC"`
	CacheTTL time.Duration `envconfig:"METRICS_CACHE_TTL" default:"10s"`

	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGO_DB" default:"callpulse"`

	HTTPAddr     string        `envconfig:"HTTP_ADDR" default:":8080"`
	ReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"120s"`
	IdleTimeout  time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, skipping: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
