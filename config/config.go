package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Webshare Webshare `json:"webshare" yaml:"webshare" mapstructure:"webshare"`
	Storage  Storage  `json:"storage" yaml:"storage" mapstructure:"storage"`
	Search   Search   `json:"search" yaml:"search" mapstructure:"search"`
	Server   Server   `json:"server" yaml:"server" mapstructure:"server"`
}

type Webshare struct {
	Scheme      string        `json:"scheme" yaml:"scheme" mapstructure:"scheme" validate:"required,oneof=http https"`
	Host        string        `json:"host" yaml:"host" mapstructure:"host" validate:"required"`
	Token       string        `json:"token" yaml:"token" mapstructure:"token"`
	BaseBackoff time.Duration `json:"backoff" yaml:"backoff" mapstructure:"backoff" validate:"gte=0"`
	MaxRetries  int           `json:"maxRetries" yaml:"maxRetries" mapstructure:"maxRetries" validate:"gte=0"`
}

// URL is the base url of the webshare api
func (w Webshare) URL() string {
	u := url.URL{
		Scheme: w.Scheme,
		Host:   w.Host,
	}
	return u.String()
}

// Storage configures where catalogs are kept. Catalog files live in <profileDir>/series_db.
type Storage struct {
	ProfileDir string `json:"profileDir" yaml:"profileDir" mapstructure:"profileDir" validate:"required"`
}

// Search houses the parameters sent with every planned query
type Search struct {
	Category      string `json:"category" yaml:"category" mapstructure:"category"`
	Sort          string `json:"sort" yaml:"sort" mapstructure:"sort"`
	Limit         int    `json:"limit" yaml:"limit" mapstructure:"limit" validate:"gte=1"`
	Offset        int    `json:"offset" yaml:"offset" mapstructure:"offset" validate:"gte=0"`
	MaybeRemoved  bool   `json:"maybeRemoved" yaml:"maybeRemoved" mapstructure:"maybeRemoved"`
	Concurrency   int    `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency" validate:"gte=1"`
	DedupeQueries bool   `json:"dedupeQueries" yaml:"dedupeQueries" mapstructure:"dedupeQueries"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	return c, err
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration is usable
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
