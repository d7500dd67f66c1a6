// Package config holds the dashboard's configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/productdash/internal/product/model"
	"github.com/abgdnv/productdash/pkg/config"
	"github.com/abgdnv/productdash/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig      `koanf:"server"`
	Log        config.LogConfig       `koanf:"log"`
	PProf      config.PProfConfig     `koanf:"pprof"`
	Shutdown   config.ShutdownConfig  `koanf:"shutdown"`
	Telemetry  config.TelemetryConfig `koanf:"telemetry"`
	Catalog    CatalogConfig          `koanf:"catalog"`
}

// CatalogConfig replaces the built-in starter products when Seed is not empty.
type CatalogConfig struct {
	Seed []SeedProduct `koanf:"seed"`
}

type SeedProduct struct {
	Name  string  `koanf:"name"`
	Price float64 `koanf:"price"`
	Stock int     `koanf:"stock"`
	Type  string  `koanf:"type"`
}

// Products returns the configured starter products, or the built-in starter
// set when none are configured. IDs are assigned by the store.
func (c *CatalogConfig) Products() []model.Product {
	if len(c.Seed) == 0 {
		return model.StarterSet()
	}
	products := make([]model.Product, 0, len(c.Seed))
	for _, s := range c.Seed {
		// types were checked by Validate
		pt, _ := model.ParseProductType(s.Type)
		products = append(products, model.Product{
			Name:  s.Name,
			Price: model.Valid(s.Price),
			Stock: model.Valid(s.Stock),
			Type:  pt,
		})
	}
	return products
}

func (c *CatalogConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Catalog ---\n")
	if len(c.Seed) == 0 {
		b.WriteString("  seed: <built-in starter set>\n")
		return b.String()
	}
	for i, s := range c.Seed {
		b.WriteString(fmt.Sprintf("  seed[%d]: %s price=%v stock=%d type=%q\n", i, s.Name, s.Price, s.Stock, s.Type))
	}
	return b.String()
}

func (c *CatalogConfig) Validate() error {
	for i, s := range c.Seed {
		if _, err := model.ParseProductType(s.Type); err != nil {
			return fmt.Errorf("catalog.seed[%d]: %w", i, err)
		}
	}
	return nil
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Shutdown.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Catalog.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer,
		&c.Log,
		&c.PProf,
		&c.Shutdown,
		&c.Telemetry,
		&c.Catalog,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
