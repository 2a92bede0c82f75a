package slack

import (
	"strings"

	"github.com/pkg/errors"
)

// ProductConfig encapsulates per-product settings consulted when summarizing
// CI channel traffic for that product.
type ProductConfig struct {
	// Product specifies the product's name. Lookups are keyed by the uppercased
	// form of this value.
	Product string `json:"product"`
	// ErrorPatterns are case-insensitive substrings whose presence marks a
	// channel message as a failure report.
	ErrorPatterns []string `json:"errorPatterns"`
	// JobURLPrefix optionally identifies the CI system's job URL prefix so that
	// summaries can call out links to failed jobs.
	JobURLPrefix string `json:"jobURLPrefix"`
}

// ProductConfigStore is an interface for components that can look up product
// configuration by product name.
type ProductConfigStore interface {
	// Get returns configuration for the indicated product. The product name is
	// uppercased before the lookup.
	Get(product string) (ProductConfig, error)
}

type productConfigStore struct {
	products map[string]ProductConfig
}

// NewProductConfigStore returns a ProductConfigStore backed by the provided
// product configurations.
func NewProductConfigStore(products []ProductConfig) ProductConfigStore {
	store := &productConfigStore{
		products: map[string]ProductConfig{},
	}
	for _, product := range products {
		store.products[strings.ToUpper(product.Product)] = product
	}
	return store
}

func (p *productConfigStore) Get(product string) (ProductConfig, error) {
	config, ok := p.products[strings.ToUpper(product)]
	if !ok {
		return config, errors.Errorf(
			"no configuration found for product %q",
			product,
		)
	}
	return config, nil
}
