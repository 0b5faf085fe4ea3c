package parser

import (
	"fmt"
	"log"

	"docfill/internal/config"
	"docfill/internal/port"
)

// ProviderFactory is a function that creates a Generator from a provider config.
type ProviderFactory func(cfg *config.ParserProviderConfig) (port.Generator, error)

// registry of provider factories, populated by init() in each provider package
// or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewGenerator creates a Generator from a provider config using the registered factory.
func NewGenerator(cfg *config.ParserProviderConfig) (port.Generator, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown parser provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// NewChain builds one logical generator from an ordered provider list.
// Providers that cannot be constructed are logged and skipped. It returns
// nil when no provider is usable; several providers are wrapped in a
// FallbackGenerator.
func NewChain(cfgs []*config.ParserProviderConfig) port.Generator {
	var gens []port.Generator
	var names []string
	for _, cfg := range cfgs {
		g, err := NewGenerator(cfg)
		if err != nil {
			log.Printf("parser.NewChain: skipping %s: %v", cfg.Provider, err)
			continue
		}
		gens = append(gens, g)
		names = append(names, cfg.Provider)
	}

	switch len(gens) {
	case 0:
		return nil
	case 1:
		return gens[0]
	default:
		return NewFallbackGenerator(gens, names)
	}
}
