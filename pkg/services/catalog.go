package services

import (
	"io"
	"log/slog"
	"sort"
	"sync"
)

// Catalog is a concurrency-safe, reloadable set of service
// definitions, typically backed by a YAML file on disk.
type Catalog struct {
	mu     sync.RWMutex
	defs   map[string]Definition
	logger *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithCatalogLogger sets the diagnostic log sink.
func WithCatalogLogger(logger *slog.Logger) CatalogOption {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// NewCatalog creates an empty catalog.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{
		defs:   make(map[string]Definition),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Replace swaps the catalog contents in one step. Readers never
// observe a partially loaded set.
func (c *Catalog) Replace(defs []Definition) {
	next := make(map[string]Definition, len(defs))
	for _, def := range defs {
		next[def.Name] = def
	}

	c.mu.Lock()
	c.defs = next
	c.mu.Unlock()

	c.logger.Debug("catalog replaced", slog.Int("services", len(next)))
}

// Reload loads the document at path and replaces the catalog contents.
// On error the previous contents stay in place.
func (c *Catalog) Reload(path string) error {
	defs, err := LoadFile(path)
	if err != nil {
		return err
	}
	c.Replace(defs)
	return nil
}

// Get looks up a definition by name.
func (c *Catalog) Get(name string) (Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, ok := c.defs[name]
	if !ok {
		return Definition{}, ErrUnknownService
	}
	return def, nil
}

// Names returns the defined service names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports how many services are defined.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.defs)
}
