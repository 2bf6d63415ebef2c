// FILE: compat/builder.go
package compat

import (
	"fmt"

	"github.com/lixenwraith/multilog"
)

// Builder creates configured logger adapters for gnet and fasthttp. It can
// use an existing *multilog.Logger instance or create a new one from a
// *multilog.Config.
type Builder struct {
	logger *multilog.Logger
	logCfg *multilog.Config
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters.
// If this is set WithConfig is ignored.
func (b *Builder) WithLogger(l *multilog.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("multilog/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig provides a configuration for a new logger instance, used only
// when no existing logger was supplied via WithLogger
func (b *Builder) WithConfig(cfg *multilog.Config) *Builder {
	b.logCfg = cfg
	return b
}

// getLogger resolves the logger to be used, creating one if necessary
func (b *Builder) getLogger() (*multilog.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.logger != nil {
		return b.logger, nil
	}

	l := multilog.NewLogger()
	cfg := b.logCfg
	if cfg == nil {
		cfg = multilog.DefaultConfig()
	}

	if err := l.ApplyConfig(cfg); err != nil {
		return nil, err
	}

	// Cache the newly created logger for subsequent builds with this builder
	b.logger = l
	return l, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// GetLogger returns the underlying *multilog.Logger instance, initializing
// it if needed
func (b *Builder) GetLogger() (*multilog.Logger, error) {
	return b.getLogger()
}
