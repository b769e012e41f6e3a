package quackstore

import (
	"context"
	"log/slog"

	"github.com/quackstagram/quackstore/pkg/core"
	"github.com/quackstagram/quackstore/pkg/models"
	"github.com/quackstagram/quackstore/pkg/social"
)

// Service is the repository surface exposed to the UI layer.
type Service = social.Service

// Config locates the flat files of one data directory.
type Config = social.Config

// Re-exported record types, so library consumers rarely need the inner
// packages.
type (
	User         = models.User
	Picture      = models.Picture
	Notification = models.Notification
	Event        = core.Event
)

// options holds the internal configuration for Open.
type options struct {
	config *social.Config
	logger *slog.Logger
}

// Option defines a functional option for configuring the store.
type Option func(*options)

// WithConfig supplies a full Config instead of the defaults. The data
// directory argument of Open still wins when non-empty.
func WithConfig(cfg social.Config) Option {
	return func(o *options) {
		o.config = &cfg
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Open wires a Service over the given data directory and ensures the
// directory exists. An empty dir keeps the configured (or default)
// location.
func Open(dir string, opts ...Option) (*Service, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg := social.DefaultConfig()
	if o.config != nil {
		cfg = *o.config
	}
	if dir != "" {
		cfg.DataDir = dir
	}

	svc := social.NewService(cfg, o.logger)
	if err := svc.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return svc, nil
}
