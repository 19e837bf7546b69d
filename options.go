package entsearch

import "go.uber.org/zap"

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	highlightTag string
	logger       *zap.Logger
	observer     Observer
}

// WithHighlightTag sets the element wrapping matches (default "mark").
// The tag must be a plain lowercase element name.
func WithHighlightTag(tag string) Option {
	return func(c *engineConfig) {
		c.highlightTag = tag
	}
}

// WithLogger sets the logger used when the context carries none.
func WithLogger(l *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = l
	}
}

// WithObserver routes search instrumentation to o.
func WithObserver(o Observer) Option {
	return func(c *engineConfig) {
		c.observer = o
	}
}
