// Package repository loads the readiness dataset and serves immutable copies of it.
package repository

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithPath reads the dataset from a YAML file instead of the embedded default.
func WithPath(path string) Option {
	return func(l *Loader) {
		l.path = path
	}
}

// WithRequireCoordinates makes a country without a centroid a load error.
func WithRequireCoordinates(require bool) Option {
	return func(l *Loader) {
		l.requireCoordinates = require
	}
}

// WithBytes loads the dataset from raw YAML. Mostly useful in tests.
func WithBytes(b []byte) Option {
	return func(l *Loader) {
		l.raw = b
	}
}
