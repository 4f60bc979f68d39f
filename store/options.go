package store

type options struct {
	lowercase bool
	noRename  bool
}

// Option configures a Store.
type Option func(*options)

// WithLowercaseKeys case-folds every bucket key.
func WithLowercaseKeys(v bool) Option {
	return func(o *options) {
		o.lowercase = v
	}
}

// WithNoRename drops the source-index prefix from machine bucket keys.
// Use it when a store holds a single source and keys should equal machine names.
func WithNoRename(v bool) Option {
	return func(o *options) {
		o.noRename = v
	}
}
