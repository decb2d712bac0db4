package ixid

// config holds codec configuration.
type config struct {
	schema Schema
}

// Option configures Encode and Decode.
type Option func(*config)

func newConfig(opts []Option) *config {
	cfg := &config{schema: DefaultSchema}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithSchema selects the field layout. Encoder and decoder must agree.
//
// Default: DefaultSchema (SchemaV2)
func WithSchema(s Schema) Option {
	return func(c *config) {
		c.schema = s
	}
}
