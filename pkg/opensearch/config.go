package opensearch

type Config struct {
	Addresses  []string `env:"OPENSEARCH_ADDRESSES" envSeparator:","`
	Username   string   `env:"OPENSEARCH_USERNAME"`
	Password   string   `env:"OPENSEARCH_PASSWORD"`
	MaxRetries int      `env:"OPENSEARCH_MAX_RETRIES" envDefault:"3"`
}

// Enabled reports whether any cluster address is configured.
func (c Config) Enabled() bool { return len(c.Addresses) > 0 }
