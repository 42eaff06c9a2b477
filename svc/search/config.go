package search

import "time"

type Config struct {
	Backend   string        `env:"SEARCH_BACKEND" envDefault:"postgres"`
	Index     string        `env:"SEARCH_INDEX" envDefault:"recipes"`
	Limit     int           `env:"SEARCH_LIMIT" envDefault:"50"`
	CacheTTL  time.Duration `env:"SEARCH_CACHE_TTL" envDefault:"168h"`
	CacheSize int           `env:"SEARCH_CACHE_SIZE" envDefault:"512"`
}

func DefaultConfig() Config {
	return Config{
		Backend:   "postgres",
		Index:     "recipes",
		Limit:     50,
		CacheTTL:  7 * 24 * time.Hour,
		CacheSize: 512,
	}
}
