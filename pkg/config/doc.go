// Package config fills typed configuration structs from the environment.
//
// Fields are described with github.com/caarlos0/env tags. A .env file in the
// working directory is read through github.com/joho/godotenv first, but real
// environment variables always win:
//
//	type AppConfig struct {
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Nothing is cached. Callers load once at startup and pass the struct down.
package config
