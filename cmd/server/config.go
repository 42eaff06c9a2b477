package main

import (
	"github.com/dmitrymomot/recipebox/modules/api"
	"github.com/dmitrymomot/recipebox/pkg/auth"
	"github.com/dmitrymomot/recipebox/pkg/cookie"
	"github.com/dmitrymomot/recipebox/pkg/file"
	"github.com/dmitrymomot/recipebox/pkg/httpserver"
	"github.com/dmitrymomot/recipebox/pkg/opensearch"
	"github.com/dmitrymomot/recipebox/pkg/pg"
	"github.com/dmitrymomot/recipebox/pkg/redis"
	"github.com/dmitrymomot/recipebox/pkg/session"
	"github.com/dmitrymomot/recipebox/pkg/workerpool"
	"github.com/dmitrymomot/recipebox/svc/search"
	"github.com/dmitrymomot/recipebox/svc/user"
)

// Config is the whole process configuration. Nested structs carry their own
// env tags.
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	AppName string `env:"APP_NAME" envDefault:"recipebox"`

	HTTP       httpserver.Config
	PG         pg.Config
	Redis      redis.Config
	OpenSearch opensearch.Config
	Cookie     cookie.Config
	Session    session.Config
	Storage    file.Config
	Google     auth.GoogleConfig
	Users      user.Config
	Search     search.Config
	API        api.Config
	Workers    workerpool.Config
}
