package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/recipebox/db/migrations"
	"github.com/dmitrymomot/recipebox/handler"
	"github.com/dmitrymomot/recipebox/modules/account"
	"github.com/dmitrymomot/recipebox/modules/api"
	"github.com/dmitrymomot/recipebox/modules/web"
	"github.com/dmitrymomot/recipebox/pkg/auth"
	"github.com/dmitrymomot/recipebox/pkg/cookie"
	"github.com/dmitrymomot/recipebox/pkg/environment"
	"github.com/dmitrymomot/recipebox/pkg/file"
	"github.com/dmitrymomot/recipebox/pkg/httpserver"
	"github.com/dmitrymomot/recipebox/pkg/i18n"
	"github.com/dmitrymomot/recipebox/pkg/logger"
	"github.com/dmitrymomot/recipebox/pkg/metrics"
	"github.com/dmitrymomot/recipebox/pkg/opensearch"
	"github.com/dmitrymomot/recipebox/pkg/pg"
	"github.com/dmitrymomot/recipebox/pkg/redis"
	"github.com/dmitrymomot/recipebox/pkg/requestid"
	"github.com/dmitrymomot/recipebox/pkg/session"
	"github.com/dmitrymomot/recipebox/pkg/workerpool"
	"github.com/dmitrymomot/recipebox/svc/recipe"
	"github.com/dmitrymomot/recipebox/svc/search"
	"github.com/dmitrymomot/recipebox/svc/user"
	"github.com/dmitrymomot/recipebox/views"
)

const readinessTimeout = 3 * time.Second

func run(ctx context.Context, cfg Config, env environment.Environment, log *slog.Logger) error {
	checks := map[string]httpserver.Check{}
	m := metrics.New("recipebox")

	var db *pgxpool.Pool
	if cfg.PG.Enabled() {
		var err error
		db, err = pg.Connect(ctx, cfg.PG)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer db.Close()
		if err := pg.Migrate(ctx, db, migrations.FS, cfg.PG, log); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		checks["postgres"] = pg.Healthcheck(db)
	} else {
		log.WarnContext(ctx, "PG_CONN_URL is empty, using in-memory stores")
	}

	pool, err := workerpool.New(cfg.Workers, workerpool.WithLogger(log))
	if err != nil {
		return fmt.Errorf("worker pool: %w", err)
	}
	defer func() {
		if err := pool.Close(cfg.HTTP.ShutdownTimeout); err != nil {
			log.WarnContext(context.Background(), "close worker pool", logger.Error(err))
		}
	}()

	// Stores.
	var (
		recipeStore recipe.Store
		userStore   user.Store
		backend     search.Backend
	)
	if db != nil {
		recipeStore = recipe.NewPGStore(db)
		userStore = user.NewPGStore(db)
		backend = search.NewPGBackend(db)
	} else {
		mem := recipe.NewMemoryStore()
		recipeStore = mem
		userStore = user.NewMemoryStore()
		backend = search.NewMemoryBackend(mem)
	}

	var indexer *search.OpenSearchBackend
	if cfg.OpenSearch.Enabled() && cfg.Search.Backend == "opensearch" {
		client, err := opensearch.New(ctx, cfg.OpenSearch)
		if err != nil {
			return fmt.Errorf("connect opensearch: %w", err)
		}
		indexer = search.NewOpenSearchBackend(client, cfg.Search.Index, backend)
		if err := indexer.EnsureIndex(ctx); err != nil {
			return fmt.Errorf("ensure search index: %w", err)
		}
		backend = indexer
		checks["opensearch"] = opensearch.Healthcheck(client)
	}

	searchSvc := search.NewService(backend,
		search.WithConfig(cfg.Search),
		search.WithSearchHook(func(t search.Tab) { m.Searched(string(t)) }),
		search.WithLogger(log),
	)
	recipeOpts := []recipe.Option{
		recipe.WithBackground(pool),
		recipe.WithEnvironment(env),
		recipe.WithViewHook(m.RecipeViewed),
		recipe.WithLogger(log),
		recipe.WithCreatedHook(func(context.Context, recipe.Recipe) { searchSvc.Invalidate() }),
		recipe.WithAuthorCreatedHook(func(context.Context, recipe.Author) { searchSvc.Invalidate() }),
	}
	if indexer != nil {
		recipeOpts = append(recipeOpts, recipe.WithCreatedHook(func(ctx context.Context, r recipe.Recipe) {
			job := func(ctx context.Context) error { return indexer.Index(ctx, r) }
			if err := pool.Submit(ctx, "search.index", job); err != nil {
				log.WarnContext(ctx, "schedule search indexing", logger.RecipeID(r.ID), logger.Error(err))
			}
		}))
	}
	recipes := recipe.NewService(recipeStore, recipeOpts...)
	users := user.NewService(userStore, cfg.Users, user.WithLogger(log))

	// Sessions.
	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return fmt.Errorf("cookies: %w", err)
	}
	var sessionStore session.Store
	switch cfg.Session.Store {
	case "redis":
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() { _ = client.Close() }()
		sessionStore = session.NewRedisStore(client, cfg.Session.RedisPrefix)
		checks["redis"] = redis.Healthcheck(client)
	default:
		mem := session.NewMemoryStore(time.Minute)
		defer func() { _ = mem.Close() }()
		sessionStore = mem
	}
	sessions := session.New(sessionStore, session.NewCookieTransport(cookies, cfg.Session.CookieName),
		session.WithConfig(cfg.Session), session.WithLogger(log))

	files, err := file.NewFromConfig(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("file storage: %w", err)
	}

	// Views.
	locales := i18n.DefaultConfig()
	catalog, err := views.Catalog()
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	tr, err := i18n.NewTranslator(catalog, locales)
	if err != nil {
		return fmt.Errorf("translator: %w", err)
	}
	renderer, err := views.New(tr, locales)
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	pageErrors := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage:  renderer.ErrorPage,
		ErrorToast: renderer.ErrorToast,
	})

	// Routes.
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		m.Middleware,
		environment.Middleware(env),
		sessions.Middleware,
		user.CurrentUser(users, log),
		i18n.Router(locales,
			i18n.WithRouterLogger(log),
			i18n.WithRedirectHook(func(l i18n.Locale) { m.LocaleRedirect(l.String()) }),
		),
		views.Middleware(locales),
	)

	r.Get("/health/live", httpserver.Liveness())
	r.Get("/health/ready", httpserver.Readiness(log, readinessTimeout, checks))
	r.Handle("/metrics", m.Handler())
	if local, ok := files.(*file.LocalStorage); ok {
		r.Handle("/static/uploads/*", http.StripPrefix("/static/uploads/", http.FileServer(http.Dir(local.Dir()))))
	}

	accountOpts := account.RouterOptions{}
	if cfg.Google.Enabled() {
		google := account.NewGoogleService(cfg.Google, auth.NewGoogle(cfg.Google), users, sessions, cookies, pageErrors, log)
		accountOpts.GoogleOAuth = google
		accountOpts.SignOut = google.SignOut()
	} else {
		log.WarnContext(ctx, "google oauth is not configured, sign-in is disabled")
	}
	r.Handle("/auth/*", account.Router(accountOpts))
	r.Mount("/api", api.New(cfg.API, recipes, searchSvc, log).Handle())

	pages := web.New(web.Config{MaxUploadSize: cfg.Storage.MaxSize, GoogleEnabled: cfg.Google.Enabled()},
		recipes, searchSvc, files, renderer, pageErrors, log).Handle()
	for _, l := range locales.Locales {
		r.Mount("/"+l.String(), pages)
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
