package recipe

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/recipebox/pkg/async"
	"github.com/dmitrymomot/recipebox/pkg/environment"
	"github.com/dmitrymomot/recipebox/pkg/logger"
	"github.com/dmitrymomot/recipebox/pkg/workerpool"
)

// Listing sizes for the home page and paged author recipes.
const (
	HomeRecipeLimit = 5
	HomeAuthorLimit = 6
	PageLimit       = 50
)

// Background runs work after the response has been written.
type Background interface {
	Submit(ctx context.Context, name string, job workerpool.Job) error
}

// Service implements recipe and author use cases on top of a Store.
type Service struct {
	store       Store
	bg          Background
	env         environment.Environment
	onView      func()
	onNew       []func(context.Context, Recipe)
	onNewAuthor []func(context.Context, Author)
	log         *slog.Logger
	now         func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithBackground runs view tracking on bg instead of inline.
func WithBackground(bg Background) Option {
	return func(s *Service) { s.bg = bg }
}

// WithEnvironment sets the runtime environment. Development skips view tracking.
func WithEnvironment(env environment.Environment) Option {
	return func(s *Service) { s.env = env }
}

// WithViewHook registers a callback run after every recorded view.
func WithViewHook(fn func()) Option {
	return func(s *Service) { s.onView = fn }
}

// WithCreatedHook registers a callback run after a recipe is stored.
func WithCreatedHook(fn func(context.Context, Recipe)) Option {
	return func(s *Service) {
		if fn != nil {
			s.onNew = append(s.onNew, fn)
		}
	}
}

// WithAuthorCreatedHook registers a callback run after an author is stored.
func WithAuthorCreatedHook(fn func(context.Context, Author)) Option {
	return func(s *Service) {
		if fn != nil {
			s.onNewAuthor = append(s.onNewAuthor, fn)
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service. It defaults to production with a discarded log.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		env:   environment.Production,
		log:   logger.Discard(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Home loads the newest recipes, a few authors and the total recipe count
// concurrently.
func (s *Service) Home(ctx context.Context) (Home, error) {
	recipes := async.Go(ctx, func(ctx context.Context) ([]Summary, error) {
		return s.store.LatestRecipes(ctx, HomeRecipeLimit)
	})
	authors := async.Go(ctx, func(ctx context.Context) ([]Author, error) {
		return s.store.ListAuthors(ctx, HomeAuthorLimit)
	})
	total := async.Go(ctx, s.store.CountRecipes)

	var (
		h    Home
		errs []error
		err  error
	)
	h.Recipes, err = recipes.Await(ctx)
	errs = append(errs, err)
	h.Authors, err = authors.Await(ctx)
	errs = append(errs, err)
	h.TotalRecipes, err = total.Await(ctx)
	errs = append(errs, err)
	if err := errors.Join(errs...); err != nil {
		return Home{}, err
	}
	return h, nil
}

// Recipe returns one recipe by ID.
func (s *Service) Recipe(ctx context.Context, id string) (Recipe, error) {
	if strings.TrimSpace(id) == "" {
		return Recipe{}, ErrMissingID
	}
	return s.store.GetRecipe(ctx, id)
}

// TrackView increments the view counter in the background. Views are not
// counted in development.
func (s *Service) TrackView(ctx context.Context, id string) {
	if s.env == environment.Development || id == "" {
		return
	}
	job := func(ctx context.Context) error {
		if err := s.store.IncrementViews(ctx, id); err != nil {
			return err
		}
		if s.onView != nil {
			s.onView()
		}
		return nil
	}
	if s.bg == nil {
		if err := job(context.WithoutCancel(ctx)); err != nil {
			s.log.WarnContext(ctx, "increment views", logger.RecipeID(id), logger.Error(err))
		}
		return
	}
	if err := s.bg.Submit(ctx, "recipe.track_view", job); err != nil {
		s.log.WarnContext(ctx, "schedule view increment", logger.RecipeID(id), logger.Error(err))
	}
}

// CreateRecipe validates in and stores a new recipe owned by userID.
func (s *Service) CreateRecipe(ctx context.Context, userID string, in CreateRecipeInput) (Recipe, error) {
	if err := in.Validate(); err != nil {
		return Recipe{}, err
	}
	author, err := s.store.GetAuthor(ctx, in.AuthorID)
	if err != nil {
		return Recipe{}, err
	}

	steps := make([]string, 0, len(in.Steps))
	for _, st := range in.Steps {
		steps = append(steps, strings.TrimSpace(st.Description))
	}
	now := s.now().UTC()
	r := Recipe{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(in.Title),
		AuthorID:     author.ID,
		YoutubeURL:   in.VideoURL,
		Ingredients:  in.Ingredients,
		Steps:        steps,
		Tags:         SplitTags(in.Tags),
		ThumbnailURL: in.ImageURL,
		Serving:      in.Serving,
		Tip:          in.Tip,
		Author:       AuthorRef{Name: author.Name, ImageURL: author.ImageURL},
		UserID:       userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateRecipe(ctx, r); err != nil {
		return Recipe{}, err
	}
	s.log.InfoContext(ctx, "recipe created", logger.RecipeID(r.ID), logger.AuthorID(r.AuthorID))
	for _, fn := range s.onNew {
		fn(ctx, r)
	}
	return r, nil
}

// Authors lists every author.
func (s *Service) Authors(ctx context.Context) ([]Author, error) {
	return s.store.ListAuthors(ctx, 0)
}

// Author returns one author by ID.
func (s *Service) Author(ctx context.Context, id string) (Author, error) {
	if strings.TrimSpace(id) == "" {
		return Author{}, ErrMissingID
	}
	return s.store.GetAuthor(ctx, id)
}

// CreateAuthor validates in and stores a new author.
func (s *Service) CreateAuthor(ctx context.Context, in CreateAuthorInput) (Author, error) {
	if err := in.Validate(); err != nil {
		return Author{}, err
	}
	now := s.now().UTC()
	a := Author{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		ImageURL:   in.ImageURL,
		YoutubeURL: in.YoutubeURL,
		YoutubeID:  in.YoutubeID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateAuthor(ctx, a); err != nil {
		return Author{}, err
	}
	s.log.InfoContext(ctx, "author created", logger.AuthorID(a.ID))
	for _, fn := range s.onNewAuthor {
		fn(ctx, a)
	}
	return a, nil
}

// AuthorRecipes returns one page of an author's recipes. It fetches one row
// beyond limit to learn whether another page exists.
func (s *Service) AuthorRecipes(ctx context.Context, authorID, cursor string, limit int) (Page, error) {
	if strings.TrimSpace(authorID) == "" {
		return Page{}, ErrMissingID
	}
	if limit <= 0 || limit > PageLimit {
		limit = PageLimit
	}
	if _, err := s.store.GetAuthor(ctx, authorID); err != nil {
		return Page{}, err
	}

	rows, err := s.store.RecipesByAuthor(ctx, authorID, cursor, limit+1)
	if err != nil {
		return Page{}, err
	}
	p := Page{Recipes: rows, HasMore: len(rows) > limit}
	if p.HasMore {
		p.Recipes = rows[:limit]
		next := p.Recipes[len(p.Recipes)-1].ID
		p.NextCursor = &next
	}
	if p.Recipes == nil {
		p.Recipes = []Summary{}
	}
	return p, nil
}
