package web

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrymomot/recipebox/handler"
	"github.com/dmitrymomot/recipebox/pkg/file"
	"github.com/dmitrymomot/recipebox/pkg/logger"
	"github.com/dmitrymomot/recipebox/pkg/validator"
	"github.com/dmitrymomot/recipebox/svc/recipe"
	"github.com/dmitrymomot/recipebox/svc/user"
	"github.com/dmitrymomot/recipebox/views"
)

// UploadRecipeForm is the multipart recipe form. Ingredients are entered one
// per line as "name | amount | unit" and steps one per line.
type UploadRecipeForm struct {
	Title       string                `form:"title"`
	AuthorID    string                `form:"recipe_author"`
	VideoURL    string                `form:"video_url"`
	Serving     string                `form:"serving"`
	Tags        string                `form:"tags"`
	Ingredients string                `form:"ingredients"`
	Steps       string                `form:"steps"`
	Tip         string                `form:"tip"`
	Thumbnail   *multipart.FileHeader `file:"thumbnail"`
}

func (f UploadRecipeForm) values() url.Values {
	return url.Values{
		"title":         {f.Title},
		"recipe_author": {f.AuthorID},
		"video_url":     {f.VideoURL},
		"serving":       {f.Serving},
		"tags":          {f.Tags},
		"ingredients":   {f.Ingredients},
		"steps":         {f.Steps},
		"tip":           {f.Tip},
	}
}

func (f UploadRecipeForm) input() recipe.CreateRecipeInput {
	serving, _ := strconv.Atoi(strings.TrimSpace(f.Serving))
	return recipe.CreateRecipeInput{
		Title:       f.Title,
		AuthorID:    f.AuthorID,
		VideoURL:    strings.TrimSpace(f.VideoURL),
		Serving:     serving,
		Tags:        f.Tags,
		Ingredients: recipe.ParseIngredientLines(f.Ingredients),
		Steps:       recipe.ParseStepLines(f.Steps),
		Tip:         strings.TrimSpace(f.Tip),
	}
}

type UploadAuthorForm struct {
	Name       string                `form:"name"`
	YoutubeURL string                `form:"youtube_url"`
	YoutubeID  string                `form:"youtube_id"`
	Image      *multipart.FileHeader `file:"image"`
}

func (f UploadAuthorForm) values() url.Values {
	return url.Values{
		"name":        {f.Name},
		"youtube_url": {f.YoutubeURL},
		"youtube_id":  {f.YoutubeID},
	}
}

func (m *Module) uploadRecipeForm(ctx handler.Context, _ struct{}) handler.Response {
	authors, err := m.recipes.Authors(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(m.views.UploadRecipe(views.UploadRecipeData{Authors: authors}))
}

func (m *Module) uploadAuthorForm(handler.Context, struct{}) handler.Response {
	return handler.Templ(m.views.UploadAuthor(views.UploadAuthorData{}))
}

// saveImage validates and stores an optional upload. A missing file yields nil.
func (m *Module) saveImage(ctx handler.Context, fh *multipart.FileHeader, dir string) (*file.File, error) {
	if fh == nil || fh.Size == 0 {
		return nil, nil
	}
	if err := file.Validate(fh, m.cfg.MaxUploadSize, file.ImageTypes...); err != nil {
		return nil, err
	}
	return m.files.Save(ctx, fh, dir)
}

func (m *Module) discardImage(ctx handler.Context, f *file.File) {
	if f == nil {
		return
	}
	if err := m.files.Delete(ctx, f.Key); err != nil {
		m.log.WarnContext(ctx, "discard upload", logger.Error(err))
	}
}

func imageURL(f *file.File) string {
	if f == nil {
		return ""
	}
	return f.URL
}

// fileFieldError reports client-side upload problems as a field error.
func fileFieldError(field string, err error) (url.Values, bool) {
	switch {
	case errors.Is(err, file.ErrFileTooLarge):
		return url.Values{field: {"file is too large"}}, true
	case errors.Is(err, file.ErrMIMETypeNotAllowed):
		return url.Values{field: {"must be a JPEG, PNG, GIF or WebP image"}}, true
	}
	return nil, false
}

func (m *Module) uploadRecipe(ctx handler.Context, form UploadRecipeForm) handler.Response {
	u, _ := user.FromContext(ctx)
	authors, err := m.recipes.Authors(ctx)
	if err != nil {
		return handler.Error(err)
	}
	rerender := func(errs url.Values) handler.Response {
		return handler.TemplStatus(http.StatusUnprocessableEntity, m.views.UploadRecipe(views.UploadRecipeData{
			Authors: authors, Form: form.values(), Errors: errs,
		}))
	}

	in := form.input()
	if err := in.Validate(); err != nil {
		if ve, ok := validator.Extract(err); ok {
			return rerender(ve.Values())
		}
		return handler.Error(err)
	}

	img, err := m.saveImage(ctx, form.Thumbnail, "recipes")
	if err != nil {
		if errs, ok := fileFieldError("thumbnail", err); ok {
			return rerender(errs)
		}
		return handler.Error(err)
	}

	in.ImageURL = imageURL(img)

	r, err := m.recipes.CreateRecipe(ctx, u.ID, in)
	if err != nil {
		m.discardImage(ctx, img)
		if errors.Is(err, recipe.ErrAuthorNotFound) {
			return rerender(url.Values{"recipeAuthor": {"unknown author"}})
		}
		return handler.Error(err)
	}
	return handler.Redirect(m.views.LocalizedPath(ctx, "/recipe/"+r.ID))
}

func (m *Module) uploadAuthor(ctx handler.Context, form UploadAuthorForm) handler.Response {
	rerender := func(errs url.Values) handler.Response {
		return handler.TemplStatus(http.StatusUnprocessableEntity, m.views.UploadAuthor(views.UploadAuthorData{
			Form: form.values(), Errors: errs,
		}))
	}

	in := recipe.CreateAuthorInput{
		Name:       form.Name,
		YoutubeURL: strings.TrimSpace(form.YoutubeURL),
		YoutubeID:  strings.TrimSpace(form.YoutubeID),
	}
	if err := in.Validate(); err != nil {
		if ve, ok := validator.Extract(err); ok {
			return rerender(ve.Values())
		}
		return handler.Error(err)
	}

	img, err := m.saveImage(ctx, form.Image, "authors")
	if err != nil {
		if errs, ok := fileFieldError("image", err); ok {
			return rerender(errs)
		}
		return handler.Error(err)
	}

	in.ImageURL = imageURL(img)

	a, err := m.recipes.CreateAuthor(ctx, in)
	if err != nil {
		m.discardImage(ctx, img)
		return handler.Error(err)
	}
	return handler.Redirect(m.views.LocalizedPath(ctx, "/author/"+a.ID))
}
