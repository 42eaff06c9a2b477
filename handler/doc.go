// Package handler provides typed HTTP handlers for recipebox.
//
// A HandlerFunc receives a Context and a bound request value and returns a
// Response. Wrap turns it into an http.HandlerFunc:
//
//	type recipeRequest struct {
//	    ID       string  `path:"id"`
//	    Servings float64 `query:"servings"`
//	}
//
//	r.Get("/recipe/{id}", handler.Wrap(
//	    func(ctx handler.Context, req recipeRequest) handler.Response {
//	        rec, err := svc.Recipe(ctx, req.ID)
//	        if err != nil {
//	            return handler.Error(err)
//	        }
//	        return handler.Templ(views.RecipePage(rec, req.Servings))
//	    },
//	    handler.WithBinders[handler.Context, recipeRequest](
//	        binder.Path(chi.URLParam),
//	        binder.Query(),
//	    ),
//	    handler.WithErrorHandler[handler.Context, recipeRequest](errorHandler),
//	))
//
// Responses adapt to DataStar requests (Accept: text/event-stream): Templ
// patches elements over SSE, Redirect sends a client-side redirect, and the
// error handler renders a toast instead of a full page.
//
// Errors are HTTPError values (status code plus translation key) or
// ValidationError field maps. JSON and JSONError encode the API envelope
// {data, meta, error:{code, message, details}}.
package handler
