// Package binder decodes HTTP requests into tagged structs for handler.Wrap.
//
// Each binder reads one source and only touches fields carrying its tag:
//
//	type CreateRecipeRequest struct {
//	    AuthorID string `path:"authorId"`
//	    Cursor   string `query:"cursor"`
//	    Title    string `json:"title" form:"title"`
//	}
//
// Body binders (JSON, Form) return ErrBinderNotApplicable when the request's
// content type belongs to another binder, so both can be registered on the
// same route and the matching one wins.
package binder
