// Package validator composes field rules into a single error.
//
//	err := validator.Apply(
//	    validator.Required("title", in.Title),
//	    validator.MaxLen("title", in.Title, 200),
//	    validator.ValidURL("youtube_url", in.YoutubeURL),
//	)
//
// Apply returns ValidationErrors, which converts to the url.Values shape
// used by handler.ValidationError through Values. Each error carries a
// translation key for the locale catalogs.
package validator
