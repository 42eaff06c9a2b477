// Package views renders the HTML pages and DataStar partials.
//
// Templates are embedded html/template files executed through
// templ.FromGoHTML, so every page and partial is a templ.Component that the
// handler package can send as a full page or as an element patch. Each
// component reads the locale, the signed-in user and the current path from
// the request context when it renders.
package views
