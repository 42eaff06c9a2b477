// Package search finds recipes by title or ingredient and authors by name.
//
// A Service validates the query, dispatches to the Backend method for the
// requested Tab and caches results for a configurable window. Backends exist
// for Postgres (ILIKE), OpenSearch and an in-memory recipe store.
package search
