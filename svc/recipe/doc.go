// Package recipe is the recipe and author domain: listing, detail, creation,
// author pages with cursor pagination, view tracking and serving scaling.
//
// Persistence goes through Store. PGStore is the production implementation;
// MemoryStore backs tests and local runs without a database.
package recipe
