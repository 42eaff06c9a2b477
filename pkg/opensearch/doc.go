// Package opensearch builds an OpenSearch client from environment config,
// verifies the cluster at startup and creates indices on demand. Search is
// optional in recipebox: with no addresses configured the Postgres backend
// serves queries.
package opensearch
