// Package redis connects a go-redis client with retry and exposes a
// healthcheck for the readiness probe. The session RedisStore is built on
// the returned client.
package redis
