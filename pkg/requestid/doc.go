// Package requestid tags every request with a correlation id.
//
// Middleware reuses a well-formed inbound X-Request-ID header or generates a
// UUID, stores it in the request context and echoes it back on the response.
// LoggerExtractor plugs the id into pkg/logger so every log line written with
// the request context carries it.
package requestid
