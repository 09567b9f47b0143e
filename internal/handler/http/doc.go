// Package http implements the HTTP transport of the VitaScope server.
// It provides the chi router, the middleware chain (tracing, access
// logging, compression, sessions, rate limits) and the handlers of the
// account pages and the telemetry API. Business rules live in the service
// layer; handlers translate forms, sessions and errors to HTTP.
package http
