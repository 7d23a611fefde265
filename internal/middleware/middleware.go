// Package middleware contains the HTTP middleware stack: CORS, request
// logging, panic recovery, request ids, authentication, tracing, and
// the global error handler.
package middleware
