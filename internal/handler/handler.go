// Package handler is the entry point for business logic after the
// router. It binds and validates request payloads, calls the service
// layer, and writes the response.
package handler
