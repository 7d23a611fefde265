// Package lib groups shared support packages that do not belong to a
// specific application layer: currency formatting, the Redis view
// cache, PDF rendering, email delivery, and background jobs.
package lib
