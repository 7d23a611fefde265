// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated data from the handler, performs business operations, and
// calls repository methods to interact with the data.
//
// The service layer also owns the error policy for database reads:
// failures are logged with the underlying error and replaced with a
// generic, operation-specific message before they surface to the
// caller. Lookups by id that find no row return an explicit not-found
// instead.
package service
