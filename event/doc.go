// Package event models the loosely-structured invocation document and
// resolves an employee identifier out of it.
//
// Callers arrive in three known shapes (agent action-group request body,
// HTTP proxy body, bare top-level field); extraction strategies run in fixed
// priority order and the first value found wins.
package event
