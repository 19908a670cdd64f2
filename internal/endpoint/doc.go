// Package endpoint defines the explicit registry of booking API
// operations: identifier, method, path pattern, response shape,
// mutating flag, and static fallback default.
package endpoint
