// Package fallback implements the layered fallback chain used when the
// booking API cannot be reached: stale cache, static default, empty
// shape. The returned value always matches the shape a successful call
// would have produced.
package fallback
