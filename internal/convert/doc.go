// Package convert maps top-level field names of an entity's saved state to
// extractors that compute just that field.
//
// A Registry is assembled once through a Builder and then frozen. Lookups
// on a frozen Registry take no locks and are safe from any goroutine.
//
// Each extractor must return exactly what the full save writes under its
// name, or nil when the full save omits the field for that entity.
// Extractors that need a capability (Living, Player, ServerPlayer) are
// registered with RegisterFor, which returns nil for entities lacking it.
package convert
