// Package core contains canonical lookup domain contracts, entities, and
// orchestration logic. Store and envelope adapters must depend on this
// package; core must not depend on store-specific or transport-specific
// adapters.
package core
