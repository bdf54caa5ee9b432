// Package store provides SQLite-backed storage for entity snapshots and
// recorded query runs.
//
// Tables:
//   - snapshots: full saved state of an entity, keyed by (uuid, state hash)
//   - query_runs: one row per evaluated pattern
//   - query_matches: the entities a run selected, in scan order
//
// All ordering uses seq INTEGER (logical clock), never timestamps. Queries
// order by seq ASC with a binary-collated tiebreak so results are stable.
//
// States and patterns are stored as typed canonical JSON (nbt.MarshalCanonical)
// and identified by domain-separated SHA-256 hashes (nbt.Hash).
//
// The database runs in WAL mode with foreign keys enforced and a single
// connection. Schema changes are numbered migrations tracked in
// PRAGMA user_version.
package store
