package store

import (
	"github.com/google/uuid"

	"github.com/roach88/fastnbt/internal/nbt"
)

// Domain prefix for query run ids.
const domainRun = "fastnbt/run/v1"

// Snapshot is the full saved state of one entity at one point in the log.
type Snapshot struct {
	UUID      uuid.UUID
	Name      string
	Kind      string
	State     nbt.Compound
	StateHash string
	Seq       int64
}

// QueryRun records one pattern evaluated over a set of entities.
type QueryRun struct {
	ID          string
	Pattern     nbt.Compound
	PatternHash string
	Invert      bool
	Path        string
	Unknown     string
	Total       int
	Seq         int64
	Matches     []Match
}

// Match is an entity selected by a query run.
type Match struct {
	UUID uuid.UUID
	Name string
}

// RunID derives a query run id from its pattern hash, inversion and seq.
func RunID(patternHash string, invert bool, seq int64) (string, error) {
	return nbt.Hash(domainRun, nbt.Compound{
		"pattern": nbt.String(patternHash),
		"invert":  nbt.Bool(invert),
		"seq":     nbt.Long(seq),
	})
}
