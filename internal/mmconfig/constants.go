package mmconfig

const DatabaseFileExt = ".mm.yaml"

// DatabaseFileExtensions are all recognized database file extensions.
var DatabaseFileExtensions = []string{".mm.yaml", ".mmdb.yaml", ".yaml", ".yml"}

// SnapshotFileExt is the canonical extension for a persisted SQLite
// snapshot store (internal/mmstore).
const SnapshotFileExt = ".mmsnap"

// Built-in top-level database keys
const (
	ConstantsKey = "constants"
	AxiomsKey    = "axioms"
	TheoremsKey  = "theorems"
)

// Built-in proposition field keys
const (
	TypingKey     = "t"
	HypothesesKey = "h"
	DistinctKey   = "d"
	AssertionKey  = "a"
	ProofKey      = "p"
)
