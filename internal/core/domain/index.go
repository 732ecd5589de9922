package domain

// CleanupMode controls how the indexer removes stale entries after
// writing a batch of documents.
type CleanupMode string

// Available cleanup modes.
const (
	// CleanupIncremental diffs per source: chunks previously indexed for a
	// source but absent from its current chunk set are removed.
	CleanupIncremental CleanupMode = "incremental"

	// CleanupFull diffs against the entire namespace: chunks whose source
	// does not appear in the current ingestion batch are removed.
	CleanupFull CleanupMode = "full"

	// CleanupNone is append-only; nothing is ever removed.
	CleanupNone CleanupMode = "none"
)

// IsValid returns true if the cleanup mode is recognised.
func (m CleanupMode) IsValid() bool {
	switch m {
	case CleanupIncremental, CleanupFull, CleanupNone:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m CleanupMode) String() string {
	return string(m)
}

// IndexResult summarises one index operation.
// Skipped counts chunks already indexed with identical content, the
// cost-saving property of the diff: they are never re-embedded.
type IndexResult struct {
	// Added holds chunk IDs newly embedded and upserted.
	Added []string

	// Skipped holds chunk IDs left untouched (unchanged content).
	Skipped []string

	// Removed holds chunk IDs deleted as stale.
	Removed []string
}

// Namespace builds the record manager namespace for a provider and
// collection pair. Entries are scoped so that switching embedding
// providers never mixes vector spaces.
func Namespace(provider AIProvider, collection string) string {
	return provider.String() + "/" + collection
}
