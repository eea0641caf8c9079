package index

// WordIndex defines the interface for word indexing operations. Consumers
// should depend on this interface rather than the concrete *DB type to
// facilitate testing with mocks.
type WordIndex interface {
	UpsertWord(w WordRow) error
	DeleteWord(name string) error
	GetWord(name string) (*WordRow, error)
	ListWords(limit, offset int) ([]WordRow, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	AllNames() (map[string]struct{}, error)
	Close() error
}

// Verify *DB satisfies WordIndex at compile time.
var _ WordIndex = (*DB)(nil)
