package store

import "time"

// Artifact kinds recorded by the pipeline.
const (
	KindFrame = "frame"
	KindPNG   = "png"
	KindGIF   = "gif"
)

// Artifact is one file the pipeline produced.
type Artifact struct {
	ID        string    `db:"id"`
	RunID     string    `db:"run_id"`
	Kind      string    `db:"kind"`
	Path      string    `db:"path"`
	Size      int64     `db:"size"`
	SHA256    string    `db:"sha256"`
	CreatedAt time.Time `db:"created_at"`
}

// Store tracks generated artifacts so that clean can remove exactly what
// earlier runs produced.
type Store interface {
	// Init ensures the schema exists; it is idempotent, which matters for
	// in-memory SQLite.
	Init() error
	Close() error

	RecordArtifact(runID, kind, path string, size int64, sha256 string) (*Artifact, error)
	AllArtifacts() ([]*Artifact, error)
	ArtifactsByKind(kind string) ([]*Artifact, error)
	DeleteArtifact(id string) error
	// Prune removes every artifact row.
	Prune() error
}
