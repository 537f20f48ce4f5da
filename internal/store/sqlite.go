package store

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db               *sql.DB
	connectionString string
}

func NewSQLiteStore(connectionString string) (Store, error) {
	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, err
	}
	// A second pooled connection would see a different database when the
	// connection string is :memory:
	db.SetMaxOpenConns(1)

	return &SQLiteStore{
		db:               db,
		connectionString: connectionString,
	}, nil
}

func (s *SQLiteStore) Init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS artifacts (
		id TEXT PRIMARY KEY,
		run_id TEXT,
		kind TEXT,
		path TEXT,
		size INTEGER,
		sha256 TEXT,
		created_at TIMESTAMP
	)`)
	return err
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) RecordArtifact(runID, kind, path string, size int64, sha256 string) (*Artifact, error) {
	id, err := NewID()
	if err != nil {
		return nil, err
	}

	artifact := &Artifact{
		ID:        id,
		RunID:     runID,
		Kind:      kind,
		Path:      path,
		Size:      size,
		SHA256:    sha256,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.Exec(
		"INSERT INTO artifacts (id, run_id, kind, path, size, sha256, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		artifact.ID, artifact.RunID, artifact.Kind, artifact.Path, artifact.Size, artifact.SHA256, artifact.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return artifact, nil
}

func (s *SQLiteStore) AllArtifacts() ([]*Artifact, error) {
	return s.queryArtifacts("SELECT id, run_id, kind, path, size, sha256, created_at FROM artifacts ORDER BY created_at")
}

func (s *SQLiteStore) ArtifactsByKind(kind string) ([]*Artifact, error) {
	return s.queryArtifacts("SELECT id, run_id, kind, path, size, sha256, created_at FROM artifacts WHERE kind = ? ORDER BY created_at", kind)
}

func (s *SQLiteStore) queryArtifacts(query string, args ...any) ([]*Artifact, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close() // Explicitly ignore error as we're already returning an error from the function
	}()

	var artifacts []*Artifact
	for rows.Next() {
		var a Artifact
		if err := rows.Scan(&a.ID, &a.RunID, &a.Kind, &a.Path, &a.Size, &a.SHA256, &a.CreatedAt); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, &a)
	}
	return artifacts, rows.Err()
}

func (s *SQLiteStore) DeleteArtifact(id string) error {
	_, err := s.db.Exec("DELETE FROM artifacts WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) Prune() error {
	_, err := s.db.Exec("DELETE FROM artifacts")
	return err
}
