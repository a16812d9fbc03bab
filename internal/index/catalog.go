// Package index keeps a sqlite catalog of structure files: one row per
// file with its extents, entry counts and content digest. The catalog
// is a secondary index over the files themselves; rebuilding it from
// the files is always safe.
package index

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"structcraft.dev/internal/structure"
)

// Entry is one catalogued structure file.
type Entry struct {
	Path        string
	SizeX       int
	SizeY       int
	SizeZ       int
	Blocks      int
	Palette     int
	Entities    int
	DataVersion int
	Digest      string // sha256 of the file bytes
	IndexedAt   string // RFC3339Nano, UTC
}

// Catalog is an open catalog database. Single connection, synchronous:
// catalog writes are CLI-driven and rare.
type Catalog struct {
	db *sql.DB
}

func Open(path string) (*Catalog, error) {
	if path == "" {
		return nil, fmt.Errorf("index: empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Catalog{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	// WAL keeps readers unblocked while a row is being replaced.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS structures (
			path TEXT PRIMARY KEY,
			size_x INTEGER NOT NULL,
			size_y INTEGER NOT NULL,
			size_z INTEGER NOT NULL,
			blocks INTEGER NOT NULL,
			palette INTEGER NOT NULL,
			entities INTEGER NOT NULL,
			data_version INTEGER NOT NULL,
			digest TEXT NOT NULL,
			indexed_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_structures_digest ON structures(digest);`,
		`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1');`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) Close() error { return c.db.Close() }

// Upsert records e, replacing any previous row for the same path.
func (c *Catalog) Upsert(e Entry) error {
	if e.Path == "" {
		return fmt.Errorf("index: entry without path")
	}
	if e.IndexedAt == "" {
		e.IndexedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO structures
		 (path,size_x,size_y,size_z,blocks,palette,entities,data_version,digest,indexed_at)
		 VALUES(?,?,?,?,?,?,?,?,?,?)`,
		e.Path, e.SizeX, e.SizeY, e.SizeZ,
		e.Blocks, e.Palette, e.Entities, e.DataVersion,
		e.Digest, e.IndexedAt,
	)
	return err
}

// Get looks up the row for path; ok is false when it is not catalogued.
func (c *Catalog) Get(path string) (Entry, bool, error) {
	row := c.db.QueryRow(
		`SELECT path,size_x,size_y,size_z,blocks,palette,entities,data_version,digest,indexed_at
		 FROM structures WHERE path = ?`, path)
	var e Entry
	err := row.Scan(&e.Path, &e.SizeX, &e.SizeY, &e.SizeZ,
		&e.Blocks, &e.Palette, &e.Entities, &e.DataVersion, &e.Digest, &e.IndexedAt)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// List returns every row ordered by path.
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.db.Query(
		`SELECT path,size_x,size_y,size_z,blocks,palette,entities,data_version,digest,indexed_at
		 FROM structures ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Path, &e.SizeX, &e.SizeY, &e.SizeZ,
			&e.Blocks, &e.Palette, &e.Entities, &e.DataVersion, &e.Digest, &e.IndexedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Remove drops the row for path. Removing an uncatalogued path is not
// an error.
func (c *Catalog) Remove(path string) error {
	_, err := c.db.Exec(`DELETE FROM structures WHERE path = ?`, path)
	return err
}

// Describe builds the catalog entry for a structure file: the document
// is loaded for its counts, the raw bytes are hashed for the digest.
func Describe(path string) (Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	s, err := structure.Load(path)
	if err != nil {
		return Entry{}, err
	}
	sum := sha256.Sum256(raw)
	return Entry{
		Path:        path,
		SizeX:       s.Size.X,
		SizeY:       s.Size.Y,
		SizeZ:       s.Size.Z,
		Blocks:      s.BlockCount(),
		Palette:     s.Palette.Len(),
		Entities:    len(s.Entities()),
		DataVersion: int(s.DataVersion),
		Digest:      hex.EncodeToString(sum[:]),
	}, nil
}
