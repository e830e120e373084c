package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Catalog manages the SQLite database recording generated runs.
type Catalog struct {
	db *sql.DB
}

// Run is one cataloged trajectory.
type Run struct {
	ID        int64
	Path      string // NPY file holding the frame array
	Seed      int64
	Steps     int
	Checksum  uint64 // Snapshot hash of the final state
	CreatedAt time.Time
}

// OpenCatalog creates or opens the run catalog at the given path,
// creating parent directories and running migrations as needed.
func OpenCatalog(dbPath string) (*Catalog, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return c, nil
}

func (c *Catalog) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL,
			seed INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			checksum TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_path ON runs(path);
		CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// SaveRun records a generated trajectory. Returns the ID of the
// inserted record.
func (c *Catalog) SaveRun(r Run) (int64, error) {
	// Checksums are stored as text: SQLite integers are signed 64-bit
	// and would mangle large uint64 hashes.
	result, err := c.db.Exec(
		"INSERT INTO runs (path, seed, steps, checksum) VALUES (?, ?, ?, ?)",
		r.Path, r.Seed, r.Steps, fmt.Sprintf("%016x", r.Checksum),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// ListRuns retrieves the most recent runs, newest first.
func (c *Catalog) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := c.db.Query(
		`SELECT id, path, seed, steps, checksum, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunByPath retrieves the most recent run recorded for a file path.
// Returns nil if none exists.
func (c *Catalog) RunByPath(path string) (*Run, error) {
	rows, err := c.db.Query(
		`SELECT id, path, seed, steps, checksum, created_at
		 FROM runs
		 WHERE path = ?
		 ORDER BY id DESC
		 LIMIT 1`,
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	r, err := scanRun(rows)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var r Run
	var checksum string
	var createdAt any
	if err := rows.Scan(&r.ID, &r.Path, &r.Seed, &r.Steps, &checksum, &createdAt); err != nil {
		return Run{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	if _, err := fmt.Sscanf(checksum, "%016x", &r.Checksum); err != nil {
		return Run{}, fmt.Errorf("storage: bad checksum %q: %w", checksum, err)
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			r.CreatedAt = parsed
		}
	}
	return r, nil
}

// ClearRuns deletes every cataloged run.
func (c *Catalog) ClearRuns() error {
	if _, err := c.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
