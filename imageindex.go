package portfolio

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Image is one uploaded file as recorded in the index.
type Image struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	ContentType  string `json:"contentType"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
	UploadedAt   string `json:"uploadedAt"`
}

// ImageIndex wraps a SQLite database holding metadata for every upload,
// so the admin dashboard can list and prune images without walking the
// blob store.
type ImageIndex struct {
	db *sql.DB
}

// NewImageIndex opens (or creates) the SQLite database at path, ensures
// the data directory exists, and runs schema migrations.
func NewImageIndex(path string) (*ImageIndex, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write access, busy timeout so writers wait
	// instead of returning SQLITE_BUSY immediately.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	idx := &ImageIndex{db: db}
	if err := idx.ensureSchema(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Close closes the underlying database connection.
func (i *ImageIndex) Close() error {
	return i.db.Close()
}

func (i *ImageIndex) ensureSchema() error {
	_, err := i.db.Exec(`
CREATE TABLE IF NOT EXISTS uploads (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    content_type TEXT NOT NULL,
    size INTEGER NOT NULL,
    url TEXT NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	if err != nil {
		return fmt.Errorf("ensure uploads schema: %w", err)
	}
	return nil
}

// Save upserts an upload record.
func (i *ImageIndex) Save(img Image) error {
	_, err := i.db.Exec(`
INSERT OR REPLACE INTO uploads (filename, original_name, content_type, size, url, uploaded_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.ContentType, img.Size, img.URL, img.UploadedAt)
	return err
}

// List returns every upload record, newest first.
func (i *ImageIndex) List() ([]Image, error) {
	rows, err := i.db.Query(`
SELECT filename, original_name, content_type, size, url, uploaded_at
FROM uploads ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.ContentType, &img.Size, &img.URL, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// Delete removes an upload record, reporting whether it existed.
func (i *ImageIndex) Delete(filename string) (bool, error) {
	res, err := i.db.Exec(`DELETE FROM uploads WHERE filename = ?`, filename)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
