package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"image-catalog/internal/logging"
	"image-catalog/internal/metrics"
)

// Default timeout for database operations
const defaultTimeout = 5 * time.Second

// Database manages all storage operations for the image catalog. No lock
// layer sits above the engine: WAL mode lets listing reads proceed during
// an insert, and SQLite serializes the writes itself.
type Database struct {
	db     *sql.DB
	dbPath string
}

// New creates a new Database instance. dbPath is the full path to the
// database file; its parent directory must already exist and be writable.
func New(ctx context.Context, dbPath string) (*Database, error) {
	logging.Info("Database path: %s", dbPath)

	// WAL mode with a busy timeout prevents "database is locked" errors
	// when a listing read overlaps an ingestion write.
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Multiple readers, single writer (SQLite serializes writes itself).
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	d := &Database{
		db:     db,
		dbPath: dbPath,
	}

	if err := d.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	logging.Info("Database initialized successfully at %s", dbPath)
	return d, nil
}

func (d *Database) initialize(ctx context.Context) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("initialize_schema", start, err) }()

	schema := `
	CREATE TABLE IF NOT EXISTS images (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT NOT NULL,
		url TEXT NOT NULL,
		file_size INTEGER NOT NULL DEFAULT 0,
		rating REAL NOT NULL DEFAULT 0,
		ranking REAL NOT NULL DEFAULT 0,
		tags TEXT NOT NULL DEFAULT '',
		creation_time TEXT NOT NULL DEFAULT '',
		person TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL,
		thumbnail_path TEXT
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT
	);
	`

	if _, err = d.db.ExecContext(ctx, schema); err != nil {
		return err
	}

	err = d.runMigrations(ctx)
	return err
}

// runMigrations applies schema migrations.
func (d *Database) runMigrations(ctx context.Context) error {
	// Migration 1: older revisions declared ranking as INTEGER. The sort
	// compares ranking and rating numerically, and rating is already REAL,
	// so ranking is migrated to REAL via a table rebuild (SQLite cannot
	// alter a column type in place).
	var rankingType string
	err := d.db.QueryRowContext(ctx, `
		SELECT type FROM pragma_table_info('images') WHERE name='ranking'
	`).Scan(&rankingType)
	if err != nil {
		return fmt.Errorf("failed to inspect ranking column: %w", err)
	}

	if strings.EqualFold(rankingType, "INTEGER") {
		logging.Info("Migrating database: converting images.ranking from INTEGER to REAL")

		migration := `
		CREATE TABLE images_migrated (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT NOT NULL,
			url TEXT NOT NULL,
			file_size INTEGER NOT NULL DEFAULT 0,
			rating REAL NOT NULL DEFAULT 0,
			ranking REAL NOT NULL DEFAULT 0,
			tags TEXT NOT NULL DEFAULT '',
			creation_time TEXT NOT NULL DEFAULT '',
			person TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			thumbnail_path TEXT
		);
		INSERT INTO images_migrated
			SELECT id, filename, url, file_size, rating, CAST(ranking AS REAL),
			       tags, creation_time, person, location, type, thumbnail_path
			FROM images;
		DROP TABLE images;
		ALTER TABLE images_migrated RENAME TO images;
		`
		if _, err := d.db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("failed to migrate ranking column: %w", err)
		}

		logging.Info("Migration complete: images.ranking is now REAL")
	}

	return nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// InsertImage appends a new image record and returns the assigned id.
// The record's ID field is ignored on input and set on success.
func (d *Database) InsertImage(ctx context.Context, rec *ImageRecord) (int64, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("insert_image", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx, `
		INSERT INTO images (filename, url, file_size, rating, ranking, tags,
		                    creation_time, person, location, type, thumbnail_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.Filename,
		rec.URL,
		rec.FileSizeBytes,
		rec.Rating,
		rec.Ranking,
		rec.Tags,
		rec.CreationTime,
		rec.Person,
		rec.Location,
		rec.Type,
		nullableString(rec.ThumbnailPath),
	)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	rec.ID = id
	return id, nil
}

// ListImages returns all image records in storage order. Sorting is the
// presenter's responsibility.
func (d *Database) ListImages(ctx context.Context) ([]ImageRecord, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("list_images", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, filename, url, file_size, rating, ranking, tags,
		       creation_time, person, location, type, thumbnail_path
		FROM images
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ImageRecord
	for rows.Next() {
		var rec ImageRecord
		var thumb sql.NullString

		if err = rows.Scan(
			&rec.ID, &rec.Filename, &rec.URL, &rec.FileSizeBytes,
			&rec.Rating, &rec.Ranking, &rec.Tags, &rec.CreationTime,
			&rec.Person, &rec.Location, &rec.Type, &thumb,
		); err != nil {
			return nil, err
		}

		rec.ThumbnailPath = thumb.String
		records = append(records, rec)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CountImages returns the number of stored records.
func (d *Database) CountImages(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var count int
	err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM images").Scan(&count)
	return count, err
}

// UpdateDBMetrics updates database connection metrics.
func (d *Database) UpdateDBMetrics() {
	stats := d.db.Stats()
	metrics.DBConnectionsOpen.Set(float64(stats.OpenConnections))
}

// nullableString maps an empty string to SQL NULL so absent thumbnails are
// stored as NULL rather than "".
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// recordQuery records database query metrics.
func recordQuery(operation string, start time.Time, err error) {
	duration := time.Since(start).Seconds()
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.DBQueryTotal.WithLabelValues(operation, status).Inc()
	metrics.DBQueryDuration.WithLabelValues(operation).Observe(duration)
}
