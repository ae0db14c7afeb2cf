package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"image-catalog/internal/database"
	"image-catalog/internal/sizeunit"
)

const (
	// Default timeout for database operations
	defaultTimeout = 30 * time.Second
	// Default catalog root path
	defaultRootDir = "/data"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	// Create a context that cancels on interrupt signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	// Get catalog root from env or default
	rootDir := os.Getenv("ROOT_DIR")
	if rootDir == "" {
		rootDir = defaultRootDir
	}
	dbPath := filepath.Join(rootDir, "catalog.db")

	db, err := database.New(ctx, dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	opCtx, opCancel := context.WithTimeout(ctx, defaultTimeout)
	defer opCancel()

	switch command {
	case "stats":
		err = runStats(opCtx, db)
	case "settings":
		err = runSettings(opCtx, db)
	case "list":
		err = runList(opCtx, db)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runStats prints a catalog summary: record count, total bytes, and the
// count of records still missing a stored thumbnail.
func runStats(ctx context.Context, db *database.Database) error {
	records, err := db.ListImages(ctx)
	if err != nil {
		return fmt.Errorf("list images: %w", err)
	}

	var totalBytes int64
	missingThumbs := 0
	for _, rec := range records {
		totalBytes += rec.FileSizeBytes
		if rec.ThumbnailPath == "" {
			missingThumbs++
		}
	}

	fmt.Printf("Images:             %d\n", len(records))
	fmt.Printf("Total size:         %s\n", sizeunit.Format(totalBytes))
	fmt.Printf("Missing thumbnails: %d\n", missingThumbs)
	return nil
}

// runSettings prints the persisted directory settings, or "(unset)" for
// keys not yet written.
func runSettings(ctx context.Context, db *database.Database) error {
	for _, key := range []string{database.SettingThumbnailsDir, database.SettingAssetsDir} {
		value, err := db.GetSettingDefault(ctx, key, "(unset)")
		if err != nil {
			return fmt.Errorf("read setting %s: %w", key, err)
		}
		fmt.Printf("%-14s %s\n", key+":", value)
	}
	return nil
}

// runList prints one line per record in ingestion order.
func runList(ctx context.Context, db *database.Database) error {
	records, err := db.ListImages(ctx)
	if err != nil {
		return fmt.Errorf("list images: %w", err)
	}

	for _, rec := range records {
		fmt.Printf("%6d  %-30s  rank=%-6.2f rating=%-5.2f %s\n",
			rec.ID, rec.Filename, rec.Ranking, rec.Rating, sizeunit.Format(rec.FileSizeBytes))
	}
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: catalogctl <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  stats     Print catalog summary (count, total size, missing thumbnails)")
	fmt.Fprintln(os.Stderr, "  settings  Print persisted directory settings")
	fmt.Fprintln(os.Stderr, "  list      Print every cataloged image")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Environment:")
	fmt.Fprintln(os.Stderr, "  ROOT_DIR  Catalog root holding catalog.db (default: /data)")
}
