package main

import (
	"bytes"
	"context"
	"database/sql"
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/jefefefef/Paperplay/internal/config"
	librarySvc "github.com/jefefefef/Paperplay/internal/domain/services/library"
	"github.com/jefefefef/Paperplay/internal/repository/sqlite"
	"github.com/jefefefef/Paperplay/internal/search"
	libraryService "github.com/jefefefef/Paperplay/internal/service/library"
	"github.com/jefefefef/Paperplay/internal/thumbnail"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed documents")
	clearData := flag.Bool("clear-data", false, "Clear all documents and collections (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding library (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Open database
	ctx := context.Background()
	db, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Create table names
	tables := sqlite.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, db, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := sqlite.EnsureSchema(db, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	// Exit early if schema-only mode
	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	// Exit early if clear-data mode (just clear and exit)
	if *clearData {
		log.Println("🧹 Clearing existing documents and collections...")
		if err := clearAllData(ctx, db, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared successfully")
		return
	}

	// Seeding goes through the coordinator so thumbnails, the search index
	// and the "all" collection behave exactly as they would for a real
	// upload.
	repoConfig := &sqlite.RepositoryConfig{
		DB:     db,
		Tables: tables,
		Logger: logger,
	}
	docRepo := sqlite.NewDocumentRepository(repoConfig)
	collectionRepo := sqlite.NewCollectionRepository(repoConfig)

	generator, err := thumbnail.NewGenerator(logger)
	if err != nil {
		log.Fatalf("Failed to create thumbnail generator: %v", err)
	}

	coordinator := libraryService.NewService(docRepo, collectionRepo, generator, search.NewIndex(), logger)
	if err := coordinator.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize library coordinator: %v", err)
	}

	// Seed documents
	log.Println("📝 Seeding sample documents...")

	result, err := coordinator.UploadDocuments(ctx, seedFiles())
	if err != nil {
		log.Fatalf("Failed to upload seed documents: %v", err)
	}

	for _, outcome := range result.Outcomes {
		if outcome.Error != "" {
			log.Printf("❌ Failed to store '%s': %s", outcome.Filename, outcome.Error)
			continue
		}
		log.Printf("✅ Stored %s (ID: %s)", outcome.Filename, outcome.DocumentID)
	}

	// Seed collections and file a few documents into them
	log.Println("📁 Seeding sample collections...")

	taxes, err := coordinator.CreateCollection(ctx, "Taxes")
	if err != nil {
		log.Fatalf("Failed to create Taxes collection: %v", err)
	}
	receipts, err := coordinator.CreateCollection(ctx, "Receipts")
	if err != nil {
		log.Fatalf("Failed to create Receipts collection: %v", err)
	}

	filed := map[string]string{
		"tax-return-2025.png":  taxes.ID,
		"w2-statement.png":     taxes.ID,
		"grocery-receipt.png":  receipts.ID,
		"hardware-receipt.png": receipts.ID,
	}
	for _, outcome := range result.Outcomes {
		collectionID, ok := filed[outcome.Filename]
		if !ok || outcome.DocumentID == "" {
			continue
		}
		if err := coordinator.AssignDocumentToCollection(ctx, outcome.DocumentID, collectionID); err != nil {
			log.Printf("❌ Failed to file '%s': %v", outcome.Filename, err)
		}
	}

	log.Println("🎉 Seeding complete!")
}

// dropAllTables drops both library tables
func dropAllTables(ctx context.Context, db *sql.DB, tables *sqlite.TableNames) error {
	for _, table := range []string{tables.Documents, tables.Collections} {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}
	return nil
}

// clearAllData empties both library tables while keeping the schema
func clearAllData(ctx context.Context, db *sql.DB, tables *sqlite.TableNames) error {
	for _, table := range []string{tables.Documents, tables.Collections} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// seedFiles renders a handful of small PNGs in memory so seeding does not
// depend on fixture files on disk.
func seedFiles() []librarySvc.UploadedFile {
	entries := []struct {
		name string
		tint color.RGBA
	}{
		{"tax-return-2025.png", color.RGBA{R: 0xE8, G: 0xC8, B: 0x6A, A: 0xFF}},
		{"w2-statement.png", color.RGBA{R: 0xB7, G: 0xD2, B: 0x9C, A: 0xFF}},
		{"grocery-receipt.png", color.RGBA{R: 0x9C, G: 0xB8, B: 0xD2, A: 0xFF}},
		{"hardware-receipt.png", color.RGBA{R: 0xD2, G: 0x9C, B: 0x9C, A: 0xFF}},
		{"vacation-photo.png", color.RGBA{R: 0x8A, G: 0xC6, B: 0xC0, A: 0xFF}},
	}

	files := make([]librarySvc.UploadedFile, 0, len(entries))
	for _, entry := range entries {
		files = append(files, librarySvc.UploadedFile{
			Filename: entry.name,
			Content:  bytes.NewReader(renderSwatch(entry.tint)),
		})
	}
	return files
}

// renderSwatch encodes a small solid-color PNG
func renderSwatch(tint color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, tint)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Fatalf("Failed to encode seed image: %v", err)
	}
	return buf.Bytes()
}
