package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"adminboard-be/internal/maintenance"
	"adminboard-be/internal/pkg/logger"
	"adminboard-be/internal/repository/unitofwork"
	"adminboard-be/pkg/database"
	"adminboard-be/pkg/directory"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Runs the one-shot maintenance jobs. Both jobs are idempotent, so re-running
// after a partial failure is always safe.
//
//	go run ./cmd/backfill -job=sender-ids
//	go run ./cmd/backfill -job=avatars -dry-run
//	go run ./cmd/backfill -job=all
func main() {
	job := flag.String("job", "all", "which job to run: sender-ids, avatars, all")
	dryRun := flag.Bool("dry-run", false, "report what would change without writing")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	backfillLogger := logger.NewIsolatedLogger("logs/backfill.log")
	defer backfillLogger.Sync()

	uowFactory := unitofwork.NewRepositoryFactory(db)
	dir := directory.NewCachedDirectory(directory.NewGormDirectory(uowFactory), 5*time.Minute)

	b := maintenance.NewBackfiller(db, dir, backfillLogger, *dryRun)
	ctx := context.Background()

	color.Cyan("🔧 Notification Maintenance Backfill")
	if *dryRun {
		color.Yellow("Mode: DRY RUN (no writes)")
	}

	failed := false

	if *job == "sender-ids" || *job == "all" {
		color.Yellow("\n[1] Backfilling sender identity prefixes...")
		res, err := b.BackfillSenderIDs(ctx)
		report(res, err, &failed)
	}

	if *job == "avatars" || *job == "all" {
		color.Yellow("\n[2] Backfilling sender avatars...")
		res, err := b.BackfillSenderAvatars(ctx)
		report(res, err, &failed)
	}

	if *job != "sender-ids" && *job != "avatars" && *job != "all" {
		color.Red("Unknown job %q. Valid: sender-ids, avatars, all", *job)
		os.Exit(2)
	}

	if failed {
		color.Red("\nBackfill finished with errors. Re-run to resume; completed rows are skipped.")
		os.Exit(1)
	}
	color.Green("\n✅ Backfill completed successfully.")
}

func report(res maintenance.Result, err error, failed *bool) {
	if err != nil {
		color.Red("Failed: %v", err)
		*failed = true
	}
	color.Green("Scanned: %d | Patched: %d | Skipped: %d", res.Scanned, res.Patched, res.Skipped)
}
