package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/a7delivery/backend/internal/infrastructure/config"
	"github.com/a7delivery/backend/internal/infrastructure/logger"
	"github.com/a7delivery/backend/internal/infrastructure/migration"
)

const usage = `Usage: migrate [options] <command> [args]

Commands:
  create <name> [description]  Create a new migration file pair
  list                         List migration files
  up                           Apply all pending migrations
  down                         Roll back the last migration
  step <n>                     Apply n migrations (negative rolls back)
  goto <version>               Migrate to a specific version
  version                      Print the current migration version
  force <version>              Force-set the version without running migrations
  drop                         Drop everything in the database (requires -confirm)

Options:
`

func main() {
	var (
		migrationsPath = flag.String("path", "migrations", "path to migration files")
		logLevel       = flag.String("log-level", "info", "log level (debug, info, warn, error)")
		confirm        = flag.Bool("confirm", false, "confirm destructive operations")
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	log, err := logger.New(&logger.Config{
		Level:      *logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	// create and list only touch the filesystem
	switch command {
	case "create":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "create requires a migration name")
			os.Exit(2)
		}
		description := ""
		if flag.NArg() > 2 {
			description = flag.Arg(2)
		}
		file, err := migration.CreateMigration(*migrationsPath, flag.Arg(1), description)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		fmt.Printf("Created migration %s\n  %s\n  %s\n", file.Version, file.UpPath, file.DownPath)
		return
	case "list":
		files, err := migration.ListMigrations(*migrationsPath)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		for _, f := range files {
			fmt.Println(f)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	m, err := migration.New(db, *migrationsPath, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer func() { _ = m.Close() }()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "step":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "step requires a count")
			os.Exit(2)
		}
		var n int
		n, err = strconv.Atoi(flag.Arg(1))
		if err != nil {
			log.Fatal("Invalid step count", zap.String("arg", flag.Arg(1)))
		}
		err = m.Steps(n)
	case "goto":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "goto requires a version")
			os.Exit(2)
		}
		var v uint64
		v, err = strconv.ParseUint(flag.Arg(1), 10, 64)
		if err != nil {
			log.Fatal("Invalid version", zap.String("arg", flag.Arg(1)))
		}
		err = m.GoTo(uint(v))
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil {
			log.Fatal("Failed to read version", zap.Error(verr))
		}
		fmt.Printf("version=%d dirty=%v\n", version, dirty)
		return
	case "force":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "force requires a version")
			os.Exit(2)
		}
		var v int
		v, err = strconv.Atoi(flag.Arg(1))
		if err != nil {
			log.Fatal("Invalid version", zap.String("arg", flag.Arg(1)))
		}
		err = m.Force(v)
	case "drop":
		if !*confirm {
			fmt.Fprintln(os.Stderr, "drop is destructive, re-run with -confirm")
			os.Exit(2)
		}
		err = m.Drop()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal("Migration failed", zap.String("command", command), zap.Error(err))
	}
	log.Info("Migration complete", zap.String("command", command))
}
