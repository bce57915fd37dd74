package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fpemc/crm-api/internal/config"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

const usage = `usage: migrate [-dir ./migrations] <command> [args]

commands:
  up            apply every pending migration
  up-by-one     apply the next pending migration
  down          roll back the latest migration
  redo          roll back and re-apply the latest migration
  status        print the state of each migration
  version       print the current schema version
  create NAME   create a new SQL migration`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Migration error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dir := flag.String("dir", "./migrations", "migrations directory")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("missing command")
	}
	command, arguments := args[0], args[1:]

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	// create only writes a file and needs no connection
	if command == "create" {
		if len(arguments) == 0 {
			return fmt.Errorf("create requires a migration name")
		}
		if err := goose.Create(nil, *dir, arguments[0], "sql"); err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	switch command {
	case "up", "up-by-one", "down", "redo", "status", "version":
		if err := goose.RunContext(ctx, command, db, *dir, arguments...); err != nil {
			return fmt.Errorf("migrate %s: %w", command, err)
		}
	default:
		flag.Usage()
		return fmt.Errorf("unknown command: %s", command)
	}

	return nil
}
