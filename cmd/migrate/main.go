package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"nutritrack/internal/db"
	"nutritrack/internal/infra"
)

func main() {
	var (
		dsnFlag     string
		printFlag   bool
		timeoutFlag time.Duration
	)
	flag.StringVar(&dsnFlag, "dsn", "", "database URL (defaults to DATABASE_URL)")
	flag.BoolVar(&printFlag, "print", false, "print the schema instead of applying it")
	flag.DurationVar(&timeoutFlag, "timeout", 30*time.Second, "overall migration timeout")
	flag.Parse()

	_ = godotenv.Load()
	logger := infra.NewLogger(os.Getenv("APP_ENV"))

	if printFlag {
		for _, stmt := range db.Schema() {
			fmt.Printf("%s;\n\n", stmt)
		}
		return
	}

	dsn := strings.TrimSpace(dsnFlag)
	if dsn == "" {
		dsn = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	if dsn == "" {
		exitWithError(errors.New("DATABASE_URL or -dsn is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeoutFlag)
	defer cancel()

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		exitWithError(fmt.Errorf("open database: %w", err))
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		exitWithError(fmt.Errorf("ping database: %w", err))
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		exitWithError(fmt.Errorf("begin transaction: %w", err))
	}
	if err := db.Migrate(ctx, tx); err != nil {
		_ = tx.Rollback()
		exitWithError(err)
	}
	if err := tx.Commit(); err != nil {
		exitWithError(fmt.Errorf("commit: %w", err))
	}
	logger.Info().Int("statements", len(db.Schema())).Msg("schema applied")
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
	os.Exit(1)
}
