package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/murkotick/product-sync-service/internal/pkg/logger"
)

// Applies the journal DDL to a Cloud Spanner database (typically the emulator
// for local dev).
//
//	export SPANNER_EMULATOR_HOST=localhost:9010
//	export SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db
//	go run ./cmd/migrate -file migrations/001_initial_schema.sql
func main() {
	path := flag.String("file", "migrations/001_initial_schema.sql", "DDL file to apply")
	flag.Parse()

	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db := os.Getenv("SPANNER_DATABASE")
	if db == "" {
		log.Fatal("SPANNER_DATABASE is required (e.g. projects/test-project/instances/emulator-instance/databases/test-db)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	stmts, err := readDDLStatements(*path)
	if err != nil {
		log.Fatal("read DDL", zap.String("file", *path), zap.Error(err))
	}
	if len(stmts) == 0 {
		log.Fatal("no DDL statements found", zap.String("file", *path))
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		log.Fatal("database admin client", zap.Error(err))
	}
	defer admin.Close()

	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   db,
		Statements: stmts,
	})
	if err != nil {
		log.Fatal("UpdateDatabaseDdl", zap.Error(err))
	}
	if err := op.Wait(ctx); err != nil {
		log.Fatal("UpdateDatabaseDdl wait", zap.Error(err))
	}

	log.Info("applied DDL", zap.Int("statements", len(stmts)), zap.String("database", db))
}

// readDDLStatements splits a DDL file on semicolons. Lines starting with "--"
// are comments.
func readDDLStatements(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sql := strings.ReplaceAll(string(b), "\r\n", "\n")

	var kept []string
	for _, line := range strings.Split(sql, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}

	parts := strings.Split(strings.Join(kept, "\n"), ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out, nil
}
