// Command migrate applies the lending schema migrations.
//
// Usage:
//
//	migrate -command up|down|status
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/AntonStoeckl/library-lending-go/migrations"
	"github.com/AntonStoeckl/library-lending-go/shell/config"
)

func main() {
	command := flag.String("command", "up", "Migration command: up, down, status")
	flag.Parse()

	if err := run(context.Background(), *command); err != nil {
		slog.Error("migrate failed", "command", *command, "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := config.PostgresPGXPool(ctx, cfg.Database.PrimaryDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer func() { _ = db.Close() }()

	provider, err := migrations.NewProvider(db)
	if err != nil {
		return err
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return err
		}
		for _, result := range results {
			fmt.Println(result)
		}

	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result)

	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		for _, status := range statuses {
			fmt.Printf("%-40s %s\n", status.Source.Path, status.State)
		}

	default:
		return fmt.Errorf("unknown command %q", command)
	}

	return nil
}
