package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Veraticus/handling-analyzer/internal/analysis"
	"github.com/Veraticus/handling-analyzer/internal/common"
	"github.com/Veraticus/handling-analyzer/internal/config"
	"github.com/Veraticus/handling-analyzer/internal/engine"
	"github.com/Veraticus/handling-analyzer/internal/storage"
)

// initStorage opens and migrates the history database.
func initStorage(ctx context.Context, settings *config.Settings) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(settings.StoragePath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// openEngine builds an engine from settings. With withHistory the history
// database is opened; the returned cleanup closes it.
func openEngine(ctx context.Context, settings *config.Settings, withHistory bool) (*engine.Engine, func(), error) {
	table, err := settings.Guidelines()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	var history engine.HistoryStore
	if withHistory {
		store, err := initStorage(ctx, settings)
		if err != nil {
			return nil, nil, err
		}
		history = store
		cleanup = func() {
			if err := store.Close(); err != nil {
				common.LogError(err, "Failed to close history database", common.Fields{"path": store.Path()})
			}
		}
	}

	eng := engine.New(analysis.NewValidator(table), history, engine.Config{Workers: settings.Workers})
	return eng, cleanup, nil
}

// shouldSave resolves --save and --no-save against the history setting.
func shouldSave(cmd *cobra.Command, settings *config.Settings) bool {
	if noSave, _ := cmd.Flags().GetBool("no-save"); noSave {
		return false
	}
	if cmd.Flags().Changed("save") {
		save, _ := cmd.Flags().GetBool("save")
		return save
	}
	return settings.HistoryEnabled
}

func addSaveFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("save", false, "save the analysis to history (default from history.enabled)")
	cmd.Flags().Bool("no-save", false, "do not save the analysis to history")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeOutput writes content to path, or to w when path is empty or "-".
func writeOutput(path, content string, w io.Writer) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(w, content)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
