package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/quangnv/habitkit/internal/backup"
	"github.com/quangnv/habitkit/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: habits table present
	if dbReachable {
		if err := checkSchema(ctx); err != nil {
			fmt.Printf("❌ Schema: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema: SKIPPED (database not reachable)\n")
	}

	// Check 3: duplicate titles among active habits (warning only; dedupe
	// is enforced at import time, not by the store)
	if dbReachable {
		if err := checkDuplicateTitles(ctx); err != nil {
			fmt.Printf("⚠ Duplicate titles: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Duplicate titles: OK\n")
		}
	} else {
		fmt.Printf("⊘ Duplicate titles: SKIPPED (database not reachable)\n")
	}

	// Check 4: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 5: competing habitkit processes on the same database
	if err := checkCompetingProcesses(); err != nil {
		fmt.Printf("⚠ Single process: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Single process: OK\n")
	}

	// Check 6: Clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchema(ctx *Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		// JSON store has no schema to check
		return nil
	}

	var count int
	err := sqliteStore.GetDB().QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'habits'").Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("habits table is missing; run 'habitkit init'")
	}

	return nil
}

func checkDuplicateTitles(ctx *Context) error {
	habits, err := ctx.Store.GetAllActive()
	if err != nil {
		return fmt.Errorf("failed to read habits: %w", err)
	}

	seen := make(map[string]string, len(habits))
	for _, h := range habits {
		key := h.NormalizedTitle()
		if first, dup := seen[key]; dup {
			return fmt.Errorf("habits %q and %q have the same title after normalization", first, h.Title)
		}
		seen[key] = h.Title
	}

	return nil
}

func checkBackupsPresent(ctx *Context) error {
	if _, ok := ctx.Store.(*storage.SQLiteStore); !ok {
		return nil
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'habitkit backup create'")
	}

	return nil
}

// checkCompetingProcesses warns when another habitkit process is running.
// The store handle is a per-process singleton; two processes writing the
// same database file is not supported.
func checkCompetingProcesses() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == "habitkit" {
			return fmt.Errorf("another habitkit process is running (pid %d); concurrent access to the same database is not supported", p.Pid())
		}
	}

	return nil
}

func checkClock() error {
	now := time.Now()

	// created_at timestamps are ms-epoch; a wildly wrong clock corrupts
	// their ordering.
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	return nil
}
