package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/goaltrack/internal/backup"
	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/migration"
	"github.com/julianstephens/goaltrack/internal/storage"
	"github.com/julianstephens/goaltrack/internal/utils"
	"github.com/julianstephens/goaltrack/internal/validation"
	"github.com/julianstephens/goaltrack/migrations"
)

type DoctorCmd struct {
	Fix bool `help:"Automatically archive newer duplicates of goals with the same name."`
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
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

	// Check 2: Schema version valid (only if DB is reachable)
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Check 3: Migrations complete (only if DB is reachable)
	if dbReachable {
		if err := checkMigrationsComplete(ctx); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Migrations complete: SKIPPED (database not reachable)\n")
	}

	// Check 4: Backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 5: Data validation (only if DB is reachable)
	if dbReachable {
		if err := cmd.checkValidation(ctx); err != nil {
			fmt.Printf("❌ Data validation: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Data validation: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data validation: SKIPPED (database not reachable)\n")
	}

	// Check 6: Clock/timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	_, err := ctx.Store.GetAllTags(true)
	return err
}

func schemaRunner(ctx *cli.Context) (*migration.Runner, error) {
	switch store := ctx.Store.(type) {
	case *storage.SQLiteStore:
		db := store.GetDB()
		if db == nil {
			return nil, fmt.Errorf("database connection is nil")
		}
		return migration.NewRunner(db, migrations.SQLite(), migration.DialectSQLite), nil
	case *storage.PostgresStore:
		db := store.GetDB()
		if db == nil {
			return nil, fmt.Errorf("database connection is nil")
		}
		return migration.NewRunner(db, migrations.Postgres(), migration.DialectPostgres), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend")
	}
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := schemaRunner(ctx)
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, err := schemaRunner(ctx)
	if err != nil {
		return err
	}
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return err
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("schema version %d is behind latest %d; run 'goaltrack migrate'", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found; run 'goaltrack backup create'")
	}
	// Stale backups are worth surfacing too
	if time.Since(backups[0].Timestamp) > 7*24*time.Hour {
		return fmt.Errorf("newest backup is older than a week (%s)", backups[0].Timestamp.Format("2006-01-02"))
	}
	return nil
}

func (cmd *DoctorCmd) checkValidation(ctx *cli.Context) error {
	goals, err := ctx.Store.GetAllGoals(true)
	if err != nil {
		return err
	}
	versions, err := ctx.Store.GetAllGoalVersions()
	if err != nil {
		return err
	}
	tags, err := ctx.Store.GetAllTags(true)
	if err != nil {
		return err
	}
	conditions, err := ctx.Store.GetAllConditions(true)
	if err != nil {
		return err
	}

	// The trailing quarter of day log is enough to catch live problems
	today, err := ctx.ResolveDate("")
	if err != nil {
		return err
	}
	day, err := utils.ParseDate(today)
	if err != nil {
		return err
	}
	logStart := utils.FormatDate(day.AddDate(0, 0, -90))

	events, err := ctx.Store.GetTagEvents(logStart, today)
	if err != nil {
		return err
	}
	dayConditions, err := ctx.Store.GetDayConditions(logStart, today)
	if err != nil {
		return err
	}
	ratings, err := ctx.Store.GetGoalRatings(logStart, today)
	if err != nil {
		return err
	}

	validator := validation.New()
	result := validator.ValidateGoals(goals, versions, tags, conditions)
	result.Conflicts = append(result.Conflicts, validator.ValidateTags(tags).Conflicts...)
	result.Conflicts = append(result.Conflicts,
		validator.ValidateDayLog(events, dayConditions, ratings, tags, conditions, goals).Conflicts...)

	if !result.HasConflicts() {
		return nil
	}

	fmt.Println(result.FormatReport())

	if cmd.Fix {
		fixes := validation.AutoFixDuplicateGoals(result.Conflicts, goals, ctx.Store.ArchiveGoal)
		for _, fix := range fixes {
			fmt.Printf("   %s\n", fix.Action)
		}
	}
	return fmt.Errorf("%d conflict(s) detected", len(result.Conflicts))
}

func checkClockTimezone(ctx *cli.Context) error {
	if _, err := utils.LoadLocation(ctx.Timezone); err != nil {
		return err
	}
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system clock reads %s, which looks wrong", now.Format(time.RFC3339))
	}
	return nil
}
