package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized goaltrack storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	var sourceStore storage.Provider
	if strings.HasPrefix(sourcePath, "postgres://") || strings.HasPrefix(sourcePath, "postgresql://") {
		if storage.HasEmbeddedCredentials(sourcePath) {
			return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
		}
		sourceStore = storage.NewPostgresStore(sourcePath)
	} else {
		sourceStore = storage.NewSQLiteStore(sourcePath)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating tags...")
	tags, err := sourceStore.GetAllTags(true)
	if err != nil {
		return fmt.Errorf("failed to get tags from source: %w", err)
	}
	for _, tag := range tags {
		if err := ctx.Store.AddTag(tag); err != nil {
			return fmt.Errorf("failed to add tag %s: %w", tag.ID, err)
		}
	}
	fmt.Printf("    Migrated %d tags\n", len(tags))

	fmt.Println("  Migrating conditions...")
	conditions, err := sourceStore.GetAllConditions(true)
	if err != nil {
		return fmt.Errorf("failed to get conditions from source: %w", err)
	}
	for _, condition := range conditions {
		if err := ctx.Store.AddCondition(condition); err != nil {
			return fmt.Errorf("failed to add condition %s: %w", condition.ID, err)
		}
	}
	fmt.Printf("    Migrated %d conditions\n", len(conditions))

	fmt.Println("  Migrating goals...")
	goals, err := sourceStore.GetAllGoals(true)
	if err != nil {
		return fmt.Errorf("failed to get goals from source: %w", err)
	}
	for _, goal := range goals {
		if err := ctx.Store.AddGoal(goal); err != nil {
			return fmt.Errorf("failed to add goal %s: %w", goal.ID, err)
		}
	}
	fmt.Printf("    Migrated %d goals\n", len(goals))

	fmt.Println("  Migrating goal versions...")
	versionsByGoal, err := sourceStore.GetAllGoalVersions()
	if err != nil {
		return fmt.Errorf("failed to get goal versions from source: %w", err)
	}
	versionCount := 0
	for goalID, versions := range versionsByGoal {
		for _, version := range versions {
			if err := ctx.Store.AddGoalVersion(version); err != nil {
				return fmt.Errorf("failed to add version for goal %s: %w", goalID, err)
			}
			versionCount++
		}
	}
	fmt.Printf("    Migrated %d goal versions\n", versionCount)

	// The full day log: an open-ended range covers everything
	const rangeStart, rangeEnd = "0000-01-01", "9999-12-31"

	fmt.Println("  Migrating tag events...")
	events, err := sourceStore.GetTagEvents(rangeStart, rangeEnd)
	if err != nil {
		return fmt.Errorf("failed to get tag events from source: %w", err)
	}
	for _, event := range events {
		if err := ctx.Store.AddTagEvent(event); err != nil {
			return fmt.Errorf("failed to add event %s: %w", event.ID, err)
		}
	}
	fmt.Printf("    Migrated %d tag events\n", len(events))

	fmt.Println("  Migrating day conditions...")
	dayConditions, err := sourceStore.GetDayConditions(rangeStart, rangeEnd)
	if err != nil {
		return fmt.Errorf("failed to get day conditions from source: %w", err)
	}
	for _, dc := range dayConditions {
		if err := ctx.Store.SetDayCondition(dc); err != nil {
			return fmt.Errorf("failed to set day condition on %s: %w", dc.Date, err)
		}
	}
	fmt.Printf("    Migrated %d day conditions\n", len(dayConditions))

	fmt.Println("  Migrating ratings...")
	ratings, err := sourceStore.GetGoalRatings(rangeStart, rangeEnd)
	if err != nil {
		return fmt.Errorf("failed to get ratings from source: %w", err)
	}
	for _, rating := range ratings {
		if err := ctx.Store.SetGoalRating(rating); err != nil {
			return fmt.Errorf("failed to set rating for goal %s on %s: %w", rating.GoalID, rating.Date, err)
		}
	}
	fmt.Printf("    Migrated %d ratings\n", len(ratings))

	fmt.Println("  Migrating notifications...")
	notifications, err := sourceStore.GetNotifications(false, 0)
	if err != nil {
		return fmt.Errorf("failed to get notifications from source: %w", err)
	}
	for _, n := range notifications {
		if _, err := ctx.Store.AddNotification(n); err != nil {
			return fmt.Errorf("failed to add notification %s: %w", n.ID, err)
		}
	}
	fmt.Printf("    Migrated %d notifications\n", len(notifications))

	return nil
}
