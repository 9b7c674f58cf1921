package storage

import (
	"github.com/julianstephens/goaltrack/internal/engine"
	"github.com/julianstephens/goaltrack/internal/models"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Tags
	AddTag(models.Tag) error
	GetTag(id string) (models.Tag, error)
	GetTagByName(name string) (models.Tag, error)
	GetAllTags(includeInactive bool) ([]models.Tag, error)
	UpdateTag(models.Tag) error
	DeactivateTag(id string) error

	// Conditions
	AddCondition(models.Condition) error
	GetCondition(id string) (models.Condition, error)
	GetConditionByName(name string) (models.Condition, error)
	GetAllConditions(includeInactive bool) ([]models.Condition, error)
	UpdateCondition(models.Condition) error
	DeactivateCondition(id string) error

	// Goals
	AddGoal(models.Goal) error
	GetGoal(id string) (models.Goal, error)
	GetGoalByName(name string) (models.Goal, error)
	GetAllGoals(includeArchived bool) ([]models.Goal, error)
	UpdateGoal(models.Goal) error
	ArchiveGoal(id string) error
	RestoreGoal(id string) error

	// Goal versions. Version histories are append-only: AddGoalVersion
	// appends a new definition, UpdateGoalVersion replaces an existing
	// one in place (same-day edits only; callers enforce that rule).
	AddGoalVersion(models.GoalVersion) error
	GetGoalVersions(goalID string) ([]models.GoalVersion, error)
	GetAllGoalVersions() (map[string][]models.GoalVersion, error)
	UpdateGoalVersion(models.GoalVersion) error

	// Tag events
	AddTagEvent(models.TagEvent) error
	GetTagEvents(startDate, endDate string) ([]models.TagEvent, error)
	DeleteTagEvent(id string) error

	// Day conditions (upsert per date+condition)
	SetDayCondition(models.DayCondition) error
	GetDayConditions(startDate, endDate string) ([]models.DayCondition, error)

	// Goal ratings (upsert per date+goal)
	SetGoalRating(models.GoalRating) error
	GetGoalRatings(startDate, endDate string) ([]models.GoalRating, error)

	// Day entries
	SaveDayEntry(models.DayEntry) error
	GetDayEntry(date string) (models.DayEntry, error)

	// Notifications. AddNotification reports whether the notification was
	// stored; a false result means its dedupe key already exists.
	AddNotification(models.Notification) (bool, error)
	GetNotifications(unreadOnly bool, limit int) ([]models.Notification, error)
	MarkNotificationRead(id string) error

	// App state (small key/value pairs like the reminder cadence marker)
	GetAppState(key string) (string, error)
	SetAppState(key, value string) error

	// LoadSnapshot reads everything scoring needs for [startDate, endDate]
	// inside one transaction, so the engine never sees a torn view of the
	// log.
	LoadSnapshot(startDate, endDate string) (engine.Snapshot, error)

	// Utils
	GetConfigPath() string
}
