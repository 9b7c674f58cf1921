package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/goaltrack/internal/engine"
	apperrors "github.com/julianstephens/goaltrack/internal/errors"
	"github.com/julianstephens/goaltrack/internal/migration"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/migrations"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return apperrors.ErrNotInitialized
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, migrations.SQLite(), migration.DialectSQLite)
	return runner.ValidateVersion()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) runMigrations() error {
	runner := migration.NewRunner(s.db, migrations.SQLite(), migration.DialectSQLite)
	_, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	return err
}

// Tags

func (s *SQLiteStore) AddTag(tag models.Tag) error {
	_, err := s.db.Exec(`
		INSERT INTO tags (id, name, category, active, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		tag.ID, tag.Name, tag.Category, tag.Active, tag.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) GetTag(id string) (models.Tag, error) {
	return s.scanTag(s.db.QueryRow(
		"SELECT id, name, category, active, created_at FROM tags WHERE id = ?", id))
}

func (s *SQLiteStore) GetTagByName(name string) (models.Tag, error) {
	return s.scanTag(s.db.QueryRow(
		"SELECT id, name, category, active, created_at FROM tags WHERE name = ?", name))
}

func (s *SQLiteStore) scanTag(row *sql.Row) (models.Tag, error) {
	var t models.Tag
	var createdAt string
	if err := row.Scan(&t.ID, &t.Name, &t.Category, &t.Active, &createdAt); err != nil {
		return models.Tag{}, err
	}
	var err error
	t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Tag{}, fmt.Errorf("failed to parse created_at for tag %s: %w", t.ID, err)
	}
	return t, nil
}

func (s *SQLiteStore) GetAllTags(includeInactive bool) ([]models.Tag, error) {
	query := "SELECT id, name, category, active, created_at FROM tags"
	if !includeInactive {
		query += " WHERE active = 1"
	}
	query += " ORDER BY name"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.Active, &createdAt); err != nil {
			return nil, err
		}
		t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for tag %s: %w", t.ID, err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (s *SQLiteStore) UpdateTag(tag models.Tag) error {
	result, err := s.db.Exec(`
		UPDATE tags SET name = ?, category = ?, active = ? WHERE id = ?`,
		tag.Name, tag.Category, tag.Active, tag.ID)
	if err != nil {
		return err
	}
	return requireRow(result, "tag not found")
}

func (s *SQLiteStore) DeactivateTag(id string) error {
	result, err := s.db.Exec("UPDATE tags SET active = 0 WHERE id = ? AND active = 1", id)
	if err != nil {
		return err
	}
	return requireRow(result, "tag not found or already inactive")
}

// Conditions

func (s *SQLiteStore) AddCondition(condition models.Condition) error {
	_, err := s.db.Exec(`
		INSERT INTO conditions (id, name, active, created_at)
		VALUES (?, ?, ?, ?)`,
		condition.ID, condition.Name, condition.Active, condition.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) GetCondition(id string) (models.Condition, error) {
	return s.scanCondition(s.db.QueryRow(
		"SELECT id, name, active, created_at FROM conditions WHERE id = ?", id))
}

func (s *SQLiteStore) GetConditionByName(name string) (models.Condition, error) {
	return s.scanCondition(s.db.QueryRow(
		"SELECT id, name, active, created_at FROM conditions WHERE name = ?", name))
}

func (s *SQLiteStore) scanCondition(row *sql.Row) (models.Condition, error) {
	var c models.Condition
	var createdAt string
	if err := row.Scan(&c.ID, &c.Name, &c.Active, &createdAt); err != nil {
		return models.Condition{}, err
	}
	var err error
	c.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Condition{}, fmt.Errorf("failed to parse created_at for condition %s: %w", c.ID, err)
	}
	return c, nil
}

func (s *SQLiteStore) GetAllConditions(includeInactive bool) ([]models.Condition, error) {
	query := "SELECT id, name, active, created_at FROM conditions"
	if !includeInactive {
		query += " WHERE active = 1"
	}
	query += " ORDER BY name"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conditions []models.Condition
	for rows.Next() {
		var c models.Condition
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Active, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for condition %s: %w", c.ID, err)
		}
		conditions = append(conditions, c)
	}
	return conditions, rows.Err()
}

func (s *SQLiteStore) UpdateCondition(condition models.Condition) error {
	result, err := s.db.Exec(`
		UPDATE conditions SET name = ?, active = ? WHERE id = ?`,
		condition.Name, condition.Active, condition.ID)
	if err != nil {
		return err
	}
	return requireRow(result, "condition not found")
}

func (s *SQLiteStore) DeactivateCondition(id string) error {
	result, err := s.db.Exec("UPDATE conditions SET active = 0 WHERE id = ? AND active = 1", id)
	if err != nil {
		return err
	}
	return requireRow(result, "condition not found or already inactive")
}

// Goals

func (s *SQLiteStore) AddGoal(goal models.Goal) error {
	var archivedAt sql.NullString
	if goal.ArchivedAt != nil {
		archivedAt = sql.NullString{String: goal.ArchivedAt.Format(time.RFC3339), Valid: true}
	}
	_, err := s.db.Exec(`
		INSERT INTO goals (id, name, description, active, created_at, archived_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		goal.ID, goal.Name, goal.Description, goal.Active, goal.CreatedAt.Format(time.RFC3339), archivedAt)
	return err
}

func (s *SQLiteStore) GetGoal(id string) (models.Goal, error) {
	return s.scanGoal(s.db.QueryRow(
		"SELECT id, name, description, active, created_at, archived_at FROM goals WHERE id = ?", id))
}

func (s *SQLiteStore) GetGoalByName(name string) (models.Goal, error) {
	return s.scanGoal(s.db.QueryRow(
		"SELECT id, name, description, active, created_at, archived_at FROM goals WHERE name = ? AND archived_at IS NULL", name))
}

func (s *SQLiteStore) scanGoal(row *sql.Row) (models.Goal, error) {
	var g models.Goal
	var createdAt string
	var archivedAt sql.NullString
	if err := row.Scan(&g.ID, &g.Name, &g.Description, &g.Active, &createdAt, &archivedAt); err != nil {
		return models.Goal{}, err
	}
	var err error
	g.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Goal{}, fmt.Errorf("failed to parse created_at for goal %s: %w", g.ID, err)
	}
	if archivedAt.Valid {
		t, err := time.Parse(time.RFC3339, archivedAt.String)
		if err != nil {
			return models.Goal{}, fmt.Errorf("failed to parse archived_at for goal %s: %w", g.ID, err)
		}
		g.ArchivedAt = &t
	}
	return g, nil
}

func (s *SQLiteStore) GetAllGoals(includeArchived bool) ([]models.Goal, error) {
	query := "SELECT id, name, description, active, created_at, archived_at FROM goals"
	if !includeArchived {
		query += " WHERE archived_at IS NULL"
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		var createdAt string
		var archivedAt sql.NullString
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.Active, &createdAt, &archivedAt); err != nil {
			return nil, err
		}
		g.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for goal %s: %w", g.ID, err)
		}
		if archivedAt.Valid {
			t, err := time.Parse(time.RFC3339, archivedAt.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse archived_at for goal %s: %w", g.ID, err)
			}
			g.ArchivedAt = &t
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *SQLiteStore) UpdateGoal(goal models.Goal) error {
	var archivedAt sql.NullString
	if goal.ArchivedAt != nil {
		archivedAt = sql.NullString{String: goal.ArchivedAt.Format(time.RFC3339), Valid: true}
	}
	result, err := s.db.Exec(`
		UPDATE goals SET name = ?, description = ?, active = ?, archived_at = ? WHERE id = ?`,
		goal.Name, goal.Description, goal.Active, archivedAt, goal.ID)
	if err != nil {
		return err
	}
	return requireRow(result, "goal not found")
}

func (s *SQLiteStore) ArchiveGoal(id string) error {
	result, err := s.db.Exec(`
		UPDATE goals SET archived_at = ?, active = 0 WHERE id = ? AND archived_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return requireRow(result, "goal not found or already archived")
}

func (s *SQLiteStore) RestoreGoal(id string) error {
	result, err := s.db.Exec(`
		UPDATE goals SET archived_at = NULL, active = 1 WHERE id = ? AND archived_at IS NOT NULL`, id)
	if err != nil {
		return err
	}
	return requireRow(result, "goal not found or not archived")
}

// Goal versions

func (s *SQLiteStore) AddGoalVersion(version models.GoalVersion) error {
	weightsJSON, conditionsJSON, err := marshalVersionMaps(version)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO goal_versions (id, goal_id, version, effective_from, target_window, target_count, scoring_mode, tag_weights, conditions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		version.ID, version.GoalID, version.Version, version.EffectiveFrom,
		version.TargetWindow, version.TargetCount, version.ScoringMode,
		weightsJSON, conditionsJSON, version.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) UpdateGoalVersion(version models.GoalVersion) error {
	weightsJSON, conditionsJSON, err := marshalVersionMaps(version)
	if err != nil {
		return err
	}
	result, err := s.db.Exec(`
		UPDATE goal_versions SET target_window = ?, target_count = ?, scoring_mode = ?, tag_weights = ?, conditions = ?
		WHERE id = ?`,
		version.TargetWindow, version.TargetCount, version.ScoringMode,
		weightsJSON, conditionsJSON, version.ID)
	if err != nil {
		return err
	}
	return requireRow(result, "goal version not found")
}

func (s *SQLiteStore) GetGoalVersions(goalID string) ([]models.GoalVersion, error) {
	rows, err := s.db.Query(`
		SELECT id, goal_id, version, effective_from, target_window, target_count, scoring_mode, tag_weights, conditions, created_at
		FROM goal_versions WHERE goal_id = ? ORDER BY effective_from`, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGoalVersions(rows)
}

func (s *SQLiteStore) GetAllGoalVersions() (map[string][]models.GoalVersion, error) {
	rows, err := s.db.Query(`
		SELECT id, goal_id, version, effective_from, target_window, target_count, scoring_mode, tag_weights, conditions, created_at
		FROM goal_versions ORDER BY goal_id, effective_from`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions, err := scanGoalVersions(rows)
	if err != nil {
		return nil, err
	}
	byGoal := make(map[string][]models.GoalVersion)
	for _, v := range versions {
		byGoal[v.GoalID] = append(byGoal[v.GoalID], v)
	}
	return byGoal, nil
}

// Tag events

func (s *SQLiteStore) AddTagEvent(event models.TagEvent) error {
	var ts sql.NullString
	if event.TS != nil {
		ts = sql.NullString{String: event.TS.Format(time.RFC3339), Valid: true}
	}
	_, err := s.db.Exec(`
		INSERT INTO tag_events (id, date, tag_id, count, ts, note)
		VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID, event.Date, event.TagID, event.Count, ts, event.Note)
	return err
}

func (s *SQLiteStore) GetTagEvents(startDate, endDate string) ([]models.TagEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, date, tag_id, count, ts, note
		FROM tag_events WHERE date >= ? AND date <= ? ORDER BY date, id`,
		startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTagEvents(rows)
}

func (s *SQLiteStore) DeleteTagEvent(id string) error {
	result, err := s.db.Exec("DELETE FROM tag_events WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(result, "event not found")
}

// Day conditions

func (s *SQLiteStore) SetDayCondition(dc models.DayCondition) error {
	_, err := s.db.Exec(`
		INSERT INTO day_conditions (date, condition_id, value)
		VALUES (?, ?, ?)
		ON CONFLICT(date, condition_id) DO UPDATE SET value = excluded.value`,
		dc.Date, dc.ConditionID, dc.Value)
	return err
}

func (s *SQLiteStore) GetDayConditions(startDate, endDate string) ([]models.DayCondition, error) {
	rows, err := s.db.Query(`
		SELECT date, condition_id, value
		FROM day_conditions WHERE date >= ? AND date <= ? ORDER BY date`,
		startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.DayCondition
	for rows.Next() {
		var dc models.DayCondition
		if err := rows.Scan(&dc.Date, &dc.ConditionID, &dc.Value); err != nil {
			return nil, err
		}
		records = append(records, dc)
	}
	return records, rows.Err()
}

// Goal ratings

func (s *SQLiteStore) SetGoalRating(rating models.GoalRating) error {
	_, err := s.db.Exec(`
		INSERT INTO goal_ratings (date, goal_id, rating, note)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date, goal_id) DO UPDATE SET
			rating = excluded.rating,
			note = excluded.note`,
		rating.Date, rating.GoalID, rating.Rating, rating.Note)
	return err
}

func (s *SQLiteStore) GetGoalRatings(startDate, endDate string) ([]models.GoalRating, error) {
	rows, err := s.db.Query(`
		SELECT date, goal_id, rating, note
		FROM goal_ratings WHERE date >= ? AND date <= ? ORDER BY date`,
		startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []models.GoalRating
	for rows.Next() {
		var r models.GoalRating
		if err := rows.Scan(&r.Date, &r.GoalID, &r.Rating, &r.Note); err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// Day entries

func (s *SQLiteStore) SaveDayEntry(entry models.DayEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO day_entries (date, note, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			note = excluded.note,
			updated_at = excluded.updated_at`,
		entry.Date, entry.Note,
		entry.CreatedAt.Format(time.RFC3339), entry.UpdatedAt.Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) GetDayEntry(date string) (models.DayEntry, error) {
	row := s.db.QueryRow(`
		SELECT date, note, created_at, updated_at FROM day_entries WHERE date = ?`, date)

	var e models.DayEntry
	var createdAt, updatedAt string
	if err := row.Scan(&e.Date, &e.Note, &createdAt, &updatedAt); err != nil {
		return models.DayEntry{}, err
	}
	var err error
	e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.DayEntry{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.DayEntry{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return e, nil
}

// Notifications

func (s *SQLiteStore) AddNotification(n models.Notification) (bool, error) {
	if n.DedupeKey != "" {
		var existing int
		err := s.db.QueryRow(
			"SELECT COUNT(*) FROM notifications WHERE dedupe_key = ?", n.DedupeKey).Scan(&existing)
		if err != nil {
			return false, err
		}
		if existing > 0 {
			return false, nil
		}
	}

	var readAt sql.NullString
	if n.ReadAt != nil {
		readAt = sql.NullString{String: n.ReadAt.Format(time.RFC3339), Valid: true}
	}
	_, err := s.db.Exec(`
		INSERT INTO notifications (id, created_at, type, title, body, read_at, dedupe_key)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.CreatedAt.Format(time.RFC3339), n.Type, n.Title, n.Body, readAt, n.DedupeKey)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) GetNotifications(unreadOnly bool, limit int) ([]models.Notification, error) {
	query := "SELECT id, created_at, type, title, body, read_at, dedupe_key FROM notifications"
	if unreadOnly {
		query += " WHERE read_at IS NULL"
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var createdAt string
		var readAt sql.NullString
		if err := rows.Scan(&n.ID, &createdAt, &n.Type, &n.Title, &n.Body, &readAt, &n.DedupeKey); err != nil {
			return nil, err
		}
		n.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for notification %s: %w", n.ID, err)
		}
		if readAt.Valid {
			t, err := time.Parse(time.RFC3339, readAt.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse read_at for notification %s: %w", n.ID, err)
			}
			n.ReadAt = &t
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *SQLiteStore) MarkNotificationRead(id string) error {
	result, err := s.db.Exec(`
		UPDATE notifications SET read_at = ? WHERE id = ? AND read_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return requireRow(result, "notification not found or already read")
}

// App state

func (s *SQLiteStore) GetAppState(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM app_state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (s *SQLiteStore) SetAppState(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

// LoadSnapshot reads goals, versions, tags, and the full day log for the
// range inside one transaction.
func (s *SQLiteStore) LoadSnapshot(startDate, endDate string) (engine.Snapshot, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return engine.Snapshot{}, err
	}
	defer tx.Rollback()

	snap := engine.Snapshot{Versions: make(map[string][]models.GoalVersion)}

	goalRows, err := tx.Query(`
		SELECT id, name, description, active, created_at, archived_at FROM goals ORDER BY created_at`)
	if err != nil {
		return engine.Snapshot{}, err
	}
	for goalRows.Next() {
		var g models.Goal
		var createdAt string
		var archivedAt sql.NullString
		if err := goalRows.Scan(&g.ID, &g.Name, &g.Description, &g.Active, &createdAt, &archivedAt); err != nil {
			goalRows.Close()
			return engine.Snapshot{}, err
		}
		g.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			goalRows.Close()
			return engine.Snapshot{}, fmt.Errorf("failed to parse created_at for goal %s: %w", g.ID, err)
		}
		if archivedAt.Valid {
			t, err := time.Parse(time.RFC3339, archivedAt.String)
			if err != nil {
				goalRows.Close()
				return engine.Snapshot{}, fmt.Errorf("failed to parse archived_at for goal %s: %w", g.ID, err)
			}
			g.ArchivedAt = &t
		}
		snap.Goals = append(snap.Goals, g)
	}
	goalRows.Close()

	tagRows, err := tx.Query("SELECT id, name, category, active, created_at FROM tags")
	if err != nil {
		return engine.Snapshot{}, err
	}
	for tagRows.Next() {
		var t models.Tag
		var createdAt string
		if err := tagRows.Scan(&t.ID, &t.Name, &t.Category, &t.Active, &createdAt); err != nil {
			tagRows.Close()
			return engine.Snapshot{}, err
		}
		t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			tagRows.Close()
			return engine.Snapshot{}, fmt.Errorf("failed to parse created_at for tag %s: %w", t.ID, err)
		}
		snap.Tags = append(snap.Tags, t)
	}
	tagRows.Close()

	versionRows, err := tx.Query(`
		SELECT id, goal_id, version, effective_from, target_window, target_count, scoring_mode, tag_weights, conditions, created_at
		FROM goal_versions ORDER BY goal_id, effective_from`)
	if err != nil {
		return engine.Snapshot{}, err
	}
	versions, err := scanGoalVersions(versionRows)
	versionRows.Close()
	if err != nil {
		return engine.Snapshot{}, err
	}
	for _, v := range versions {
		snap.Versions[v.GoalID] = append(snap.Versions[v.GoalID], v)
	}

	eventRows, err := tx.Query(`
		SELECT id, date, tag_id, count, ts, note
		FROM tag_events WHERE date >= ? AND date <= ? ORDER BY date, id`,
		startDate, endDate)
	if err != nil {
		return engine.Snapshot{}, err
	}
	snap.Events, err = scanTagEvents(eventRows)
	eventRows.Close()
	if err != nil {
		return engine.Snapshot{}, err
	}

	conditionRows, err := tx.Query(`
		SELECT date, condition_id, value
		FROM day_conditions WHERE date >= ? AND date <= ?`,
		startDate, endDate)
	if err != nil {
		return engine.Snapshot{}, err
	}
	for conditionRows.Next() {
		var dc models.DayCondition
		if err := conditionRows.Scan(&dc.Date, &dc.ConditionID, &dc.Value); err != nil {
			conditionRows.Close()
			return engine.Snapshot{}, err
		}
		snap.Conditions = append(snap.Conditions, dc)
	}
	conditionRows.Close()

	ratingRows, err := tx.Query(`
		SELECT date, goal_id, rating, note
		FROM goal_ratings WHERE date >= ? AND date <= ?`,
		startDate, endDate)
	if err != nil {
		return engine.Snapshot{}, err
	}
	for ratingRows.Next() {
		var r models.GoalRating
		if err := ratingRows.Scan(&r.Date, &r.GoalID, &r.Rating, &r.Note); err != nil {
			ratingRows.Close()
			return engine.Snapshot{}, err
		}
		snap.Ratings = append(snap.Ratings, r)
	}
	ratingRows.Close()

	return snap, tx.Commit()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized or loaded.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
