package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/goaltrack/internal/models"
)

// requireRow turns a zero-rows-affected result into a named error. Both
// backends use it for updates whose miss means the caller's ID was wrong.
func requireRow(result sql.Result, msg string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s", msg)
	}
	return nil
}

// marshalVersionMaps serializes a version's tag weights and required
// conditions for storage in their JSON columns.
func marshalVersionMaps(version models.GoalVersion) (string, string, error) {
	weights := version.TagWeights
	if weights == nil {
		weights = map[string]float64{}
	}
	weightsJSON, err := json.Marshal(weights)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal tag weights: %w", err)
	}

	conditions := version.Conditions
	if conditions == nil {
		conditions = map[string]bool{}
	}
	conditionsJSON, err := json.Marshal(conditions)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal conditions: %w", err)
	}
	return string(weightsJSON), string(conditionsJSON), nil
}

func scanGoalVersions(rows *sql.Rows) ([]models.GoalVersion, error) {
	var versions []models.GoalVersion
	for rows.Next() {
		var v models.GoalVersion
		var weightsJSON, conditionsJSON, createdAt string
		err := rows.Scan(&v.ID, &v.GoalID, &v.Version, &v.EffectiveFrom,
			&v.TargetWindow, &v.TargetCount, &v.ScoringMode,
			&weightsJSON, &conditionsJSON, &createdAt)
		if err != nil {
			return nil, err
		}

		if weightsJSON != "" {
			if err := json.Unmarshal([]byte(weightsJSON), &v.TagWeights); err != nil {
				return nil, fmt.Errorf("failed to parse tag weights for version %s: %w", v.ID, err)
			}
		}
		if conditionsJSON != "" {
			if err := json.Unmarshal([]byte(conditionsJSON), &v.Conditions); err != nil {
				return nil, fmt.Errorf("failed to parse conditions for version %s: %w", v.ID, err)
			}
		}
		v.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for version %s: %w", v.ID, err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func scanTagEvents(rows *sql.Rows) ([]models.TagEvent, error) {
	var events []models.TagEvent
	for rows.Next() {
		var e models.TagEvent
		var ts sql.NullString
		if err := rows.Scan(&e.ID, &e.Date, &e.TagID, &e.Count, &ts, &e.Note); err != nil {
			return nil, err
		}
		if ts.Valid {
			t, err := time.Parse(time.RFC3339, ts.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse ts for event %s: %w", e.ID, err)
			}
			e.TS = &t
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
