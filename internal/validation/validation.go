package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateGoalName ConflictType = "duplicate_goal_name"
	ConflictDuplicateTagName  ConflictType = "duplicate_tag_name"
	ConflictMissingVersions   ConflictType = "missing_versions"
	ConflictVersionOrder      ConflictType = "version_order"
	ConflictInvalidVersion    ConflictType = "invalid_version"
	ConflictUnknownTag        ConflictType = "unknown_tag"
	ConflictUnknownCondition  ConflictType = "unknown_condition"
	ConflictInvalidDate       ConflictType = "invalid_date"
	ConflictRatingOutOfRange  ConflictType = "rating_out_of_range"
)

// Conflict represents a detected integrity problem in the goal data
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Goal/tag names involved
	GoalIDs     []string // IDs of goals involved (for auto-fixing)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string   // Human-readable description of the action
	SourceConflict Conflict // The conflict that triggered this fix action
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates goals, tags, and logged day data for integrity problems
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateGoals checks goal definitions and their version histories.
// Tags and conditions are the defined reference sets; version references
// outside them are dangling.
func (v *Validator) ValidateGoals(goals []models.Goal, versions map[string][]models.GoalVersion, tags []models.Tag, conditions []models.Condition) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	tagIDs := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tagIDs[tag.ID] = true
	}
	conditionIDs := make(map[string]bool, len(conditions))
	for _, condition := range conditions {
		conditionIDs[condition.ID] = true
	}

	// Check for duplicate goal names among active goals
	nameCount := make(map[string][]string)
	for _, goal := range goals {
		if !goal.Active || goal.Name == "" {
			continue
		}
		nameCount[goal.Name] = append(nameCount[goal.Name], goal.ID)
	}
	for name, ids := range nameCount {
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateGoalName,
				Description: fmt.Sprintf("Duplicate goal name: \"%s\" (IDs: %v)", name, ids),
				Items:       []string{name},
				GoalIDs:     ids,
			})
		}
	}

	for _, goal := range goals {
		history := versions[goal.ID]

		// An active goal with no versions can never be scored
		if goal.Active && len(history) == 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingVersions,
				Description: fmt.Sprintf("Goal \"%s\" has no versions and will never be scored", goal.Name),
				Items:       []string{goal.Name},
				GoalIDs:     []string{goal.ID},
			})
			continue
		}

		prev := ""
		for _, version := range history {
			if err := version.Validate(); err != nil {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidVersion,
					Description: fmt.Sprintf("Goal \"%s\" version %d is invalid: %v", goal.Name, version.Version, err),
					Items:       []string{goal.Name},
					GoalIDs:     []string{goal.ID},
				})
				continue
			}
			if prev != "" && version.EffectiveFrom <= prev {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type: ConflictVersionOrder,
					Description: fmt.Sprintf("Goal \"%s\" versions are not strictly increasing (%s followed by %s)",
						goal.Name, prev, version.EffectiveFrom),
					Items:   []string{goal.Name},
					GoalIDs: []string{goal.ID},
				})
			}
			prev = version.EffectiveFrom

			for tagID := range version.TagWeights {
				if !tagIDs[tagID] {
					result.Conflicts = append(result.Conflicts, Conflict{
						Type:        ConflictUnknownTag,
						Description: fmt.Sprintf("Goal \"%s\" version %d weights unknown tag %s", goal.Name, version.Version, tagID),
						Items:       []string{goal.Name},
						GoalIDs:     []string{goal.ID},
					})
				}
			}
			for conditionID := range version.Conditions {
				if !conditionIDs[conditionID] {
					result.Conflicts = append(result.Conflicts, Conflict{
						Type:        ConflictUnknownCondition,
						Description: fmt.Sprintf("Goal \"%s\" version %d requires unknown condition %s", goal.Name, version.Version, conditionID),
						Items:       []string{goal.Name},
						GoalIDs:     []string{goal.ID},
					})
				}
			}
		}
	}

	return result
}

// ValidateTags checks the tag set for duplicate active names
func (v *Validator) ValidateTags(tags []models.Tag) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	nameCount := make(map[string][]string)
	for _, tag := range tags {
		if !tag.Active || tag.Name == "" {
			continue
		}
		nameCount[tag.Name] = append(nameCount[tag.Name], tag.ID)
	}
	for name, ids := range nameCount {
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTagName,
				Description: fmt.Sprintf("Duplicate tag name: \"%s\" (IDs: %v)", name, ids),
				Items:       []string{name},
			})
		}
	}

	return result
}

// ValidateDayLog checks logged events, conditions, and ratings against the
// defined tag/condition/goal sets
func (v *Validator) ValidateDayLog(events []models.TagEvent, dayConditions []models.DayCondition, ratings []models.GoalRating, tags []models.Tag, conditions []models.Condition, goals []models.Goal) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	tagIDs := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tagIDs[tag.ID] = true
	}
	conditionIDs := make(map[string]bool, len(conditions))
	for _, condition := range conditions {
		conditionIDs[condition.ID] = true
	}
	goalIDs := make(map[string]bool, len(goals))
	for _, goal := range goals {
		goalIDs[goal.ID] = true
	}

	for _, event := range events {
		if !isValidDate(event.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Event %s has invalid date: %s", event.ID, event.Date),
				Date:        event.Date,
			})
		}
		if !tagIDs[event.TagID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownTag,
				Description: fmt.Sprintf("Event %s on %s references unknown tag %s", event.ID, event.Date, event.TagID),
				Date:        event.Date,
			})
		}
	}

	for _, dc := range dayConditions {
		if !isValidDate(dc.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Condition record has invalid date: %s", dc.Date),
				Date:        dc.Date,
			})
		}
		if !conditionIDs[dc.ConditionID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownCondition,
				Description: fmt.Sprintf("Record on %s references unknown condition %s", dc.Date, dc.ConditionID),
				Date:        dc.Date,
			})
		}
	}

	for _, rating := range ratings {
		if !isValidDate(rating.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Rating has invalid date: %s", rating.Date),
				Date:        rating.Date,
			})
		}
		if rating.Rating < 1 || rating.Rating > 100 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictRatingOutOfRange,
				Description: fmt.Sprintf("Rating %d for goal %s on %s is outside 1-100", rating.Rating, rating.GoalID, rating.Date),
				Date:        rating.Date,
				GoalIDs:     []string{rating.GoalID},
			})
		}
		if !goalIDs[rating.GoalID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownTag,
				Description: fmt.Sprintf("Rating on %s references unknown goal %s", rating.Date, rating.GoalID),
				Date:        rating.Date,
			})
		}
	}

	return result
}

func isValidDate(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}

// AutoFixDuplicateGoals fixes duplicate goal name conflicts by keeping a single
// goal and archiving the others. Returns a slice of FixActions describing what
// was fixed.
func AutoFixDuplicateGoals(conflicts []Conflict, goals []models.Goal, archiveFunc func(id string) error) []FixAction {
	actions := []FixAction{}

	goalMap := make(map[string]models.Goal)
	for _, goal := range goals {
		goalMap[goal.ID] = goal
	}

	for _, conflict := range conflicts {
		if conflict.Type != ConflictDuplicateGoalName {
			continue
		}
		if len(conflict.GoalIDs) <= 1 {
			continue
		}

		var candidates []models.Goal
		for _, id := range conflict.GoalIDs {
			if goal, ok := goalMap[id]; ok && goal.Active {
				candidates = append(candidates, goal)
			}
		}
		if len(candidates) <= 1 {
			continue
		}

		// Keep the oldest goal so its version history and logged ratings
		// survive; creation time breaks ties by ID for determinism.
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].CreatedAt.Equal(candidates[j].CreatedAt) {
				return candidates[i].ID < candidates[j].ID
			}
			return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
		})

		keep := candidates[0]
		var archivedIDs []string
		var failedIDs []string
		for i := 1; i < len(candidates); i++ {
			if err := archiveFunc(candidates[i].ID); err == nil {
				archivedIDs = append(archivedIDs, candidates[i].ID)
			} else {
				failedIDs = append(failedIDs, candidates[i].ID)
			}
		}

		if len(archivedIDs) > 0 {
			actionMsg := fmt.Sprintf("Archived %d duplicate goal(s) named \"%s\" (kept ID: %s, archived: %v)", len(archivedIDs), keep.Name, keep.ID, archivedIDs)
			if len(failedIDs) > 0 {
				actionMsg += fmt.Sprintf(" (failed to archive: %v)", failedIDs)
			}
			actions = append(actions, FixAction{
				Action:         actionMsg,
				SourceConflict: conflict,
			})
		} else if len(failedIDs) > 0 {
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to archive duplicates for \"%s\": %v", keep.Name, failedIDs),
				SourceConflict: conflict,
			})
		}
	}

	return actions
}
