package engine

import (
	"sort"
	"strings"

	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/utils"
)

// TagImpactGoal is one goal a tag currently contributes to.
type TagImpactGoal struct {
	GoalID       string              `json:"goal_id"`
	GoalName     string              `json:"goal_name"`
	TargetWindow models.TargetWindow `json:"target_window"`
	ScoringMode  models.ScoringMode  `json:"scoring_mode"`
	Weight       float64             `json:"weight"`
}

// TagImpact lists the applicable goals a tag feeds on a date, with weights.
// Callers use it to preview what logging an event would affect before
// committing it.
type TagImpact struct {
	TagID   string          `json:"tag_id"`
	TagName string          `json:"tag_name"`
	Goals   []TagImpactGoal `json:"goals"`
}

// TagImpacts computes, per tag, which applicable count-scored goals that tag
// contributes to on the given date under each goal's effective version.
// Rating goals take no tag input and are skipped. Results sort by tag name.
func TagImpacts(snap Snapshot, date string) ([]TagImpact, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return nil, err
	}
	idx, err := buildIndex(snap)
	if err != nil {
		return nil, err
	}

	tagNames := make(map[string]string, len(snap.Tags))
	for i := range snap.Tags {
		tagNames[snap.Tags[i].ID] = snap.Tags[i].Name
	}

	impactsByTag := make(map[string][]TagImpactGoal)
	for i := range snap.Goals {
		goal := &snap.Goals[i]
		if !goal.Active {
			continue
		}
		versions := snap.Versions[goal.ID]
		if err := ValidateHistory(goal.ID, versions); err != nil {
			return nil, err
		}
		version := ResolveVersion(versions, date)
		if version == nil || version.ScoringMode == models.ModeRating {
			continue
		}
		if !applicable(version, idx.conditionsByDate[date]) {
			continue
		}
		for tagID, weight := range version.TagWeights {
			impactsByTag[tagID] = append(impactsByTag[tagID], TagImpactGoal{
				GoalID:       goal.ID,
				GoalName:     goal.Name,
				TargetWindow: version.TargetWindow,
				ScoringMode:  version.ScoringMode,
				Weight:       weight,
			})
		}
	}

	impacts := make([]TagImpact, 0, len(impactsByTag))
	for tagID, goals := range impactsByTag {
		name := tagNames[tagID]
		if name == "" {
			name = "Unknown tag"
		}
		sort.Slice(goals, func(i, j int) bool {
			return strings.ToLower(goals[i].GoalName) < strings.ToLower(goals[j].GoalName)
		})
		impacts = append(impacts, TagImpact{TagID: tagID, TagName: name, Goals: goals})
	}
	sort.Slice(impacts, func(i, j int) bool {
		return strings.ToLower(impacts[i].TagName) < strings.ToLower(impacts[j].TagName)
	})
	return impacts, nil
}
