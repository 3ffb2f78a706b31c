// Package skill resolves skill names against the shared vocabulary and
// normalises the skill lists submitted with user profiles.
package skill

import (
	"context"
	"fmt"
	"strings"

	"collab_hub_backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Input is one skill entry as submitted by clients. SkillID carries the
// skill name, not an identifier.
type Input struct {
	SkillID string `json:"skillId"`
	Level   string `json:"level"`
}

// Entry is a normalised skill entry.
type Entry struct {
	Name  string
	Level string
}

// Dedupe trims names, drops blank ones and collapses repeated names. The
// level of the last occurrence wins; the order of first appearance is kept.
func Dedupe(inputs []Input) []Entry {
	index := make(map[string]int, len(inputs))
	entries := make([]Entry, 0, len(inputs))

	for _, in := range inputs {
		name := strings.TrimSpace(in.SkillID)
		if name == "" {
			continue
		}
		level := strings.TrimSpace(in.Level)
		if level == "" {
			level = domain.DefaultSkillLevel
		}
		if i, seen := index[name]; seen {
			entries[i].Level = level
			continue
		}
		index[name] = len(entries)
		entries = append(entries, Entry{Name: name, Level: level})
	}
	return entries
}

// Names returns the names of entries in order.
func Names(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Resolve finds or creates a Skill for every name with one select, one
// batched insert of the missing names and one re-select. Pass a transaction
// handle to make the inserts part of the caller's unit of work.
func Resolve(ctx context.Context, db *gorm.DB, names []string) (map[string]domain.Skill, error) {
	resolved := make(map[string]domain.Skill, len(names))
	if len(names) == 0 {
		return resolved, nil
	}

	var existing []domain.Skill
	if err := db.WithContext(ctx).Where("name IN ?", names).Find(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to look up skills: %w", err)
	}
	for _, s := range existing {
		resolved[s.Name] = s
	}

	var missing []domain.Skill
	var missingNames []string
	for _, name := range names {
		if _, ok := resolved[name]; ok {
			continue
		}
		missing = append(missing, domain.Skill{Name: name})
		missingNames = append(missingNames, name)
	}
	if len(missing) == 0 {
		return resolved, nil
	}

	// A concurrent request may insert the same name between the select and
	// the insert; the conflict clause lets the re-select pick up its row.
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&missing).Error; err != nil {
		return nil, fmt.Errorf("failed to create skills: %w", err)
	}

	var created []domain.Skill
	if err := db.WithContext(ctx).Where("name IN ?", missingNames).Find(&created).Error; err != nil {
		return nil, fmt.Errorf("failed to reload skills: %w", err)
	}
	for _, s := range created {
		resolved[s.Name] = s
	}

	for _, name := range missingNames {
		if _, ok := resolved[name]; !ok {
			return nil, fmt.Errorf("skill %q could not be resolved", name)
		}
	}
	return resolved, nil
}

// Link builds the UserSkill rows for userID from deduplicated entries.
func Link(userID uuid.UUID, entries []Entry, skills map[string]domain.Skill) []domain.UserSkill {
	links := make([]domain.UserSkill, 0, len(entries))
	for _, e := range entries {
		s := skills[e.Name]
		links = append(links, domain.UserSkill{
			UserID:  userID,
			SkillID: s.ID,
			Level:   e.Level,
		})
	}
	return links
}
