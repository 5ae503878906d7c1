package progress

import (
	"testing"

	"sproutplan/internal/models"
)

func TestMergeDefaultsToNotStarted(t *testing.T) {
	skills := []models.Skill{
		{ID: "a", Name: "Pouring", Area: models.AreaPracticalLife},
		{ID: "b", Name: "Color Discrimination", Area: models.AreaSensorial},
	}
	records := []models.ChildSkillProgress{
		{ChildID: "c1", SkillID: "a", Status: models.StatusDeveloping},
	}

	merged := Merge(skills, records)
	if len(merged) != 2 {
		t.Fatalf("Merge() returned %d skills, want 2", len(merged))
	}

	byID := map[string]MergedSkill{}
	for _, m := range merged {
		byID[m.Skill.ID] = m
	}

	if byID["a"].Status != models.StatusDeveloping {
		t.Errorf("skill a status = %v, want developing", byID["a"].Status)
	}
	if byID["a"].ProgressLevel != 6 {
		t.Errorf("skill a level = %d, want 6 (derived from status)", byID["a"].ProgressLevel)
	}
	if byID["b"].Status != models.StatusNotStarted || byID["b"].ProgressLevel != 0 {
		t.Errorf("skill b = %v/%d, want not_started/0", byID["b"].Status, byID["b"].ProgressLevel)
	}
}

func TestMergeDerivesStatusFromLevel(t *testing.T) {
	skills := []models.Skill{{ID: "a", Name: "Pouring"}}
	records := []models.ChildSkillProgress{{SkillID: "a", ProgressLevel: 9}}

	merged := Merge(skills, records)
	if merged[0].Status != models.StatusMastered {
		t.Errorf("status = %v, want mastered derived from level 9", merged[0].Status)
	}
}

func TestByAreaPercent(t *testing.T) {
	area := models.AreaLanguage
	skills := []models.Skill{
		{ID: "a", Name: "A", Area: area},
		{ID: "b", Name: "B", Area: area},
		{ID: "c", Name: "C", Area: area},
		{ID: "d", Name: "D", Area: area},
	}
	records := []models.ChildSkillProgress{
		{SkillID: "a", Status: models.StatusMastered},
		{SkillID: "b", Status: models.StatusDeveloping},
		{SkillID: "c", Status: models.StatusEmerging},
	}

	got := ByArea(Merge(skills, records))[area]

	// (1 + 0.7 + 0.3) / 4 = 50%
	if got.Percent != 50 {
		t.Errorf("Percent = %d, want 50", got.Percent)
	}
	if got.Mastered != 1 || got.Developing != 1 || got.Emerging != 1 || got.NotStarted != 1 {
		t.Errorf("counts = %+v, want one of each", got)
	}
}

func TestByAreaEmptyCatalog(t *testing.T) {
	got := ByArea(Merge(nil, nil))
	if len(got) != 0 {
		t.Errorf("ByArea() on empty catalog = %v, want empty", got)
	}
}

func TestStatusLevelRoundTrip(t *testing.T) {
	// Every level's derived status maps back to a level in the same band
	for level := 0; level <= 10; level++ {
		status := models.StatusFromLevel(level)
		back := status.Level()
		if models.StatusFromLevel(back) != status {
			t.Errorf("level %d: status %v round-trips to level %d with status %v",
				level, status, back, models.StatusFromLevel(back))
		}
	}
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{0, "not started"},
		{1, "emerging"},
		{3, "developing"},
		{6, "progressing"},
		{8, "progressing"},
		{9, "strength"},
		{10, "strength"},
	}
	for _, tt := range tests {
		if got := models.DisplayLabel(tt.level); got != tt.want {
			t.Errorf("DisplayLabel(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
