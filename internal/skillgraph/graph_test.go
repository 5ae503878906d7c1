package skillgraph

import (
	"errors"
	"testing"

	"sproutplan/internal/models"
)

func catalog() []models.Skill {
	return []models.Skill{
		{ID: "prl-pouring", Area: models.AreaPracticalLife, AgeRanges: []models.Bracket{models.Bracket3to4, models.Bracket4to5}},
		{ID: "lan-letter", Area: models.AreaLanguage, AgeRanges: []models.Bracket{models.Bracket3to4, models.Bracket4to5}},
		{ID: "lan-phonics", Area: models.AreaLanguage, AgeRanges: []models.Bracket{models.Bracket4to5}, Prerequisites: []string{"lan-letter"}},
		{ID: "lan-reading", Area: models.AreaLanguage, AgeRanges: []models.Bracket{models.Bracket5to6}, Prerequisites: []string{"lan-letter", "lan-phonics"}},
		{ID: "mat-counting", Area: models.AreaMathematics, AgeRanges: []models.Bracket{models.Bracket3to4}},
	}
}

func TestNewValidCatalog(t *testing.T) {
	g, err := New(catalog())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if g.Len() != 5 {
		t.Errorf("Len() = %d, want 5", g.Len())
	}
}

func TestNewRejectsDanglingPrerequisite(t *testing.T) {
	skills := catalog()
	skills = append(skills, models.Skill{ID: "mat-quantity", Prerequisites: []string{"mat-missing"}})

	_, err := New(skills)
	var ie *IntegrityError
	if !errors.As(err, &ie) {
		t.Fatalf("New() error = %v, want IntegrityError", err)
	}
}

func TestNewRejectsCycle(t *testing.T) {
	skills := []models.Skill{
		{ID: "a", Prerequisites: []string{"c"}},
		{ID: "b", Prerequisites: []string{"a"}},
		{ID: "c", Prerequisites: []string{"b"}},
	}

	_, err := New(skills)
	var ie *IntegrityError
	if !errors.As(err, &ie) {
		t.Fatalf("New() error = %v, want IntegrityError", err)
	}
}

func TestNewRejectsDuplicateID(t *testing.T) {
	skills := []models.Skill{{ID: "a"}, {ID: "a"}}
	var ie *IntegrityError
	if _, err := New(skills); !errors.As(err, &ie) {
		t.Fatalf("New() error = %v, want IntegrityError", err)
	}
}

func TestSkillsForBracket(t *testing.T) {
	g, err := New(catalog())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := g.SkillsForBracket(models.Bracket3to4)
	want := []string{"lan-letter", "mat-counting", "prl-pouring"}
	if len(got) != len(want) {
		t.Fatalf("SkillsForBracket() returned %d skills, want %d", len(got), len(want))
	}
	for i, s := range got {
		if s.ID != want[i] {
			t.Errorf("skill[%d] = %q, want %q", i, s.ID, want[i])
		}
	}
}

func TestIsEligible(t *testing.T) {
	g, err := New(catalog())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name      string
		skillID   string
		satisfied map[string]bool
		want      bool
	}{
		{"no prerequisites", "prl-pouring", nil, true},
		{"prerequisite missing", "lan-phonics", nil, false},
		{"prerequisite satisfied", "lan-phonics", map[string]bool{"lan-letter": true}, true},
		{"one of two satisfied", "lan-reading", map[string]bool{"lan-letter": true}, false},
		{"all satisfied", "lan-reading", map[string]bool{"lan-letter": true, "lan-phonics": true}, true},
		{"unknown skill", "nope", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.IsEligible(tt.skillID, tt.satisfied); got != tt.want {
				t.Errorf("IsEligible(%q) = %v, want %v", tt.skillID, got, tt.want)
			}
		})
	}
}

func TestUnlockedFrontier(t *testing.T) {
	g, err := New(catalog())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	progress := map[string]models.SkillStatus{
		"lan-letter":  models.StatusDeveloping,
		"prl-pouring": models.StatusMastered,
	}

	frontier := g.UnlockedFrontier(progress)

	// lan-phonics unlocks because lan-letter is developing; lan-reading does
	// not because lan-phonics itself is not started; mastered skills drop out.
	wantIn := []string{"lan-letter", "lan-phonics", "mat-counting"}
	wantOut := []string{"lan-reading", "prl-pouring"}

	for _, id := range wantIn {
		if !frontier[id] {
			t.Errorf("frontier missing %q", id)
		}
	}
	for _, id := range wantOut {
		if frontier[id] {
			t.Errorf("frontier should not contain %q", id)
		}
	}
}
