package identifier_test

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/dalemusser/surveytrack/internal/app/system/identifier"
)

func TestSurveyID_Shape(t *testing.T) {
	g := identifier.New()

	re := regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)
	for _, name := range []string{"Census", "infra audit", "  Water Quality  ", "abc"} {
		id := g.SurveyID(name)
		if !re.MatchString(id) {
			t.Errorf("SurveyID(%q) = %q, want match for %v", name, id, re)
		}
	}
}

func TestSurveyID_Prefix(t *testing.T) {
	g := identifier.New()

	id := g.SurveyID("Census")
	if id[:3] != "CEN" {
		t.Errorf("SurveyID(Census) prefix = %q, want CEN", id[:3])
	}

	// Whitespace is stripped before the prefix is taken.
	id = g.SurveyID("s m e")
	if id[:3] != "SME" {
		t.Errorf("SurveyID(\"s m e\") prefix = %q, want SME", id[:3])
	}
}

func TestSurveyID_ShortName(t *testing.T) {
	g := identifier.New()

	id := g.SurveyID("ab")
	if !regexp.MustCompile(`^AB[0-9]{3}$`).MatchString(id) {
		t.Errorf("SurveyID(ab) = %q, want AB + 3 digits", id)
	}
}

func TestMasterProjectID_Shape(t *testing.T) {
	g := identifier.New()

	re := regexp.MustCompile(`^[A-Z]{4}[0-9]{4}$`)
	for i := 0; i < 50; i++ {
		id := g.MasterProjectID()
		if !re.MatchString(id) {
			t.Fatalf("MasterProjectID() = %q, want match for %v", id, re)
		}
	}
}

func TestDeterministicWithSource(t *testing.T) {
	a := identifier.NewWithSource(rand.NewSource(42))
	b := identifier.NewWithSource(rand.NewSource(42))

	if got, want := a.SurveyID("Census"), b.SurveyID("Census"); got != want {
		t.Errorf("same seed diverged: %q vs %q", got, want)
	}
	if got, want := a.MasterProjectID(), b.MasterProjectID(); got != want {
		t.Errorf("same seed diverged: %q vs %q", got, want)
	}
}
