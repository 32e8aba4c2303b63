package paging

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestParse_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/surveys", nil)
	p := Parse(r)
	if p.Limit != DefaultLimit || p.Page != 1 || p.SortBy != "" {
		t.Errorf("Parse defaults = %+v", p)
	}
}

func TestParse_ClampsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/surveys?limit=5000&page=3", nil)
	p := Parse(r)
	if p.Limit != MaxLimit {
		t.Errorf("Limit = %d, want %d", p.Limit, MaxLimit)
	}
	if p.Page != 3 {
		t.Errorf("Page = %d, want 3", p.Page)
	}
}

func TestParse_IgnoresBadValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/surveys?limit=abc&page=-2", nil)
	p := Parse(r)
	if p.Limit != DefaultLimit || p.Page != 1 {
		t.Errorf("Parse bad values = %+v", p)
	}
}

func TestSkip(t *testing.T) {
	p := Params{Limit: 10, Page: 3}
	if got := p.Skip(); got != 20 {
		t.Errorf("Skip = %d, want 20", got)
	}
}

func TestSort(t *testing.T) {
	cases := []struct {
		sortBy string
		want   bson.D
	}{
		{"", nil},
		{"surveyName:asc", bson.D{{Key: "surveyName", Value: 1}}},
		{"surveyName:desc", bson.D{{Key: "surveyName", Value: -1}}},
		{"surveyName", bson.D{{Key: "surveyName", Value: 1}}},
		{"surveyName:bogus", bson.D{{Key: "surveyName", Value: 1}}},
	}
	for _, c := range cases {
		got := Params{SortBy: c.sortBy}.Sort()
		if len(got) != len(c.want) {
			t.Errorf("Sort(%q) = %v, want %v", c.sortBy, got, c.want)
			continue
		}
		if len(got) == 1 && (got[0].Key != c.want[0].Key || got[0].Value != c.want[0].Value) {
			t.Errorf("Sort(%q) = %v, want %v", c.sortBy, got, c.want)
		}
	}
}

func TestNewPage(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, Params{Limit: 3, Page: 2}, 7)
	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page.TotalPages)
	}
	if page.TotalResults != 7 {
		t.Errorf("TotalResults = %d, want 7", page.TotalResults)
	}

	empty := NewPage[int](nil, Params{}, 0)
	if empty.Results == nil {
		t.Error("Results should be non-nil for empty pages")
	}
	if empty.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", empty.TotalPages)
	}
}
