package model

import (
	"reflect"
	"testing"
	"time"
)

func TestMatchesSearch_CaseInsensitiveAcrossFields(t *testing.T) {
	n := NewNote("Thermodynamics Summary", time.Now())
	n.Content = "Entropy always increases in an isolated system."
	n.Tags = []string{"physics", "exam-prep"}

	tests := []struct {
		query string
		want  bool
	}{
		{"THERMO", true},
		{"entropy", true},
		{"exam-prep", true},
		{"chemistry", false},
		{"", true}, // empty query matches everything
	}

	for _, tt := range tests {
		if got := n.MatchesSearch(tt.query); got != tt.want {
			t.Errorf("MatchesSearch(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestParseTags_TrimsAndDropsEmpty(t *testing.T) {
	got := ParseTags(" physics, exam-prep ,, math ")
	want := []string{"physics", "exam-prep", "math"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseTags = %v, want %v", got, want)
	}
}

func TestParseTags_KeepsDuplicatesAndOrder(t *testing.T) {
	got := ParseTags("b,a,b")
	want := []string{"b", "a", "b"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseTags = %v, want %v", got, want)
	}
}
