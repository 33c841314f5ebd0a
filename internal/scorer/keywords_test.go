package scorer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "Courier Services", []string{"courier", "services"}},
		{"punctuation dropped", "transport, delivery; shuttle!", []string{"transport", "delivery", "shuttle"}},
		{"hyphenated compound", "non-emergency transport", []string{"non", "emergency", "transport"}},
		{"digits kept", "route 128 shuttle", []string{"route", "128", "shuttle"}},
		{"empty", "", nil},
		{"whitespace only", "   \t\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatcherWordBoundaries(t *testing.T) {
	m := NewMatcher([]string{"cab"})

	if m.AnyMatch(Tokenize("kitchen cabinet installation")) {
		t.Error("'cab' must not match inside 'cabinet'")
	}

	if !m.AnyMatch(Tokenize("taxi and cab services")) {
		t.Error("'cab' should match as a standalone word")
	}
}

func TestMatcherMultiWordPhrase(t *testing.T) {
	m := NewMatcher([]string{"school bus"})

	if !m.AnyMatch(Tokenize("district school bus routes")) {
		t.Error("'school bus' should match the consecutive phrase")
	}

	if m.AnyMatch(Tokenize("school lunch and bus passes")) {
		t.Error("'school bus' must not match non-consecutive words")
	}
}

func TestMatcherCaseInsensitive(t *testing.T) {
	m := NewMatcher([]string{"NEMT"})

	if !m.AnyMatch(Tokenize("statewide nemt contract")) {
		t.Error("Matching should be case-insensitive")
	}
}

func TestMatcherReturnsListOrder(t *testing.T) {
	m := NewMatcher([]string{"shuttle", "courier", "paratransit"})

	got := m.Match(Tokenize("paratransit and courier and shuttle work"))
	want := []string{"shuttle", "courier", "paratransit"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Match returned %v, want keyword list order %v", got, want)
	}
}

func TestNewMatcherDropsDuplicatesAndEmpties(t *testing.T) {
	m := NewMatcher([]string{"courier", "Courier", "", "  ", "courier"})

	if m.Len() != 1 {
		t.Errorf("Expected 1 usable keyword, got %d", m.Len())
	}
}

func TestMatcherNoMatch(t *testing.T) {
	m := NewMatcher([]string{"paratransit"})

	if got := m.Match(Tokenize("office furniture procurement")); got != nil {
		t.Errorf("Expected no matches, got %v", got)
	}
}

func TestContainsSequence(t *testing.T) {
	tokens := []string{"city", "shuttle", "bus", "service"}

	tests := []struct {
		seq  []string
		want bool
	}{
		{[]string{"shuttle"}, true},
		{[]string{"shuttle", "bus"}, true},
		{[]string{"bus", "shuttle"}, false},
		{[]string{"city", "shuttle", "bus", "service"}, true},
		{[]string{"city", "shuttle", "bus", "service", "extra"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := containsSequence(tokens, tt.seq); got != tt.want {
			t.Errorf("containsSequence(%v, %v) = %v, want %v", tokens, tt.seq, got, tt.want)
		}
	}
}
