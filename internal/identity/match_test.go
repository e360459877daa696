package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchNames(t *testing.T) {
	cases := []struct {
		name     string
		claimed  string
		recorded string
		want     bool
	}{
		{name: "exact match", claimed: "John Doe", recorded: "John Doe", want: true},
		{name: "case insensitive", claimed: "John Doe", recorded: "JOHN DOE", want: true},
		{name: "surrounding whitespace", claimed: "  John Doe  ", recorded: "John Doe", want: true},
		{name: "middle name containment", claimed: "John Middle Doe", recorded: "John Doe", want: true},
		{name: "containment reversed", claimed: "John Doe", recorded: "John Middle Doe", want: true},
		{name: "punctuation stripped", claimed: "John O'Doe", recorded: "John ODoe", want: true},
		{name: "minor typo above threshold", claimed: "Johnn Doe", recorded: "John Doe", want: true},
		{name: "transposition below threshold", claimed: "Jonh Doe", recorded: "John Doe", want: false},
		{name: "different person", claimed: "John Doe", recorded: "Jane Smith", want: false},
		{name: "empty claimed", claimed: "", recorded: "John Doe", want: false},
		{name: "empty recorded", claimed: "John Doe", recorded: "", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchNames(tc.claimed, tc.recorded))
		})
	}
}

// Containment must hold in either direction: a record with a middle name
// matches a claim without one, and vice versa.
func TestMatchNamesContainment(t *testing.T) {
	assert.True(t, MatchNames("Adaeze Okafor", "Adaeze Chioma Okafor"))
	assert.True(t, MatchNames("Adaeze Chioma Okafor", "Adaeze Okafor"))
	assert.False(t, MatchNames("Adaeze Okafor", "Chioma Okafor"))
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  John   Doe ", "john doe"},
		{"JOHN DOE", "john doe"},
		{"John-Doe Jr. 3rd", "johndoe jr rd"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeName(tc.in), "input %q", tc.in)
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"john doe", "jane smith", 8},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, levenshtein(tc.a, tc.b), "d(%q,%q)", tc.a, tc.b)
	}
}

func TestLevenshteinMetricProperties(t *testing.T) {
	fixtures := []string{"", "a", "ab", "john", "jonh", "jane", "doe"}

	t.Run("identity", func(t *testing.T) {
		for _, s := range fixtures {
			assert.Zero(t, levenshtein(s, s), "d(%q,%q)", s, s)
		}
	})

	t.Run("symmetry", func(t *testing.T) {
		for _, a := range fixtures {
			for _, b := range fixtures {
				assert.Equal(t, levenshtein(a, b), levenshtein(b, a), "d(%q,%q)", a, b)
			}
		}
	})

	t.Run("triangle inequality", func(t *testing.T) {
		for _, a := range fixtures {
			for _, b := range fixtures {
				for _, c := range fixtures {
					assert.LessOrEqual(t,
						levenshtein(a, c),
						levenshtein(a, b)+levenshtein(b, c),
						"d(%q,%q) > d(%q,%q)+d(%q,%q)", a, c, a, b, b, c)
				}
			}
		}
	})
}
