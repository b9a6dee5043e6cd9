package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "short words dropped", text: "Deep-Learning for RNA, v2!", want: []string{"deep-learning"}},
		{name: "lowercased", text: "QUANTUM Entanglement", want: []string{"quantum", "entanglement"}},
		{name: "punctuation becomes space", text: "spin/orbit:coupling", want: []string{"spin", "orbit", "coupling"}},
		{name: "hyphen and underscore kept", text: "state_of-the-art model", want: []string{"state_of-the-art", "model"}},
		{name: "digits kept", text: "gpt4all 12345", want: []string{"gpt4all", "12345"}},
		{name: "empty", text: "", want: []string{}},
		{name: "only short tokens", text: "a bb ccc", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.text)
			assert.Equal(t, tt.want, got)
			for _, token := range got {
				assert.GreaterOrEqual(t, len(token), 4)
				assert.Regexp(t, `^[a-z0-9_-]+$`, token)
			}
		})
	}
}

func TestCanonicalAuthor(t *testing.T) {
	tests := []struct {
		name string
		full string
		want string
	}{
		{name: "middle initial dropped", full: "Jane Q. Public", want: "j public"},
		{name: "two-part name", full: "Bob Jones", want: "b jones"},
		{name: "single name", full: "Cher", want: "c cher"},
		{name: "non-ascii acts as separator", full: "José García", want: "j a"},
		{name: "empty", full: "", want: ""},
		{name: "punctuation only", full: "...", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalAuthor(tt.full))
		})
	}
}

func TestCanonicalAuthor_Collisions(t *testing.T) {
	// surname+initial is deliberately coarse, distinct people collapse
	assert.Equal(t, CanonicalAuthor("Jane Smith"), CanonicalAuthor("John Smith"))
	assert.Equal(t, CanonicalAuthor("Jane Q. Smith"), CanonicalAuthor("J. Smith"))
}
