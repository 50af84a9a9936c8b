package pair

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoAuthorLine(t *testing.T) {
	ca := CoAuthor{Name: "Jane Smith", Email: "jane@x.com"}
	assert.Equal(t, "Co-authored-by: Jane Smith <jane@x.com>", ca.Line())
	assert.Equal(t, "Jane Smith <jane@x.com>", ca.String())
}

func TestParseCoAuthor(t *testing.T) {
	tests := []struct {
		line string
		want CoAuthor
		ok   bool
	}{
		{"Co-authored-by: Jane Smith <jane@x.com>", CoAuthor{"Jane Smith", "jane@x.com"}, true},
		{"  Co-authored-by:   Bob <bob@example.com>  ", CoAuthor{"Bob", "bob@example.com"}, true},
		{"Co-authored-by: No Email", CoAuthor{}, false},
		{"# comment", CoAuthor{}, false},
		{"", CoAuthor{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseCoAuthor(tt.line)
		assert.Equal(t, tt.ok, ok, "line %q", tt.line)
		assert.Equal(t, tt.want, got, "line %q", tt.line)
	}
}

func TestCoAuthorValidate(t *testing.T) {
	bad := []CoAuthor{
		{Name: "", Email: "a@b.c"},
		{Name: "A", Email: ""},
		{Name: "A\nB", Email: "a@b.c"},
		{Name: "A", Email: "<a@b.c>"},
	}
	for _, ca := range bad {
		err := ca.validate()
		assert.True(t, errors.Is(err, ErrInvalidCoAuthor), "%+v: %v", ca, err)
	}
	assert.NoError(t, CoAuthor{Name: "A", Email: "a@b.c"}.validate())
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Jane Smith", FullName("Jane", "Smith"))
	assert.Equal(t, "Cher", FullName("Cher", ""))
	assert.Equal(t, "Jane Smith", FullName(" Jane ", " Smith "))
}
