package pair

import (
	"errors"
	"fmt"
	"strings"
)

const recordPrefix = "Co-authored-by:"

// ErrInvalidCoAuthor indicates an empty or multi-line name or email.
var ErrInvalidCoAuthor = errors.New("invalid co-author")

// CoAuthor is one ledger record.
type CoAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Line returns the serialized trailer, which is also the record's identity.
func (c CoAuthor) Line() string {
	return fmt.Sprintf("%s %s <%s>", recordPrefix, c.Name, c.Email)
}

func (c CoAuthor) String() string {
	return fmt.Sprintf("%s <%s>", c.Name, c.Email)
}

func (c CoAuthor) validate() error {
	if c.Name == "" || c.Email == "" {
		return fmt.Errorf("%w: name and email are required", ErrInvalidCoAuthor)
	}
	if strings.ContainsAny(c.Name+c.Email, "\n\r") {
		return fmt.Errorf("%w: line breaks are not allowed", ErrInvalidCoAuthor)
	}
	if strings.ContainsAny(c.Email, "<>") {
		return fmt.Errorf("%w: email %q must not contain angle brackets", ErrInvalidCoAuthor, c.Email)
	}
	return nil
}

// ParseCoAuthor parses a "Co-authored-by: Name <email>" line.
func ParseCoAuthor(line string) (CoAuthor, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), recordPrefix)
	if !ok {
		return CoAuthor{}, false
	}
	rest = strings.TrimSpace(rest)
	open := strings.LastIndex(rest, "<")
	if open < 0 || !strings.HasSuffix(rest, ">") {
		return CoAuthor{}, false
	}
	return CoAuthor{
		Name:  strings.TrimSpace(rest[:open]),
		Email: rest[open+1 : len(rest)-1],
	}, true
}

// FullName joins a first name and surname the way the add command receives
// them; an empty surname yields the first name alone.
func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
