// Package roster manages the global alias list shared by every repository.
//
// The roster is a flat text file of alias|name|email lines. Lines starting
// with '#' and blank lines are ignored, as are lines that do not split into
// exactly three fields.
package roster

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/git-pair/git-pair/internal/storage"
)

const header = "# Global git-pair roster\n# Format: alias|name|email\n"

// Entry is one roster line.
type Entry struct {
	Alias string `json:"alias"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (e Entry) line() string {
	return e.Alias + "|" + e.Name + "|" + e.Email
}

// ErrInvalidEntry indicates a field is empty or contains a separator.
var ErrInvalidEntry = errors.New("invalid roster entry")

// File is a roster stored at Path.
type File struct {
	Path string
}

// Open returns the roster at path. The file need not exist.
func Open(path string) *File {
	return &File{Path: path}
}

// Load returns all entries in file order. A missing file is an empty roster.
func (f *File) Load() ([]Entry, error) {
	content, _, err := storage.ReadFileOrEmpty(f.Path)
	if err != nil {
		return nil, err
	}
	return parse(content), nil
}

func parse(content string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) != 3 {
			continue
		}
		entries = append(entries, Entry{
			Alias: strings.TrimSpace(parts[0]),
			Name:  strings.TrimSpace(parts[1]),
			Email: strings.TrimSpace(parts[2]),
		})
	}
	return entries
}

// Add appends an entry. Aliases are unique; a duplicate fails with
// storage.ErrAlreadyExists and leaves the file unchanged.
func (f *File) Add(alias, name, email string) (Entry, error) {
	entry := Entry{
		Alias: strings.TrimSpace(alias),
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}
	if err := validate(entry); err != nil {
		return Entry{}, err
	}

	content, exists, err := storage.ReadFileOrEmpty(f.Path)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range parse(content) {
		if e.Alias == entry.Alias {
			return Entry{}, fmt.Errorf("alias '%s' in global roster: %w", entry.Alias, storage.ErrAlreadyExists)
		}
	}

	if !exists {
		content = header
	} else if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry.line() + "\n"

	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return Entry{}, storage.WrapIOError("create roster directory", err)
	}
	if err := storage.WriteFileAtomic(f.Path, []byte(content), 0o644); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Remove deletes the entry for alias, keeping comments and other lines.
func (f *File) Remove(alias string) (Entry, error) {
	content, exists, err := storage.ReadFileOrEmpty(f.Path)
	if err != nil {
		return Entry{}, err
	}
	if !exists {
		return Entry{}, fmt.Errorf("alias '%s' in global roster: %w", alias, storage.ErrNotFound)
	}

	var (
		kept    []string
		removed *Entry
	)
	for _, line := range strings.SplitAfter(content, "\n") {
		if removed == nil {
			if es := parse(line); len(es) == 1 && es[0].Alias == alias {
				removed = &es[0]
				continue
			}
		}
		kept = append(kept, line)
	}
	if removed == nil {
		return Entry{}, fmt.Errorf("alias '%s' in global roster: %w", alias, storage.ErrNotFound)
	}
	if err := storage.WriteFileAtomic(f.Path, []byte(strings.Join(kept, "")), 0o644); err != nil {
		return Entry{}, err
	}
	return *removed, nil
}

// Lookup returns the entry for alias.
func (f *File) Lookup(alias string) (Entry, error) {
	entries, err := f.Load()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.Alias == alias {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("alias '%s' in global roster: %w", alias, storage.ErrNotFound)
}

// Resolve implements pair.AliasResolver.
func (f *File) Resolve(_ context.Context, alias string) (name, email string, err error) {
	e, err := f.Lookup(alias)
	if err != nil {
		return "", "", err
	}
	return e.Name, e.Email, nil
}

func validate(e Entry) error {
	fields := []struct{ name, value string }{
		{"alias", e.Alias},
		{"name", e.Name},
		{"email", e.Email},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidEntry, f.name)
		}
		if strings.ContainsAny(f.value, "|\n\r") {
			return fmt.Errorf("%w: %s %q contains '|' or a line break", ErrInvalidEntry, f.name, f.value)
		}
	}
	if strings.HasPrefix(e.Alias, "#") {
		return fmt.Errorf("%w: alias %q starts with '#'", ErrInvalidEntry, e.Alias)
	}
	return nil
}
