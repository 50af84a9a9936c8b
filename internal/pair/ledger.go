package pair

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/git-pair/git-pair/internal/git"
	"github.com/git-pair/git-pair/internal/storage"
)

// ledgerHeader returns the two comment lines every ledger starts with.
func ledgerHeader(branch string) string {
	return fmt.Sprintf("# git-pair configuration file for branch '%s'\n# Co-authors will be listed here\n", branch)
}

// ledger is the in-memory form of one branch's ledger file.
type ledger struct {
	path   string
	branch string
	lines  []string
}

func ledgerPath(dir, branch string) string {
	return filepath.Join(dir, "config-"+git.SanitizeBranch(branch))
}

// loadLedger reads the ledger or reports the branch as not initialized.
func loadLedger(dir, branch string) (*ledger, error) {
	path := ledgerPath(dir, branch)
	content, exists, err := storage.ReadFileOrEmpty(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &NotInitializedError{Branch: branch}
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	if content == "" {
		lines = nil
	}
	return &ledger{path: path, branch: branch, lines: lines}, nil
}

func isRecord(line string) bool {
	return strings.HasPrefix(line, recordPrefix)
}

// records returns the record lines in insertion order.
func (l *ledger) records() []string {
	var out []string
	for _, line := range l.lines {
		if isRecord(line) {
			out = append(out, line)
		}
	}
	return out
}

func (l *ledger) contains(record string) bool {
	for _, line := range l.records() {
		if line == record {
			return true
		}
	}
	return false
}

func (l *ledger) append(record string) {
	l.lines = append(l.lines, record)
}

// removeWhere drops every record for which match is true and returns them.
// Non-record lines are kept in place.
func (l *ledger) removeWhere(match func(string) bool) []string {
	var removed []string
	kept := l.lines[:0:0]
	for _, line := range l.lines {
		if isRecord(line) && match(line) {
			removed = append(removed, line)
			continue
		}
		kept = append(kept, line)
	}
	l.lines = kept
	return removed
}

func (l *ledger) reset() {
	l.lines = strings.Split(strings.TrimSuffix(ledgerHeader(l.branch), "\n"), "\n")
}

// snapshot copies the current lines for restore.
func (l *ledger) snapshot() []string {
	return append([]string(nil), l.lines...)
}

// restore writes prev back after a failed hook step and returns cause,
// joined with any error from the rewrite.
func (l *ledger) restore(prev []string, cause error) error {
	l.lines = prev
	if err := l.save(); err != nil {
		return errors.Join(cause, fmt.Errorf("restore ledger: %w", err))
	}
	return cause
}

func (l *ledger) save() error {
	content := strings.Join(l.lines, "\n")
	if content != "" {
		content += "\n"
	}
	return storage.WriteFileAtomic(l.path, []byte(content), 0o644)
}

func createLedger(dir, branch string) (path string, created bool, err error) {
	path = ledgerPath(dir, branch)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !os.IsNotExist(err) {
		return "", false, storage.WrapIOError("stat ledger", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, storage.WrapIOError("create git-pair directory", err)
	}
	if err := storage.WriteFileAtomic(path, []byte(ledgerHeader(branch)), 0o644); err != nil {
		return "", false, err
	}
	return path, true, nil
}
