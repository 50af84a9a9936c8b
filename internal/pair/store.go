package pair

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/git-pair/git-pair/internal/debug"
	"github.com/git-pair/git-pair/internal/git"
	"github.com/git-pair/git-pair/internal/hooks"
	"github.com/git-pair/git-pair/internal/storage"
)

// BranchResolver names the branch the ledger operations act on.
type BranchResolver interface {
	CurrentBranch(ctx context.Context) (string, error)
}

// AliasResolver maps a roster alias to a name and email.
type AliasResolver interface {
	Resolve(ctx context.Context, alias string) (name, email string, err error)
}

// HookManager adds or removes the git-pair section of the commit hook.
type HookManager interface {
	Install() error
	Remove() error
}

// Store runs ledger operations for one repository.
type Store struct {
	// Dir holds the ledger files, normally <git-dir>/git-pair.
	Dir      string
	Branches BranchResolver
	// Aliases is optional; without it AddAlias fails and Remove matches
	// identifiers literally.
	Aliases AliasResolver
	Hooks   HookManager
}

// Open wires a Store to the repository at root using git for the branch
// name and the shared hooks directory for the hook.
func Open(root string, aliases AliasResolver) (*Store, error) {
	dir, err := git.PairDir(root)
	if err != nil {
		return nil, err
	}
	hooksDir, err := git.HooksDir(root)
	if err != nil {
		return nil, err
	}
	return &Store{
		Dir:      dir,
		Branches: git.Repo{Root: root},
		Aliases:  aliases,
		Hooks:    hooks.NewInstaller(hooksDir),
	}, nil
}

// InitResult describes the outcome of Init.
type InitResult struct {
	Branch             string `json:"branch"`
	Path               string `json:"path"`
	AlreadyInitialized bool   `json:"already_initialized"`
}

func (r InitResult) Message() string {
	if r.AlreadyInitialized {
		return fmt.Sprintf("git-pair already initialized for branch '%s'", r.Branch)
	}
	return fmt.Sprintf("Successfully initialized git-pair for branch '%s'!\nConfiguration file created at: %s", r.Branch, r.Path)
}

// AddResult describes the outcome of Add and AddAlias.
type AddResult struct {
	Branch    string   `json:"branch"`
	CoAuthor  CoAuthor `json:"co_author"`
	Duplicate bool     `json:"duplicate"`
}

func (r AddResult) Message() string {
	if r.Duplicate {
		return fmt.Sprintf("Co-author '%s' <%s> already exists on branch '%s'", r.CoAuthor.Name, r.CoAuthor.Email, r.Branch)
	}
	return fmt.Sprintf("Added co-author: %s to branch '%s'", r.CoAuthor, r.Branch)
}

// RemoveResult describes the outcome of Remove.
type RemoveResult struct {
	Branch    string     `json:"branch"`
	Removed   []CoAuthor `json:"removed"`
	Remaining int        `json:"remaining"`
}

func (r RemoveResult) Message() string {
	names := make([]string, len(r.Removed))
	for i, ca := range r.Removed {
		names[i] = ca.String()
	}
	msg := fmt.Sprintf("Removed co-author: %s from branch '%s'", strings.Join(names, ", "), r.Branch)
	if r.Remaining == 0 {
		msg += " and uninstalled git hook"
	}
	return msg
}

// ClearResult describes the outcome of Clear.
type ClearResult struct {
	Branch  string `json:"branch"`
	Cleared int    `json:"cleared"`
}

func (r ClearResult) Message() string {
	return fmt.Sprintf("Cleared all co-authors for branch '%s' and uninstalled git hook", r.Branch)
}

func (s *Store) branch(ctx context.Context) (string, error) {
	return s.Branches.CurrentBranch(ctx)
}

// Init creates the current branch's ledger. An existing ledger is left alone.
func (s *Store) Init(ctx context.Context) (InitResult, error) {
	branch, err := s.branch(ctx)
	if err != nil {
		return InitResult{}, err
	}
	path, created, err := createLedger(s.Dir, branch)
	if err != nil {
		return InitResult{}, fmt.Errorf("init branch '%s': %w", branch, err)
	}
	debug.Event("init").Str("branch", branch).Bool("created", created).Msg(path)
	return InitResult{Branch: branch, Path: path, AlreadyInitialized: !created}, nil
}

// Add appends a co-author and installs the hook. Adding a record that is
// already present changes nothing and reports Duplicate. If the hook cannot
// be installed the ledger is put back as it was.
func (s *Store) Add(ctx context.Context, name, email string) (AddResult, error) {
	ca := CoAuthor{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}
	if err := ca.validate(); err != nil {
		return AddResult{}, err
	}
	branch, err := s.branch(ctx)
	if err != nil {
		return AddResult{}, err
	}
	l, err := loadLedger(s.Dir, branch)
	if err != nil {
		return AddResult{}, err
	}

	res := AddResult{Branch: branch, CoAuthor: ca}
	if l.contains(ca.Line()) {
		res.Duplicate = true
		debug.Event("add").Str("branch", branch).Msg("duplicate " + ca.String())
		return res, nil
	}

	prev := l.snapshot()
	l.append(ca.Line())
	if err := l.save(); err != nil {
		return AddResult{}, fmt.Errorf("add co-author: %w", err)
	}
	if err := s.Hooks.Install(); err != nil {
		return AddResult{}, l.restore(prev, fmt.Errorf("install hook: %w", err))
	}
	debug.Event("add").Str("branch", branch).Msg(ca.String())
	return res, nil
}

// AddAlias resolves alias through the roster and adds the result.
func (s *Store) AddAlias(ctx context.Context, alias string) (AddResult, error) {
	if s.Aliases == nil {
		return AddResult{}, fmt.Errorf("alias '%s': no roster configured: %w", alias, storage.ErrNotFound)
	}
	name, email, err := s.Aliases.Resolve(ctx, alias)
	if err != nil {
		return AddResult{}, err
	}
	return s.Add(ctx, name, email)
}

// Remove deletes every record whose line contains identifier, compared
// case-insensitively. When nothing matches and identifier is a roster
// alias, records with the alias's email or name are removed instead.
// The hook follows the remaining count: reinstalled when records remain,
// removed otherwise.
func (s *Store) Remove(ctx context.Context, identifier string) (RemoveResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return RemoveResult{}, ErrEmptyIdentifier
	}
	branch, err := s.branch(ctx)
	if err != nil {
		return RemoveResult{}, err
	}
	l, err := loadLedger(s.Dir, branch)
	if err != nil {
		return RemoveResult{}, err
	}

	prev := l.snapshot()
	needle := strings.ToLower(identifier)
	removed := l.removeWhere(func(line string) bool {
		return strings.Contains(strings.ToLower(line), needle)
	})
	if len(removed) == 0 {
		match, err := s.aliasMatcher(ctx, identifier)
		if err != nil {
			return RemoveResult{}, err
		}
		if match != nil {
			removed = l.removeWhere(match)
		}
	}
	if len(removed) == 0 {
		return RemoveResult{}, fmt.Errorf("co-author '%s' on branch '%s': %w", identifier, branch, storage.ErrNotFound)
	}

	if err := l.save(); err != nil {
		return RemoveResult{}, fmt.Errorf("remove co-author: %w", err)
	}
	remaining := len(l.records())
	if err := s.syncHook(remaining); err != nil {
		return RemoveResult{}, l.restore(prev, err)
	}

	res := RemoveResult{Branch: branch, Remaining: remaining}
	for _, line := range removed {
		ca, _ := ParseCoAuthor(line)
		res.Removed = append(res.Removed, ca)
	}
	debug.Event("remove").Str("branch", branch).Int("removed", len(removed)).Int("remaining", remaining).Msg(identifier)
	return res, nil
}

// aliasMatcher returns nil when identifier is not a known alias.
func (s *Store) aliasMatcher(ctx context.Context, identifier string) (func(string) bool, error) {
	if s.Aliases == nil {
		return nil, nil
	}
	name, email, err := s.Aliases.Resolve(ctx, identifier)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return func(line string) bool {
		ca, ok := ParseCoAuthor(line)
		if !ok {
			return false
		}
		return strings.EqualFold(ca.Email, email) || strings.EqualFold(ca.Name, name)
	}, nil
}

// Clear empties the ledger back to its header and removes the hook section.
func (s *Store) Clear(ctx context.Context) (ClearResult, error) {
	branch, err := s.branch(ctx)
	if err != nil {
		return ClearResult{}, err
	}
	l, err := loadLedger(s.Dir, branch)
	if err != nil {
		return ClearResult{}, err
	}
	cleared := len(l.records())
	prev := l.snapshot()
	l.reset()
	if err := l.save(); err != nil {
		return ClearResult{}, fmt.Errorf("clear co-authors: %w", err)
	}
	if err := s.Hooks.Remove(); err != nil {
		return ClearResult{}, l.restore(prev, fmt.Errorf("remove hook: %w", err))
	}
	debug.Event("clear").Str("branch", branch).Int("cleared", cleared).Send()
	return ClearResult{Branch: branch, Cleared: cleared}, nil
}

// List returns the current branch's co-authors in insertion order.
func (s *Store) List(ctx context.Context) (branch string, coAuthors []CoAuthor, err error) {
	branch, err = s.branch(ctx)
	if err != nil {
		return "", nil, err
	}
	l, err := loadLedger(s.Dir, branch)
	if err != nil {
		return branch, nil, err
	}
	coAuthors = []CoAuthor{}
	for _, line := range l.records() {
		ca, ok := ParseCoAuthor(line)
		if !ok {
			debug.Logf("skipping unparseable ledger line %q", line)
			continue
		}
		coAuthors = append(coAuthors, ca)
	}
	return branch, coAuthors, nil
}

// Sync installs or removes the hook section to match the current branch's
// ledger and returns the record count.
func (s *Store) Sync(ctx context.Context) (int, error) {
	branch, err := s.branch(ctx)
	if err != nil {
		return 0, err
	}
	l, err := loadLedger(s.Dir, branch)
	if err != nil {
		return 0, err
	}
	n := len(l.records())
	if err := s.syncHook(n); err != nil {
		return 0, err
	}
	debug.Event("sync").Str("branch", branch).Int("records", n).Send()
	return n, nil
}

func (s *Store) syncHook(records int) error {
	if records > 0 {
		if err := s.Hooks.Install(); err != nil {
			return fmt.Errorf("install hook: %w", err)
		}
		return nil
	}
	if err := s.Hooks.Remove(); err != nil {
		return fmt.Errorf("remove hook: %w", err)
	}
	return nil
}
