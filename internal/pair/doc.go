// Package pair manages per-branch co-author ledgers and keeps the
// prepare-commit-msg hook in step with them.
//
// A branch is initialized once its ledger file exists under
// <git-dir>/git-pair. Adding the first co-author installs the hook section;
// removing or clearing the last one takes it out again. Nothing here locks:
// concurrent invocations on the same repository are last-writer-wins.
package pair
