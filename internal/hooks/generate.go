package hooks

import (
	_ "embed"
	"strings"
)

//go:embed templates/prepare-commit-msg.sh
var sectionBody string

// Section returns the full git-pair section, markers included, with no
// surrounding blank lines.
//
// The body carries no co-author data. It resolves the branch and reads that
// branch's ledger each time git runs the hook, so one section serves every
// branch and nothing needs regenerating on checkout.
func Section() string {
	// Embedded templates may carry CRLF when built from an NTFS checkout;
	// sh chokes on the carriage returns.
	body := strings.ReplaceAll(sectionBody, "\r\n", "\n")
	body = strings.Trim(body, "\n")
	return BeginMarker + "\n" + body + "\n" + EndMarker
}
