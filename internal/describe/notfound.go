package describe

import "strings"

// Messages signalling a missing table or view. Runtime versions up to
// DBR 12 spell the condition out; later versions report the error class.
const (
	tableNotFoundLegacy  = "Table or view not found"
	tableNotFoundCurrent = "TABLE_OR_VIEW_NOT_FOUND"
)

// IsTableNotFound reports whether message indicates that a referenced
// table or view does not exist. Checking both spellings covers every
// runtime version without needing a version flag.
func IsTableNotFound(message string) bool {
	return strings.Contains(message, tableNotFoundLegacy) ||
		strings.Contains(message, tableNotFoundCurrent)
}
