package describe

import (
	"regexp"
	"strings"

	"github.com/lakereflect/lakereflect/internal/errs"
)

var (
	// identifierPattern matches one backtick-quoted identifier. The
	// character class is the set of characters the warehouse permits in
	// unquoted identifiers.
	identifierPattern = regexp.MustCompile("`([A-Za-z0-9_]+)`")

	// groupPattern matches a parenthesized, comma-separated identifier
	// list such as "(`name`, `id`, `attr`)", parentheses included.
	groupPattern = regexp.MustCompile("\\([`A-Za-z0-9_,\\s]*\\)")

	// referencesPattern captures the referenced table name between the
	// REFERENCES keyword and the opening paren of the referred column list.
	referencesPattern = regexp.MustCompile(`REFERENCES\s+(.*?)\s*\(`)
)

// ExtractIdentifiers returns every backtick-quoted identifier in s, in
// order of first appearance, duplicates preserved. For a string resembling
// "(`a`, `b`, `c`)" it returns ["a", "b", "c"]. A string without
// identifiers yields an empty slice; this function never fails.
func ExtractIdentifiers(s string) []string {
	matches := identifierPattern.FindAllStringSubmatch(s, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	return ids
}

// ExtractIdentifierGroups returns the parenthesized identifier lists in s
// as raw substrings, in left-to-right order. For
//
//	FOREIGN KEY (`pname`, `pid`) REFERENCES `main`.`sales`.`tb1` (`name`, `id`)
//
// it returns ["(`pname`, `pid`)", "(`name`, `id`)"]. Callers rely on the
// ordering: the first group is the constrained column list, the second the
// referred column list.
func ExtractIdentifierGroups(s string) []string {
	groups := groupPattern.FindAllString(s, -1)
	if groups == nil {
		return []string{}
	}
	return groups
}

// QualifiedName is a three-level table reference as it appears after the
// REFERENCES keyword: catalog.schema.table, backticks stripped.
type QualifiedName struct {
	Catalog string
	Schema  string
	Table   string
}

// ExtractQualifiedName returns the three-level name following the first
// REFERENCES keyword in s. A string without a REFERENCES clause returns
// (nil, nil) — it is simply not a foreign key constraint. A REFERENCES
// clause whose name does not have exactly three dot-separated parts is a
// malformed constraint and returns an ErrKindInvalidInput error.
func ExtractQualifiedName(s string) (*QualifiedName, error) {
	m := referencesPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, nil
	}

	parts := strings.Split(m[1], ".")
	if len(parts) != 3 {
		return nil, errs.Newf(errs.ErrKindInvalidInput,
			"malformed table reference %q: want catalog.schema.table", m[1])
	}

	return &QualifiedName{
		Catalog: stripBackticks(parts[0]),
		Schema:  stripBackticks(parts[1]),
		Table:   stripBackticks(parts[2]),
	}, nil
}

func stripBackticks(s string) string {
	return strings.ReplaceAll(s, "`", "")
}
