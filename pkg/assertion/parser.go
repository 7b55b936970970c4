package assertion

import "strings"

// ParseCheck splits a compact check expression of the form
// "name:arg" into its parts. Without a colon the whole string is
// the name and arg is empty. Surrounding whitespace is trimmed
// from the name only.
//
// Examples:
//
//	"contains:func"  -> ("contains", "func")
//	"not_empty"      -> ("not_empty", "")
//	"matches:^a:b$"  -> ("matches", "^a:b$")
func ParseCheck(expr string) (name, arg string) {
	name, arg, _ = strings.Cut(expr, ":")
	return strings.TrimSpace(name), arg
}
