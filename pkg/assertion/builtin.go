package assertion

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"digital.vasic.seqtest/pkg/snapshot"
)

// checkNotEmpty checks that a value is non-nil and, for strings
// and collections, non-empty.
func checkNotEmpty(value any, _ string) (bool, string) {
	if value == nil {
		return false, "value is nil"
	}

	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return false, "string is empty"
		}
		return true, "value is not empty"
	}

	if n, ok := lengthOf(value); ok && n == 0 {
		return false, "collection is empty"
	}

	return true, "value is not empty"
}

// checkContains checks that a string contains arg
// (case-insensitive), or that a collection has an element whose
// display string equals arg.
func checkContains(value any, arg string) (bool, string) {
	if s, ok := value.(string); ok {
		if strings.Contains(
			strings.ToLower(s),
			strings.ToLower(arg),
		) {
			return true, fmt.Sprintf("contains '%s'", arg)
		}
		return false, fmt.Sprintf("does not contain '%s'", arg)
	}

	items, ok := elementsOf(value)
	if !ok {
		return false, "value is neither a string nor a collection"
	}
	for _, item := range items {
		if snapshot.Display(item) == arg {
			return true, fmt.Sprintf("contains '%s'", arg)
		}
	}
	return false, fmt.Sprintf("does not contain '%s'", arg)
}

// checkContainsAny checks that a string contains at least one of
// the comma-separated substrings in arg.
func checkContainsAny(value any, arg string) (bool, string) {
	s, ok := value.(string)
	if !ok {
		return false, "value is not a string"
	}

	lower := strings.ToLower(s)
	values := strings.Split(arg, ",")
	for _, expected := range values {
		trimmed := strings.TrimSpace(expected)
		if trimmed != "" && strings.Contains(
			lower, strings.ToLower(trimmed),
		) {
			return true, fmt.Sprintf("contains '%s'", trimmed)
		}
	}

	return false, fmt.Sprintf("does not contain any of: %v", values)
}

// checkMatches checks a value's display string against the
// regular expression in arg.
func checkMatches(value any, arg string) (bool, string) {
	re, err := regexp.Compile(arg)
	if err != nil {
		return false, fmt.Sprintf("invalid pattern: %v", err)
	}

	s := snapshot.Display(value)
	if re.MatchString(s) {
		return true, fmt.Sprintf("'%s' matches %s", s, arg)
	}
	return false, fmt.Sprintf("'%s' does not match %s", s, arg)
}

// checkMinLength checks that a string has at least arg
// characters.
func checkMinLength(value any, arg string) (bool, string) {
	s, ok := value.(string)
	if !ok {
		return false, "value is not a string"
	}

	minLength, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return false, "expected value is not a number"
	}

	actual := len([]rune(s))
	if actual >= minLength {
		return true, fmt.Sprintf("length %d >= %d", actual, minLength)
	}
	return false, fmt.Sprintf("length %d < %d", actual, minLength)
}

// checkMinCount checks that a count, or a collection's length,
// is at least arg.
func checkMinCount(value any, arg string) (bool, string) {
	count, ok := toCount(value)
	if !ok {
		return false, "value is not countable"
	}

	minCount, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return false, "expected value is not a number"
	}

	if count >= minCount {
		return true, fmt.Sprintf("count %d >= %d", count, minCount)
	}
	return false, fmt.Sprintf("count %d < %d", count, minCount)
}

// checkExactCount checks that a count, or a collection's length,
// equals arg.
func checkExactCount(value any, arg string) (bool, string) {
	count, ok := toCount(value)
	if !ok {
		return false, "value is not countable"
	}

	expected, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return false, "expected value is not a number"
	}

	if count == expected {
		return true, fmt.Sprintf("count %d == %d", count, expected)
	}
	return false, fmt.Sprintf("count %d != %d", count, expected)
}

// checkMin checks that a number is at least arg.
func checkMin(value any, arg string) (bool, string) {
	n, ok := toFloat64(value)
	if !ok {
		return false, "value is not a number"
	}

	minimum, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return false, "expected value is not a number"
	}

	if n >= minimum {
		return true, fmt.Sprintf("%g >= %g", n, minimum)
	}
	return false, fmt.Sprintf("%g < %g", n, minimum)
}

// checkMaxDuration checks that a time.Duration does not exceed
// the duration in arg, e.g. "max_duration:250ms".
func checkMaxDuration(value any, arg string) (bool, string) {
	d, ok := value.(time.Duration)
	if !ok {
		return false, "value is not a duration"
	}

	limit, err := time.ParseDuration(strings.TrimSpace(arg))
	if err != nil {
		return false, "expected value is not a duration"
	}

	if d <= limit {
		return true, fmt.Sprintf("duration %s <= %s", d, limit)
	}
	return false, fmt.Sprintf("duration %s > %s", d, limit)
}

// checkAllValid checks that every element of a collection is
// non-nil and not an empty string.
func checkAllValid(value any, _ string) (bool, string) {
	items, ok := elementsOf(value)
	if !ok {
		return false, "value is not a collection"
	}

	for i, item := range items {
		if item == nil {
			return false, fmt.Sprintf("item %d is nil", i)
		}
		if s, ok := item.(string); ok && s == "" {
			return false, fmt.Sprintf("item %d is empty", i)
		}
	}
	return true, "all items are valid"
}

// checkNoDuplicates checks that a collection holds no two
// elements with the same display string.
func checkNoDuplicates(value any, _ string) (bool, string) {
	items, ok := elementsOf(value)
	if !ok {
		return false, "value is not a collection"
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		key := snapshot.Display(item)
		if seen[key] {
			return false, fmt.Sprintf("duplicate found: %s", key)
		}
		seen[key] = true
	}
	return true, "no duplicates found"
}

// --- helpers ---

// lengthOf returns the length of a string, slice, array, map or
// channel.
func lengthOf(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array,
		reflect.Map, reflect.Chan:
		return rv.Len(), true
	default:
		return 0, false
	}
}

// elementsOf returns the elements of a slice or array.
func elementsOf(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	items := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		items = append(items, rv.Index(i).Interface())
	}
	return items, true
}

// toCount extracts a count from an integer or the length of a
// collection.
func toCount(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), true
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	default:
		return 0, false
	}
}

// toFloat64 converts a numeric value to float64.
func toFloat64(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
