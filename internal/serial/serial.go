// Package serial derives the numeric sort key of a stock item from its
// free-text serial number.
//
// The key is the value of the leading run of ASCII digits:
//
//	"100"        -> 100
//	"045-B"      -> 45
//	"SN-2024-01" -> 0
package serial

import (
	"regexp"
	"strconv"
)

// Default is the key used when a serial has no usable leading digits.
const Default int64 = 0

// MaxExact is the largest key that survives a round trip through a
// PocketBase number field, which stores float64.
const MaxExact int64 = 1<<53 - 1

var leadingDigits = regexp.MustCompile(`^[0-9]+`)

// Parse extracts the leading digit run of text and parses it as int64.
//
// ok is false when text does not start with a digit or the run is larger
// than MaxExact. Unicode digits other than 0-9 do not count.
func Parse(text string) (n int64, ok bool) {
	run := leadingDigits.FindString(text)
	if run == "" {
		return Default, false
	}
	n, err := strconv.ParseInt(run, 10, 64)
	if err != nil || n > MaxExact {
		return Default, false
	}
	return n, true
}

// Int returns the numeric key for text, or Default when Parse fails.
func Int(text string) int64 {
	n, ok := Parse(text)
	if !ok {
		return Default
	}
	return n
}
