// Package utils collects small numeric and filesystem helpers shared by
// the value model, the engine and the CLI driver.
package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"os"
	"strconv"
	"strings"
)

func Sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func Exist(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// ParseInteger parses s as a base-10 integer, Lua-style: surrounding
// whitespace is trimmed, a leading sign is allowed, floats are rejected.
func ParseInteger(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseFloat parses s as a float, Lua-style: surrounding whitespace is
// trimmed. Integer-looking strings parse fine too (ParseFloat("3") == 3.0).
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FloatToInteger narrows f to int32 when it is integer-valued and in
// range, matching the spec's Int tag (32-bit signed).
func FloatToInteger(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	i := int64(int32(f))
	if float64(i) != f {
		return 0, false
	}
	return i, true
}

// FormatNumber renders a float the way print/concat stringify numbers:
// Lua's "%.14g" behavior (14 significant digits via strconv), always
// showing a decimal point or exponent so floats are visually distinct
// from ints.
func FormatNumber(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	}
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', 14, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
