package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"
)

const DefaultMaxLen = 80

// Sanitize turns an arbitrary request value into a trimmed string of at most max runes.
// Absent or falsy values (nil, false, zero numbers, "") yield "".
func Sanitize(v interface{}, max int) string {
	if max <= 0 {
		max = DefaultMaxLen
	}
	if isFalsy(v) {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > max {
		s = string([]rune(s)[:max])
	}
	return s
}

func isFalsy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		f, err := cast.ToFloat64E(t)
		return err != nil || f == 0 || f != f
	}
	return false
}
