// Package jsonvalue inspects decoded JSON-like Go values: numbers from
// encoding/json (float64 or json.Number), yaml.v3 (int, float64) and native
// Go code, plus the generic map and slice containers.
package jsonvalue

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

// Float returns v as a float64. Booleans are never numbers. A json.Number
// beyond the float64 range yields ±Inf, or zero when it underflows.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		return f, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case int16:
		return float64(n), true
	case int8:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint8:
		return float64(n), true
	case float32:
		return float64(n), true
	}
	return 0, false
}

// Int64 returns v as an int64 when v is a number with no fractional part
// that fits in an int64.
func Int64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint8:
		return int64(n), true
	case json.Number:
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return i, true
		}
	}
	f, ok := Float(v)
	if !ok || !isIntegral(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// IsNumber reports whether v is a JSON number.
func IsNumber(v any) bool {
	_, ok := Float(v)
	return ok
}

// IsInteger reports whether v is a number without a fractional part.
// 1.0 is an integer; 1.5 is not.
func IsInteger(v any) bool {
	if _, ok := Int64(v); ok {
		return true
	}
	f, ok := Float(v)
	return ok && isIntegral(f)
}

func isIntegral(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}

// CompareNumbers returns -1, 0 or +1. Integers are compared exactly; any
// other pair is compared as float64.
func CompareNumbers(a, b any) int {
	if ai, ok := Int64(a); ok {
		if bi, ok := Int64(b); ok {
			switch {
			case ai < bi:
				return -1
			case ai > bi:
				return 1
			}
			return 0
		}
	}
	af, _ := Float(a)
	bf, _ := Float(b)
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	}
	return 0
}

// FormatNumber renders a number in its shortest canonical form, so 1 and
// 1.0 render identically.
func FormatNumber(v any) string {
	if i, ok := Int64(v); ok {
		return strconv.FormatInt(i, 10)
	}
	if n, ok := v.(json.Number); ok {
		if _, err := n.Float64(); err != nil {
			return string(n)
		}
	}
	f, _ := Float(v)
	return strconv.FormatFloat(f, 'g', -1, 64)
}
