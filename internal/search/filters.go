package search

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Filter is one validated search constraint. The concrete variants are
// fixed: features intersection, enumerated set membership, distance
// range, elevation bound, and direct equality. Raw filter maps are
// converted up front by ParseFilters; composition never sees raw input.
type Filter interface {
	predicate(b *Binder) string
}

// featuresFilter requires a trail to carry every listed feature
type featuresFilter struct {
	names []string
}

// enumFilter matches a column against a set of allowed values
type enumFilter struct {
	column string
	values []string
}

// distanceFilter is a closed or half-open range on a distance column.
// Bounds are inclusive; lo and hi are both optional but never both nil.
type distanceFilter struct {
	column string
	lo, hi *float64
}

// elevationFilter is a single strict threshold on an elevation column
type elevationFilter struct {
	column string
	op     string // ">" or "<"
	value  float64
}

// equalityFilter compares a column directly: numerically for numeric
// fields, case-insensitively for string fields
type equalityFilter struct {
	column  string
	numeric bool
	number  float64
	text    string
}

// range-key bases, longest first so ElevationGain is not read as Elevation
var rangeBases = []string{"ElevationGain", "ElevationLoss", "Elevation", "Distance"}

// ParseFilters validates a caller-supplied filter map and converts it
// into an immutable list of typed filters. Keys are processed in sorted
// order so the same map always yields the same filter list and the same
// parameter order. Min/max distance pairing (including swap of inverted
// ranges) is resolved here, and unknown keys are silently ignored.
func ParseFilters(raw map[string]interface{}, unit Unit) ([]Filter, error) {
	if unit == "" {
		unit = UnitImperial
	}
	if unit != UnitImperial && unit != UnitMetric {
		return nil, fmt.Errorf("%w: unit %q", ErrInvalidFilterKey, unit)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	consumed := make(map[string]bool)
	var filters []Filter

	for _, key := range keys {
		if consumed[key] {
			continue
		}
		value := raw[key]

		switch {
		case key == "features":
			f, err := parseFeatures(value)
			if err != nil {
				return nil, err
			}
			if f != nil {
				filters = append(filters, f)
			}

		case enumColumns[key] != "":
			f, err := parseEnum(key, value)
			if err != nil {
				return nil, err
			}
			if f != nil {
				filters = append(filters, f)
			}

		case isRangeKey(key):
			f, err := parseRange(key, raw, unit, consumed)
			if err != nil {
				return nil, err
			}
			if f != nil {
				filters = append(filters, f)
			}

		default:
			col, ok := directColumns[key]
			if !ok {
				// permissive policy: unrecognized keys emit no predicate
				continue
			}
			f, err := parseEquality(key, col, value)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		}
	}

	return filters, nil
}

func parseFeatures(value interface{}) (Filter, error) {
	names, ok := toStringSlice(value)
	if !ok {
		return nil, fmt.Errorf("%w: features must be an array of strings", ErrInvalidFilterValue)
	}
	if len(names) == 0 {
		return nil, nil
	}
	return featuresFilter{names: names}, nil
}

func parseEnum(key string, value interface{}) (Filter, error) {
	var values []string
	switch v := value.(type) {
	case string:
		values = []string{v}
	default:
		var ok bool
		values, ok = toStringSlice(value)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a string or an array of strings", ErrInvalidFilterValue, key)
		}
	}
	if len(values) == 0 {
		return nil, nil
	}
	return enumFilter{column: enumColumns[key], values: values}, nil
}

// parseRange handles the six distance/elevation min/max key families.
// Distance keys are paired with their opposite bound when both are
// present, swapping inverted ranges so min <= max always holds before
// the predicate is built. Elevation keys are always single-sided.
func parseRange(key string, raw map[string]interface{}, unit Unit, consumed map[string]bool) (Filter, error) {
	isMin, base, suffix := splitRangeKey(key)
	consumed[key] = true

	prefix := "max"
	if isMin {
		prefix = "min"
	}
	qualified := prefix + base + suffix
	if suffix == "" {
		qualified = prefix + base + string(unit)
	}
	column, ok := rangeColumns[qualified]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFilterKey, qualified)
	}

	if raw[key] == nil {
		return nil, nil
	}
	value, ok := toNumber(raw[key])
	if !ok {
		return nil, fmt.Errorf("%w: %s must be numeric", ErrInvalidFilterValue, key)
	}
	if value == 0 {
		return nil, nil
	}

	if base != "Distance" {
		op := "<"
		if isMin {
			op = ">"
		}
		return elevationFilter{column: column, op: op, value: value}, nil
	}

	// distance: look for the opposite bound in the same key form
	opposite := "min" + base + suffix
	if isMin {
		opposite = "max" + base + suffix
	}
	if other, ok := toNumber(raw[opposite]); ok && other != 0 {
		consumed[opposite] = true
		lo, hi := value, other
		if !isMin {
			lo, hi = other, value
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return distanceFilter{column: column, lo: &lo, hi: &hi}, nil
	}
	if isMin {
		return distanceFilter{column: column, lo: &value}, nil
	}
	return distanceFilter{column: column, hi: &value}, nil
}

func parseEquality(key string, col directColumn, value interface{}) (Filter, error) {
	if col.Numeric {
		n, ok := toNumber(value)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be numeric", ErrInvalidFilterValue, key)
		}
		return equalityFilter{column: col.Expr, numeric: true, number: n}, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a string", ErrInvalidFilterValue, key)
	}
	return equalityFilter{column: col.Expr, text: strings.ToLower(s)}, nil
}

// isRangeKey reports whether key belongs to the min/max range families
func isRangeKey(key string) bool {
	_, base, _ := splitRangeKey(key)
	return base != ""
}

// splitRangeKey splits a range key into bound direction, field base and
// unit suffix. base is "" when the key is not a range key at all; the
// suffix may be "" (bare key, qualified by the active unit) or any
// trailing text, validated later against the column table.
func splitRangeKey(key string) (isMin bool, base, suffix string) {
	var rest string
	switch {
	case strings.HasPrefix(key, "min"):
		isMin, rest = true, key[3:]
	case strings.HasPrefix(key, "max"):
		rest = key[3:]
	default:
		return false, "", ""
	}
	for _, b := range rangeBases {
		if strings.HasPrefix(rest, b) {
			return isMin, b, rest[len(b):]
		}
	}
	return false, "", ""
}

func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toStringSlice(v interface{}) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []interface{}:
		out := make([]string, 0, len(s))
		for _, e := range s {
			str, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	default:
		return nil, false
	}
}
