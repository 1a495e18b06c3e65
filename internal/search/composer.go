package search

import (
	"fmt"
	"strings"
)

// Compose builds the WHERE clause body for a trail search. All fragments
// are AND-ed onto a fixed always-true base so an empty term and filter
// list still yields a valid unconditional clause. Parameters are pushed
// through the shared binder in fragment order; the caller executes the
// resulting clause with binder.Args().
func Compose(term string, filters []Filter, b *Binder) string {
	clauses := []string{"1 = 1"}

	if expr := SanitizeTerm(term); expr != "" {
		clauses = append(clauses, fmt.Sprintf(
			"t.id IN (SELECT rowid FROM trails_fts WHERE trails_fts MATCH %s)", b.Add(expr)))
	}

	for _, f := range filters {
		clauses = append(clauses, f.predicate(b))
	}

	return strings.Join(clauses, " AND ")
}

// predicate requires membership in every listed feature: the subquery
// groups the feature join rows per trail and keeps only trails whose
// distinct matched-feature count equals the requested count.
func (f featuresFilter) predicate(b *Binder) string {
	tokens := make([]string, len(f.names))
	for i, name := range f.names {
		tokens[i] = b.Add(name)
	}
	return fmt.Sprintf(
		"t.id IN (SELECT tf.trail_id FROM trail_features tf"+
			" JOIN features f ON f.id = tf.feature_id"+
			" WHERE f.name IN (%s)"+
			" GROUP BY tf.trail_id"+
			" HAVING COUNT(DISTINCT f.name) = %s)",
		strings.Join(tokens, ", "), b.Add(len(f.names)))
}

func (f enumFilter) predicate(b *Binder) string {
	tokens := make([]string, len(f.values))
	for i, v := range f.values {
		tokens[i] = b.Add(v)
	}
	return fmt.Sprintf("%s IN (%s)", f.column, strings.Join(tokens, ", "))
}

// distance ranges are inclusive on both ends
func (f distanceFilter) predicate(b *Binder) string {
	switch {
	case f.lo != nil && f.hi != nil:
		return fmt.Sprintf("%s BETWEEN %s AND %s", f.column, b.Add(*f.lo), b.Add(*f.hi))
	case f.lo != nil:
		return fmt.Sprintf("%s >= %s", f.column, b.Add(*f.lo))
	default:
		return fmt.Sprintf("%s <= %s", f.column, b.Add(*f.hi))
	}
}

// elevation thresholds are strict, unlike distance
func (f elevationFilter) predicate(b *Binder) string {
	return fmt.Sprintf("%s %s %s", f.column, f.op, b.Add(f.value))
}

func (f equalityFilter) predicate(b *Binder) string {
	if f.numeric {
		return fmt.Sprintf("%s = %s", f.column, b.Add(f.number))
	}
	return fmt.Sprintf("LOWER(%s) = %s", f.column, b.Add(f.text))
}
