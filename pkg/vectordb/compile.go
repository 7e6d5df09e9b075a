package vectordb

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// CompileFilter renders a FilterSet in the VSIM FILTER expression language.
// Attribute selectors are written ".field"; Must terms are joined with "and",
// Should terms with "or", and every MustNot term is negated with "not".
// A nil or empty FilterSet compiles to "".
//
// Example:
//
//	expr, _ := vectordb.CompileFilter(vectordb.NewFilterSet(
//	    vectordb.Must(vectordb.NewMatch("genre", "drama")),
//	    vectordb.MustNot(vectordb.NewMatchAny("year", 1999, 2000)),
//	))
//	// (.genre == "drama") and (not (.year in [1999, 2000]))
func CompileFilter(fs *FilterSet) (string, error) {
	if fs == nil {
		return "", nil
	}

	var parts []string

	must, err := compileConditions(fs.Must, " and ", false)
	if err != nil {
		return "", err
	}
	should, err := compileConditions(fs.Should, " or ", false)
	if err != nil {
		return "", err
	}
	mustNot, err := compileConditions(fs.MustNot, " and ", true)
	if err != nil {
		return "", err
	}

	for _, p := range []string{must, should, mustNot} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return join(parts, " and "), nil
}

func compileConditions(cs *ConditionSet, op string, negate bool) (string, error) {
	if cs == nil || len(cs.Conditions) == 0 {
		return "", nil
	}

	terms := make([]string, 0, len(cs.Conditions))
	for _, cond := range cs.Conditions {
		term, err := compileCondition(cond)
		if err != nil {
			return "", err
		}
		if negate {
			term = "not (" + term + ")"
		}
		terms = append(terms, term)
	}
	return join(terms, op), nil
}

func compileCondition(cond FilterCondition) (string, error) {
	switch c := cond.(type) {
	case *MatchCondition:
		sel, err := selector(c.Field)
		if err != nil {
			return "", err
		}
		lit, err := literal(c.Value)
		if err != nil {
			return "", err
		}
		return sel + " == " + lit, nil

	case *MatchAnyCondition:
		return compileIn(c.Field, c.Values)

	case *MatchExceptCondition:
		in, err := compileIn(c.Field, c.Values)
		if err != nil {
			return "", err
		}
		return "not (" + in + ")", nil

	case *NumericRangeCondition:
		return compileRange(c.Field, c.Range.Gt, c.Range.Gte, c.Range.Lt, c.Range.Lte)

	case *TimeRangeCondition:
		return compileRange(c.Field,
			unixSeconds(c.Range.Gt), unixSeconds(c.Range.Gte),
			unixSeconds(c.Range.Lt), unixSeconds(c.Range.Lte))

	case nil:
		return "", fmt.Errorf("%w: nil condition", ErrInvalidFilter)
	default:
		return "", fmt.Errorf("%w: unsupported condition %T", ErrInvalidFilter, cond)
	}
}

func compileIn(field string, values []any) (string, error) {
	sel, err := selector(field)
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", fmt.Errorf("%w: %q has no values", ErrInvalidFilter, field)
	}
	if err := validateHomogeneousTypes(values); err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidFilter, field, err)
	}

	lits := make([]string, 0, len(values))
	for _, v := range values {
		lit, err := literal(v)
		if err != nil {
			return "", err
		}
		lits = append(lits, lit)
	}
	return sel + " in [" + strings.Join(lits, ", ") + "]", nil
}

func compileRange(field string, gt, gte, lt, lte *float64) (string, error) {
	sel, err := selector(field)
	if err != nil {
		return "", err
	}

	var terms []string
	add := func(op string, bound *float64) {
		if bound != nil {
			terms = append(terms, sel+" "+op+" "+formatNumber(*bound))
		}
	}
	add(">", gt)
	add(">=", gte)
	add("<", lt)
	add("<=", lte)

	if len(terms) == 0 {
		return "", fmt.Errorf("%w: range on %q has no bounds", ErrInvalidFilter, field)
	}
	return strings.Join(terms, " and "), nil
}

func selector(field string) (string, error) {
	if !fieldPattern.MatchString(field) {
		return "", fmt.Errorf("%w: field name %q", ErrInvalidFilter, field)
	}
	return "." + field, nil
}

// literal renders a value; booleans become 1 and 0 as the server stores them.
func literal(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strconv.Quote(val), nil
	case bool:
		if val {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.Itoa(val), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float32:
		return formatNumber(float64(val)), nil
	case float64:
		return formatNumber(val), nil
	default:
		return "", fmt.Errorf("%w: unsupported value type %T", ErrInvalidFilter, v)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func unixSeconds(t *time.Time) *float64 {
	if t == nil {
		return nil
	}
	s := float64(t.Unix())
	return &s
}

func join(terms []string, op string) string {
	if len(terms) == 1 {
		return terms[0]
	}
	wrapped := make([]string, len(terms))
	for i, t := range terms {
		wrapped[i] = "(" + t + ")"
	}
	return strings.Join(wrapped, op)
}
