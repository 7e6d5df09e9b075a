package vectordb

import (
	"fmt"

	"github.com/goccy/go-json"
)

// ── FilterSet Constructors ───────────────────────────────────────────────────

// NewFilterSet creates a FilterSet with the given clauses.
// Use with Must(), Should(), and MustNot() helpers.
//
// Example:
//
//	vectordb.NewFilterSet(
//	    vectordb.Must(vectordb.NewMatch("status", "published")),
//	    vectordb.Should(vectordb.NewMatch("tag", "ml"), vectordb.NewMatch("tag", "ai")),
//	)
func NewFilterSet(clauses ...func(*FilterSet)) *FilterSet {
	fs := &FilterSet{}
	for _, clause := range clauses {
		clause(fs)
	}
	return fs
}

// Must creates a Must clause (AND logic) with the given conditions.
func Must(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Must = &ConditionSet{Conditions: conditions}
	}
}

// Should creates a Should clause (OR logic) with the given conditions.
func Should(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Should = &ConditionSet{Conditions: conditions}
	}
}

// MustNot creates a MustNot clause (NOT logic) with the given conditions.
func MustNot(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.MustNot = &ConditionSet{Conditions: conditions}
	}
}

// ── Condition Constructors ───────────────────────────────────────────────────

func NewMatch(field string, value any) *MatchCondition {
	return &MatchCondition{Field: field, Value: value}
}

// NewMatchAny creates an IN condition. Values must share one type category;
// this is checked when the filter is compiled.
func NewMatchAny(field string, values ...any) *MatchAnyCondition {
	return &MatchAnyCondition{Field: field, Values: values}
}

// NewMatchExcept creates a NOT IN condition.
func NewMatchExcept(field string, values ...any) *MatchExceptCondition {
	return &MatchExceptCondition{Field: field, Values: values}
}

func NewNumericRange(field string, r NumericRange) *NumericRangeCondition {
	return &NumericRangeCondition{Field: field, Range: r}
}

func NewTimeRange(field string, t TimeRange) *TimeRangeCondition {
	return &TimeRangeCondition{Field: field, Range: t}
}

// ── JSON Serialization ───────────────────────────────────────────────────────

// MarshalJSON implements custom JSON marshaling for ConditionSet.
// This is needed because FilterCondition is an interface.
func (cs *ConditionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(cs.Conditions)
}

// UnmarshalJSON detects the condition type of each entry from its JSON keys
// and decodes it into the matching concrete type.
func (cs *ConditionSet) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	cs.Conditions = make([]FilterCondition, 0, len(raw))
	for _, r := range raw {
		cond, err := parseCondition(r)
		if err != nil {
			return err
		}
		cs.Conditions = append(cs.Conditions, cond)
	}
	return nil
}

// parseCondition picks the condition type by key:
//   - "equalTo" → MatchCondition
//   - "anyOf" → MatchAnyCondition
//   - "noneOf" → MatchExceptCondition
//   - "greaterThan", "lessThan", etc. → NumericRangeCondition
//   - "after", "before", etc. → TimeRangeCondition
func parseCondition(data []byte) (FilterCondition, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	var cond FilterCondition
	switch {
	case hasKey(fields, "equalTo"):
		cond = &MatchCondition{}
	case hasKey(fields, "anyOf"):
		cond = &MatchAnyCondition{}
	case hasKey(fields, "noneOf"):
		cond = &MatchExceptCondition{}
	case hasKey(fields, "greaterThan"), hasKey(fields, "greaterThanOrEqualTo"),
		hasKey(fields, "lessThan"), hasKey(fields, "lessThanOrEqualTo"):
		cond = &NumericRangeCondition{}
	case hasKey(fields, "after"), hasKey(fields, "atOrAfter"),
		hasKey(fields, "before"), hasKey(fields, "atOrBefore"):
		cond = &TimeRangeCondition{}
	default:
		return nil, fmt.Errorf("unknown filter condition type: %s", string(data))
	}

	if err := json.Unmarshal(data, cond); err != nil {
		return nil, err
	}
	return cond, nil
}

func hasKey(m map[string]json.RawMessage, key string) bool {
	_, ok := m[key]
	return ok
}

// validateHomogeneousTypes ensures all values are of the same type category.
func validateHomogeneousTypes(values []any) error {
	if len(values) == 0 {
		return nil
	}

	expectedType := getType(values[0])
	if expectedType == "" {
		return fmt.Errorf("unsupported value type: %T", values[0])
	}

	for i, v := range values[1:] {
		actualType := getType(v)
		if actualType == "" {
			return fmt.Errorf("unsupported value type at index %d: %T", i+1, v)
		}
		if actualType != expectedType {
			return fmt.Errorf("mixed types not allowed: expected %s but got %s at index %d", expectedType, actualType, i+1)
		}
	}
	return nil
}

func getType(value any) string {
	switch value.(type) {
	case string:
		return "string"
	case int, int32, int64, float32, float64:
		return "numeric"
	case bool:
		return "boolean"
	}
	return ""
}
