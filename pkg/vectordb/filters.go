package vectordb

import (
	"time"

	"github.com/goccy/go-json"
)

// FilterCondition is the interface all filter conditions must implement.
// Each backend converts these to its native filter format.
type FilterCondition interface {
	IsFilterCondition()
}

// FilterSet supports Must (AND), Should (OR), and MustNot (NOT) clauses.
// Use with SearchRequest.Filters to filter search results.
//
// Example:
//
//	filters := &FilterSet{
//	    Must: &ConditionSet{
//	        Conditions: []FilterCondition{
//	            &MatchCondition{Field: "city", Value: "London"},
//	        },
//	    },
//	}
type FilterSet struct {
	// Must: All conditions must match (AND)
	Must *ConditionSet `json:"must,omitempty"`
	// Should: At least one condition must match (OR)
	Should *ConditionSet `json:"should,omitempty"`
	// MustNot: None of the conditions should match (NOT)
	MustNot *ConditionSet `json:"mustNot,omitempty"`
}

// ConditionSet holds a group of conditions for a single clause.
type ConditionSet struct {
	Conditions []FilterCondition `json:"conditions,omitempty"`
}

// ── Match Conditions ─────────────────────────────────────────────────────────

// MatchCondition is an exact match on a string, bool or numeric attribute.
type MatchCondition struct {
	Field string `json:"field"`
	Value any    `json:"equalTo"`
}

func (c *MatchCondition) IsFilterCondition() {}

// MatchAnyCondition matches if the attribute is one of the given values.
type MatchAnyCondition struct {
	Field  string `json:"field"`
	Values []any  `json:"anyOf"`
}

func (c *MatchAnyCondition) IsFilterCondition() {}

// MatchExceptCondition matches if the attribute is none of the given values.
type MatchExceptCondition struct {
	Field  string `json:"field"`
	Values []any  `json:"noneOf"`
}

func (c *MatchExceptCondition) IsFilterCondition() {}

// ── Range Types ──────────────────────────────────────────────────────────────

// NumericRange defines bounds for numeric filtering.
type NumericRange struct {
	Gt  *float64 `json:"greaterThan,omitempty"`
	Gte *float64 `json:"greaterThanOrEqualTo,omitempty"`
	Lt  *float64 `json:"lessThan,omitempty"`
	Lte *float64 `json:"lessThanOrEqualTo,omitempty"`
}

// TimeRange defines bounds for time filtering. Times are compared as Unix
// seconds, so the attribute must hold a Unix timestamp.
type TimeRange struct {
	Gt  *time.Time `json:"after,omitempty"`
	Gte *time.Time `json:"atOrAfter,omitempty"`
	Lt  *time.Time `json:"before,omitempty"`
	Lte *time.Time `json:"atOrBefore,omitempty"`
}

// ── Range Conditions ─────────────────────────────────────────────────────────

// NumericRangeCondition filters by numeric range.
type NumericRangeCondition struct {
	Field string       `json:"field"`
	Range NumericRange `json:"-"`
}

func (c *NumericRangeCondition) IsFilterCondition() {}

type numericRangeJSON struct {
	Field                string   `json:"field"`
	GreaterThan          *float64 `json:"greaterThan,omitempty"`
	GreaterThanOrEqualTo *float64 `json:"greaterThanOrEqualTo,omitempty"`
	LessThan             *float64 `json:"lessThan,omitempty"`
	LessThanOrEqualTo    *float64 `json:"lessThanOrEqualTo,omitempty"`
}

func (c *NumericRangeCondition) MarshalJSON() ([]byte, error) {
	return json.Marshal(numericRangeJSON{
		Field:                c.Field,
		GreaterThan:          c.Range.Gt,
		GreaterThanOrEqualTo: c.Range.Gte,
		LessThan:             c.Range.Lt,
		LessThanOrEqualTo:    c.Range.Lte,
	})
}

func (c *NumericRangeCondition) UnmarshalJSON(data []byte) error {
	var alias numericRangeJSON
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	c.Field = alias.Field
	c.Range = NumericRange{
		Gt:  alias.GreaterThan,
		Gte: alias.GreaterThanOrEqualTo,
		Lt:  alias.LessThan,
		Lte: alias.LessThanOrEqualTo,
	}
	return nil
}

// TimeRangeCondition filters by datetime range.
type TimeRangeCondition struct {
	Field string    `json:"field"`
	Range TimeRange `json:"-"`
}

func (c *TimeRangeCondition) IsFilterCondition() {}

type timeRangeJSON struct {
	Field      string     `json:"field"`
	After      *time.Time `json:"after,omitempty"`
	AtOrAfter  *time.Time `json:"atOrAfter,omitempty"`
	Before     *time.Time `json:"before,omitempty"`
	AtOrBefore *time.Time `json:"atOrBefore,omitempty"`
}

func (c *TimeRangeCondition) MarshalJSON() ([]byte, error) {
	return json.Marshal(timeRangeJSON{
		Field:      c.Field,
		After:      c.Range.Gt,
		AtOrAfter:  c.Range.Gte,
		Before:     c.Range.Lt,
		AtOrBefore: c.Range.Lte,
	})
}

func (c *TimeRangeCondition) UnmarshalJSON(data []byte) error {
	var alias timeRangeJSON
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	c.Field = alias.Field
	c.Range = TimeRange{
		Gt:  alias.After,
		Gte: alias.AtOrAfter,
		Lt:  alias.Before,
		Lte: alias.AtOrBefore,
	}
	return nil
}
