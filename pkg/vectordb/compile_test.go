package vectordb

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCompileFilter(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		filters *FilterSet
		want    string
	}{
		{name: "nil", filters: nil, want: ""},
		{name: "empty", filters: NewFilterSet(), want: ""},
		{
			name:    "single match",
			filters: NewFilterSet(Must(NewMatch("genre", "drama"))),
			want:    `.genre == "drama"`,
		},
		{
			name:    "bool and int",
			filters: NewFilterSet(Must(NewMatch("active", true), NewMatch("year", 1999))),
			want:    `(.active == 1) and (.year == 1999)`,
		},
		{
			name:    "should",
			filters: NewFilterSet(Should(NewMatch("tag", "ml"), NewMatch("tag", "ai"))),
			want:    `(.tag == "ml") or (.tag == "ai")`,
		},
		{
			name: "must and must not",
			filters: NewFilterSet(
				Must(NewMatch("genre", "drama")),
				MustNot(NewMatchAny("year", 1999, 2000)),
			),
			want: `(.genre == "drama") and (not (.year in [1999, 2000]))`,
		},
		{
			name:    "match except",
			filters: NewFilterSet(Must(NewMatchExcept("lang", "de", "fr"))),
			want:    `not (.lang in ["de", "fr"])`,
		},
		{
			name:    "numeric range",
			filters: NewFilterSet(Must(NewNumericRange("rating", NumericRange{Gte: ptr(3.5), Lt: ptr(5.0)}))),
			want:    `.rating >= 3.5 and .rating < 5`,
		},
		{
			name:    "time range",
			filters: NewFilterSet(Must(NewTimeRange("created", TimeRange{Gt: &jan}))),
			want:    `.created > 1704067200`,
		},
		{
			name:    "string escaping",
			filters: NewFilterSet(Must(NewMatch("title", `say "hi"`))),
			want:    `.title == "say \"hi\""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompileFilter(tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileFilter_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		filters *FilterSet
	}{
		{name: "bad field name", filters: NewFilterSet(Must(NewMatch("a b", 1)))},
		{name: "selector injection", filters: NewFilterSet(Must(NewMatch("x == 1 or .y", 1)))},
		{name: "mixed in types", filters: NewFilterSet(Must(NewMatchAny("f", "a", 1)))},
		{name: "empty in", filters: NewFilterSet(Must(NewMatchAny("f")))},
		{name: "unbounded range", filters: NewFilterSet(Must(NewNumericRange("f", NumericRange{})))},
		{name: "unsupported value", filters: NewFilterSet(Must(NewMatch("f", []int{1})))},
		{name: "nil condition", filters: NewFilterSet(Must(nil))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompileFilter(tt.filters)
			assert.ErrorIs(t, err, ErrInvalidFilter)
		})
	}
}

func TestFilterSet_JSONDecodesConcreteConditions(t *testing.T) {
	input := `{
		"must": [
			{"field": "genre", "equalTo": "drama"},
			{"field": "rating", "greaterThanOrEqualTo": 3}
		],
		"mustNot": [
			{"field": "lang", "anyOf": ["de", "fr"]}
		]
	}`

	var fs FilterSet
	require.NoError(t, json.Unmarshal([]byte(input), &fs))

	require.Len(t, fs.Must.Conditions, 2)
	assert.IsType(t, &MatchCondition{}, fs.Must.Conditions[0])
	assert.IsType(t, &NumericRangeCondition{}, fs.Must.Conditions[1])
	assert.IsType(t, &MatchAnyCondition{}, fs.MustNot.Conditions[0])

	expr, err := CompileFilter(&fs)
	require.NoError(t, err)
	assert.Equal(t, `((.genre == "drama") and (.rating >= 3)) and (not (.lang in ["de", "fr"]))`, expr)
}

func TestFilterSet_UnknownConditionType(t *testing.T) {
	var fs FilterSet
	err := json.Unmarshal([]byte(`{"must": [{"field": "x", "near": 1}]}`), &fs)
	assert.Error(t, err)
}
