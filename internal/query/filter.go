// Package query compiles user-supplied filter triples into validated,
// ordered constraint sets for the conference and session stores.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFilter is returned for unknown field/operator tokens, inequality
// constraints on more than one field, or non-numeric values on numeric fields.
var ErrInvalidFilter = errors.New("invalid filter")

// Kind selects the entity the filters apply to.
type Kind string

const (
	KindConference Kind = "conference"
	KindSession    Kind = "session"
)

// Filter is one user-supplied (field, operator, value) triple. Field and
// Operator are enum tokens, Value is always a string at the boundary.
type Filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Constraint is one validated predicate over a store column.
type Constraint struct {
	Column string
	Op     string
	// Value is a string, or an int for numeric columns.
	Value any
	// Repeated marks list-valued columns (topics); equality on them means
	// membership.
	Repeated bool
}

// Compiled is a validated constraint set plus the single identified
// inequality column, if any.
type Compiled struct {
	Kind            Kind
	Constraints     []Constraint
	InequalityField string
}

// OrderColumns returns the mandated result ordering: the inequality column
// first (the store requires range-filtered columns to sort first), then name;
// or name alone.
func (c *Compiled) OrderColumns() []string {
	if c.InequalityField != "" && c.InequalityField != "name" {
		return []string{c.InequalityField, "name"}
	}
	return []string{"name"}
}

// operators maps operator tokens to comparison operators. Everything except
// "=" is an inequality.
var operators = map[string]string{
	"EQ":   "=",
	"GT":   ">",
	"GTEQ": ">=",
	"LT":   "<",
	"LTEQ": "<=",
	"NE":   "!=",
}

type fieldSpec struct {
	column    string
	numeric   bool
	timeOfDay bool
	repeated  bool
}

// Closed field tables per entity kind; anything else is rejected at compile
// time rather than dispatched on.
var conferenceFields = map[string]fieldSpec{
	"NAME":          {column: "name"},
	"CITY":          {column: "city"},
	"TOPIC":         {column: "topics", repeated: true},
	"MONTH":         {column: "month", numeric: true},
	"MAX_ATTENDEES": {column: "max_attendees", numeric: true},
}

var sessionFields = map[string]fieldSpec{
	"NAME":       {column: "name"},
	"TYPE":       {column: "type_of_session"},
	"SPEAKER":    {column: "speaker_key"},
	"DURATION":   {column: "duration", numeric: true},
	"START_TIME": {column: "start_time", numeric: true, timeOfDay: true},
}

func fieldsFor(kind Kind) (map[string]fieldSpec, error) {
	switch kind {
	case KindConference:
		return conferenceFields, nil
	case KindSession:
		return sessionFields, nil
	default:
		return nil, fmt.Errorf("%w: unknown entity kind %q", ErrInvalidFilter, kind)
	}
}

// Compile validates and converts the filters for the given entity kind.
// At most one distinct column may carry inequality constraints; multiple
// inequalities on the same column (ranges) are fine.
func Compile(kind Kind, filters []Filter) (*Compiled, error) {
	fields, err := fieldsFor(kind)
	if err != nil {
		return nil, err
	}

	compiled := &Compiled{Kind: kind}
	for _, f := range filters {
		spec, ok := fields[f.Field]
		if !ok {
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidFilter, f.Field)
		}
		op, ok := operators[f.Operator]
		if !ok {
			return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidFilter, f.Operator)
		}

		if op != "=" {
			if compiled.InequalityField != "" && compiled.InequalityField != spec.column {
				return nil, fmt.Errorf("%w: inequality filter allowed on only one field", ErrInvalidFilter)
			}
			compiled.InequalityField = spec.column
		}

		var value any = f.Value
		if spec.numeric {
			n, err := coerceInt(f.Value, spec.timeOfDay)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q needs a numeric value, got %q", ErrInvalidFilter, f.Field, f.Value)
			}
			value = n
		}

		compiled.Constraints = append(compiled.Constraints, Constraint{
			Column:   spec.column,
			Op:       op,
			Value:    value,
			Repeated: spec.repeated,
		})
	}
	return compiled, nil
}

func coerceInt(s string, timeOfDay bool) (int, error) {
	if timeOfDay && strings.Contains(s, ":") {
		return ParseTimeOfDay(s)
	}
	return strconv.Atoi(s)
}

// ParseTimeOfDay converts a 24-hour "HH:MM" string to minutes since midnight.
func ParseTimeOfDay(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return hh*60 + mm, nil
}

// FormatTimeOfDay renders minutes since midnight as "HH:MM".
func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
