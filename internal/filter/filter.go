// Package filter compiles query-string filter expressions for the lead listing
// into an owner-scoped, store-neutral Query.
//
// Each filterable field belongs to a Kind, and each Kind accepts a small set of
// operator prefixes:
//
//	text      email, company, city           contains:<s> | <s>
//	enum      source, status                 in:a,b,... | <s>
//	numeric   score, lead_value              between:lo,hi | gt:n | lt:n | <n>
//	temporal  created_at, last_activity_at   between:d1,d2 | before:d | after:d | <d>
//	boolean   is_qualified                   true | anything else
//
// The owner is never a client-suppliable field; Query.OwnerID is set by the
// caller from the authenticated session.
package filter

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Kind is the value category of a filterable field
type Kind int

const (
	KindText Kind = iota
	KindEnum
	KindNumeric
	KindTemporal
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindEnum:
		return "enum"
	case KindNumeric:
		return "numeric"
	case KindTemporal:
		return "temporal"
	case KindBoolean:
		return "boolean"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Op selects the predicate a Condition applies
type Op int

const (
	OpEquals Op = iota
	OpContains
	OpIn
	OpBetween
	OpGt
	OpLt
)

func (o Op) String() string {
	switch o {
	case OpEquals:
		return "equals"
	case OpContains:
		return "contains"
	case OpIn:
		return "in"
	case OpBetween:
		return "between"
	case OpGt:
		return "gt"
	case OpLt:
		return "lt"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Field describes one filterable lead attribute
type Field struct {
	Name string
	Kind Kind
}

// Fields is the registry of filterable attributes in compile order.
// Field names double as column names, so nothing outside this list can reach a query.
var Fields = []Field{
	{Name: "email", Kind: KindText},
	{Name: "company", Kind: KindText},
	{Name: "city", Kind: KindText},
	{Name: "source", Kind: KindEnum},
	{Name: "status", Kind: KindEnum},
	{Name: "score", Kind: KindNumeric},
	{Name: "lead_value", Kind: KindNumeric},
	{Name: "created_at", Kind: KindTemporal},
	{Name: "last_activity_at", Kind: KindTemporal},
	{Name: "is_qualified", Kind: KindBoolean},
}

// Condition is a single predicate on one field.
//
// Args holds exactly one value for OpEquals, OpContains, OpGt and OpLt, two
// (inclusive lower and upper bound) for OpBetween, and a single []string for OpIn.
// Values are string, float64, time.Time or bool depending on Kind.
type Condition struct {
	Field string
	Kind  Kind
	Op    Op
	Args  []any
}

// Query is the compiled form of a lead listing request
type Query struct {
	OwnerID    uuid.UUID
	Conditions []Condition
	Page       int
	Limit      int
}

// Offset returns the number of rows to skip for the requested page
func (q *Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// TotalPages returns ceil(total/limit)
func (q *Query) TotalPages(total int64) int64 {
	if q.Limit <= 0 || total <= 0 {
		return 0
	}
	limit := int64(q.Limit)
	return (total + limit - 1) / limit
}

// ValidationError reports a malformed filter or pagination value
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Field, e.Reason)
}

func invalid(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}
