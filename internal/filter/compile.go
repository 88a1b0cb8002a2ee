package filter

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	prefixContains = "contains:"
	prefixIn       = "in:"
	prefixBetween  = "between:"
	prefixGt       = "gt:"
	prefixLt       = "lt:"
	prefixBefore   = "before:"
	prefixAfter    = "after:"
)

// dateLayouts are tried in order; layouts without a zone are read as UTC
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Compile turns query-string parameters into a Query scoped to ownerID.
// Unknown keys and empty values are ignored.
func Compile(ownerID uuid.UUID, params url.Values) (*Query, error) {
	page, err := parsePositive(params, "page", DefaultPage)
	if err != nil {
		return nil, err
	}
	limit, err := parsePositive(params, "limit", DefaultLimit)
	if err != nil {
		return nil, err
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// the offset (page-1)*limit must stay representable
	if page-1 > math.MaxInt/limit {
		return nil, invalid("page", params.Get("page"), "is too large")
	}

	q := &Query{OwnerID: ownerID, Page: page, Limit: limit}
	for _, f := range Fields {
		raw := strings.TrimSpace(params.Get(f.Name))
		if raw == "" {
			continue
		}
		cond, err := ParseCondition(f, raw)
		if err != nil {
			return nil, err
		}
		q.Conditions = append(q.Conditions, cond)
	}
	return q, nil
}

// ParseCondition parses a single filter expression for field f
func ParseCondition(f Field, raw string) (Condition, error) {
	switch f.Kind {
	case KindText:
		return parseText(f, raw)
	case KindEnum:
		return parseEnum(f, raw)
	case KindNumeric:
		return parseRanged(f, raw, prefixGt, prefixLt, parseNumber)
	case KindTemporal:
		return parseRanged(f, raw, prefixAfter, prefixBefore, parseDate)
	case KindBoolean:
		return Condition{Field: f.Name, Kind: f.Kind, Op: OpEquals, Args: []any{raw == "true"}}, nil
	}
	return Condition{}, invalid(f.Name, raw, "unsupported field kind "+f.Kind.String())
}

func parseText(f Field, raw string) (Condition, error) {
	if rest, ok := strings.CutPrefix(raw, prefixContains); ok {
		if rest == "" {
			return Condition{}, invalid(f.Name, raw, "contains requires a value")
		}
		return Condition{Field: f.Name, Kind: f.Kind, Op: OpContains, Args: []any{rest}}, nil
	}
	return Condition{Field: f.Name, Kind: f.Kind, Op: OpEquals, Args: []any{raw}}, nil
}

func parseEnum(f Field, raw string) (Condition, error) {
	rest, ok := strings.CutPrefix(raw, prefixIn)
	if !ok {
		return Condition{Field: f.Name, Kind: f.Kind, Op: OpEquals, Args: []any{raw}}, nil
	}
	var values []string
	for _, v := range strings.Split(rest, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return Condition{}, invalid(f.Name, raw, "in requires at least one value")
	}
	return Condition{Field: f.Name, Kind: f.Kind, Op: OpIn, Args: []any{values}}, nil
}

// parseRanged handles the numeric and temporal grammars, which differ only in
// their literal parser and the names of the strict comparison prefixes.
func parseRanged(f Field, raw, gtPrefix, ltPrefix string, parse func(string) (any, bool)) (Condition, error) {
	value := func(s string) (any, error) {
		v, ok := parse(strings.TrimSpace(s))
		if !ok {
			return nil, invalid(f.Name, raw, "cannot parse "+strconv.Quote(s)+" as "+f.Kind.String())
		}
		return v, nil
	}

	if rest, ok := strings.CutPrefix(raw, prefixBetween); ok {
		bounds := strings.Split(rest, ",")
		if len(bounds) != 2 || strings.TrimSpace(bounds[0]) == "" || strings.TrimSpace(bounds[1]) == "" {
			return Condition{}, invalid(f.Name, raw, "between requires exactly two values")
		}
		lo, err := value(bounds[0])
		if err != nil {
			return Condition{}, err
		}
		hi, err := value(bounds[1])
		if err != nil {
			return Condition{}, err
		}
		if greater(lo, hi) {
			return Condition{}, invalid(f.Name, raw, "lower bound is greater than upper bound")
		}
		return Condition{Field: f.Name, Kind: f.Kind, Op: OpBetween, Args: []any{lo, hi}}, nil
	}

	op := OpEquals
	rest := raw
	if r, ok := strings.CutPrefix(raw, gtPrefix); ok {
		op, rest = OpGt, r
	} else if r, ok := strings.CutPrefix(raw, ltPrefix); ok {
		op, rest = OpLt, r
	}
	if strings.TrimSpace(rest) == "" {
		return Condition{}, invalid(f.Name, raw, "missing value")
	}
	v, err := value(rest)
	if err != nil {
		return Condition{}, err
	}
	return Condition{Field: f.Name, Kind: f.Kind, Op: op, Args: []any{v}}, nil
}

func parseNumber(s string) (any, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, false
	}
	return n, true
}

func parseDate(s string) (any, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return nil, false
}

func greater(a, b any) bool {
	switch av := a.(type) {
	case float64:
		return av > b.(float64)
	case time.Time:
		return av.After(b.(time.Time))
	}
	return false
}

func parsePositive(params url.Values, key string, def int) (int, error) {
	raw := strings.TrimSpace(params.Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// a well-formed positive integer beyond int range saturates
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
			return math.MaxInt, nil
		}
		return 0, invalid(key, raw, "must be an integer")
	}
	if n < 1 {
		return 0, invalid(key, raw, "must be a positive integer")
	}
	return n, nil
}
