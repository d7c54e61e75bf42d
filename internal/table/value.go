package table

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	// KindMissing marks an absent value. Missing values sort last in both directions.
	KindMissing ValueKind = iota
	// KindNumber holds a float64.
	KindNumber
	// KindText holds a string compared by code point.
	KindText
	// KindTimestamp holds a time.Time compared chronologically.
	KindTimestamp
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Value is the derived, comparable value a column accessor produces for a row.
// The zero Value is Missing.
type Value struct {
	kind ValueKind
	num  float64
	text string
	ts   time.Time
}

// Number returns a numeric Value. NaN is treated as missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: KindNumber, num: f}
}

// Text returns a text Value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Timestamp returns a time Value. The zero time is treated as missing.
func Timestamp(t time.Time) Value {
	if t.IsZero() {
		return Value{}
	}
	return Value{kind: KindTimestamp, ts: t}
}

// Missing returns the missing Value.
func Missing() Value {
	return Value{}
}

// Kind reports the variant.
func (v Value) Kind() ValueKind { return v.kind }

// IsMissing reports whether v holds no value.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric payload.
func (v Value) Float() float64 { return v.num }

// Str returns the text payload.
func (v Value) Str() string { return v.text }

// Time returns the timestamp payload.
func (v Value) Time() time.Time { return v.ts }

// String formats the value for plain-text output.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	case KindTimestamp:
		return v.ts.Format(time.RFC3339)
	case KindMissing:
		return ""
	default:
		return ""
	}
}

// Compare orders two non-missing values and returns -1, 0 or +1.
//
// Numbers compare numerically, text by code point (byte order of UTF-8 is code point
// order), timestamps chronologically. Values of different kinds are ordered
// Number < Text < Timestamp so the order stays total. Missing values compare after
// everything; callers that honor sort direction handle them separately.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		return compareKinds(a.kind, b.kind)
	}

	switch a.kind {
	case KindNumber:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		default:
			return 0
		}
	case KindText:
		return strings.Compare(a.text, b.text)
	case KindTimestamp:
		return a.ts.Compare(b.ts)
	case KindMissing:
		return 0
	default:
		return 0
	}
}

// compareKinds ranks kinds with Missing last.
func compareKinds(a, b ValueKind) int {
	rank := func(k ValueKind) int {
		if k == KindMissing {
			return math.MaxInt
		}
		return int(k)
	}
	ra, rb := rank(a), rank(b)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}
