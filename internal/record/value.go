package record

import "fmt"

// Value is a sealed interface over the types a record may hold.
// Only String, Int, Bool, Array and Record implement it.
type Value interface {
	recordValue() // Sealed
}

// String is a string value.
type String string

func (String) recordValue() {}

// Int is an integer value. Always int64, never float64.
type Int int64

func (Int) recordValue() {}

// Bool is a boolean value.
type Bool bool

func (Bool) recordValue() {}

// Array is an ordered sequence of values.
type Array []Value

func (Array) recordValue() {}

// Pair is a single key-value entry of a Record.
type Pair struct {
	Key   string
	Value Value
}

// P is a shorthand for Pair.
// Example: record.New(record.P("action", record.String("capture")))
func P(key string, value Value) Pair {
	return Pair{Key: key, Value: value}
}

// Record is an insertion-ordered mapping of string keys to values.
// The zero value is an empty record ready for use.
type Record struct {
	pairs []Pair
}

func (Record) recordValue() {}

// New creates a Record from pairs, in the order given.
// A repeated key overwrites the earlier value but keeps its position.
func New(pairs ...Pair) Record {
	r := Record{pairs: make([]Pair, 0, len(pairs))}
	for _, p := range pairs {
		r.Set(p.Key, p.Value)
	}
	return r
}

// Set assigns key to value. New keys are appended; existing keys keep
// their original position.
func (r *Record) Set(key string, value Value) {
	for i := range r.pairs {
		if r.pairs[i].Key == key {
			r.pairs[i].Value = value
			return
		}
	}
	r.pairs = append(r.pairs, Pair{Key: key, Value: value})
}

// Get returns the value stored under key.
func (r Record) Get(key string) (Value, bool) {
	for _, p := range r.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// StringField returns the string stored under key, or "" when the key is
// missing or holds another type.
func (r Record) StringField(key string) string {
	v, ok := r.Get(key)
	if !ok {
		return ""
	}
	s, ok := v.(String)
	if !ok {
		return ""
	}
	return string(s)
}

// MarshalJSON implements json.Marshaler using the canonical encoder.
func (r Record) MarshalJSON() ([]byte, error) {
	return Encode(r)
}

// String renders the record for diagnostics. Encoding errors are reported
// inline rather than panicking.
func (r Record) String() string {
	b, err := Encode(r)
	if err != nil {
		return fmt.Sprintf("<invalid record: %v>", err)
	}
	return string(b)
}
