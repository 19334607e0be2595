package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Encode renders a record as a single line of compact JSON.
//
// Differences from json.Marshal on a map:
//  1. Keys are emitted in insertion order, never sorted
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized
//  4. Nil values are rejected
//
// The output never contains a newline, so one record is always one line.
func Encode(r Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeRecord(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v Value) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("nil value is not allowed in a record")
	case String:
		return encodeString(buf, string(val))
	case Int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
		return nil
	case Bool:
		buf.WriteString(strconv.FormatBool(bool(val)))
		return nil
	case Array:
		return encodeArray(buf, val)
	case Record:
		return encodeRecord(buf, val)
	case *Record:
		if val == nil {
			return fmt.Errorf("nil record is not allowed")
		}
		return encodeRecord(buf, *val)
	default:
		return fmt.Errorf("unsupported record value type: %T", v)
	}
}

func encodeRecord(buf *bytes.Buffer, r Record) error {
	buf.WriteByte('{')
	for i, p := range r.pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeString(buf, p.Key); err != nil {
			return fmt.Errorf("key %q: %w", p.Key, err)
		}
		buf.WriteByte(':')
		if err := encodeValue(buf, p.Value); err != nil {
			return fmt.Errorf("value for key %q: %w", p.Key, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeArray(buf *bytes.Buffer, arr Array) error {
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(buf, elem); err != nil {
			return fmt.Errorf("array[%d]: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return nil
}

// encodeString writes a JSON string with NFC normalization and without
// HTML escaping. Quotes, backslashes and control characters are escaped.
func encodeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return err
	}

	// json.Encoder adds trailing newline, remove it
	out := tmp.Bytes()
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	buf.Write(out)
	return nil
}
