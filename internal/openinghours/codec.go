package openinghours

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
)

// Hydrate builds a WeeklyHours from a persisted JSON record.
//
// Entries keep the key order of the record. Each entry is coerced into a
// DayInterval: missing or non-scalar fields become "", numbers and booleans
// are rendered as text. Absent, null or malformed input yields an empty
// week with zero days, unlike InitializeEmpty.
func Hydrate(raw []byte) WeeklyHours {
	var h WeeklyHours

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return h
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return h
	}

	h.intervals = make(map[string]DayInterval)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			break
		}
		day, ok := keyTok.(string)
		if !ok {
			break
		}

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			break
		}

		// Duplicate keys keep their first position, the last value wins.
		if _, seen := h.intervals[day]; !seen {
			h.days = append(h.days, day)
		}
		h.intervals[day] = coerceInterval(value)
	}
	return h
}

// Decode is Hydrate for the persistence layer: it returns nil when the
// record is absent or JSON null so callers can tell "no hours recorded"
// apart from an empty week.
func Decode(raw []byte) *WeeklyHours {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	h := Hydrate(trimmed)
	return &h
}

// coerceInterval turns one schemaless record entry into a DayInterval.
func coerceInterval(value interface{}) DayInterval {
	var d DayInterval
	if _, ok := value.(map[string]interface{}); !ok {
		return d
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringifyHook,
		Result:     &d,
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
	})
	if err != nil {
		return DayInterval{}
	}
	if err := decoder.Decode(value); err != nil {
		return DayInterval{}
	}
	return d
}

// stringifyHook renders scalar JSON values as text and drops nested values.
func stringifyHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", nil
	}
}

// MarshalJSON encodes the week as a JSON object in iteration order.
func (h WeeklyHours) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range h.days {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(day)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(h.intervals[day])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces h with the hydrated form of data.
func (h *WeeklyHours) UnmarshalJSON(data []byte) error {
	*h = Hydrate(data)
	return nil
}
