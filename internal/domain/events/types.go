package events

import (
	"encoding/json"
	"time"
)

const (
	// RecordKind es el record type remoto de un Event.
	RecordKind = "Event"

	FieldTitle       = "title"
	FieldVenue       = "venue"
	FieldDescription = "description"
	FieldDate        = "date"
)

type FieldType string

const (
	FieldTypeString    FieldType = "STRING"
	FieldTypeTimestamp FieldType = "TIMESTAMP"

	// FieldTypeInvalid marca un valor que no se pudo interpretar (tipo conocido, valor roto).
	FieldTypeInvalid FieldType = "INVALID"
)

// FieldValue es un escalar tipado de un record: string o fecha.
type FieldValue struct {
	Type FieldType
	Str  string
	Time time.Time
}

func StringValue(s string) FieldValue {
	return FieldValue{Type: FieldTypeString, Str: s}
}

func TimeValue(t time.Time) FieldValue {
	return FieldValue{Type: FieldTypeTimestamp, Time: t}
}

type fieldValueJSON struct {
	Type  FieldType       `json:"type"`
	Value json.RawMessage `json:"value"`
}

func (v FieldValue) MarshalJSON() ([]byte, error) {
	var raw []byte
	var err error
	switch v.Type {
	case FieldTypeString:
		raw, err = json.Marshal(v.Str)
	case FieldTypeTimestamp:
		raw, err = json.Marshal(v.Time.Format(time.RFC3339Nano))
	default:
		raw = []byte("null")
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(fieldValueJSON{Type: v.Type, Value: raw})
}

// UnmarshalJSON nunca falla por un valor mal tipado: lo deja como FieldTypeInvalid
// para que el decode leniente descarte el record y no toda la lectura.
func (v *FieldValue) UnmarshalJSON(b []byte) error {
	var in fieldValueJSON
	if err := json.Unmarshal(b, &in); err != nil {
		*v = FieldValue{Type: FieldTypeInvalid}
		return nil
	}

	switch in.Type {
	case FieldTypeString:
		var s string
		if err := json.Unmarshal(in.Value, &s); err != nil {
			*v = FieldValue{Type: FieldTypeInvalid}
			return nil
		}
		*v = StringValue(s)
	case FieldTypeTimestamp:
		t, ok := parseTimestamp(in.Value)
		if !ok {
			*v = FieldValue{Type: FieldTypeInvalid}
			return nil
		}
		*v = TimeValue(t)
	default:
		*v = FieldValue{Type: in.Type}
	}
	return nil
}

// parseTimestamp acepta RFC3339 (lo que escribimos) o milisegundos epoch
// (lo que devuelve CloudKit Web Services).
func parseTimestamp(raw json.RawMessage) (time.Time, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		t, err := time.Parse(time.RFC3339Nano, s)
		return t, err == nil
	}

	var ms int64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}
