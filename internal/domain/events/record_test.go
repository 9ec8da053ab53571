package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	e := Event{
		ID:          "abc-123",
		Title:       "Concert",
		Venue:       "",
		Description: "línea 1\nlínea 2 \"quoted\"",
		Date:        time.Date(2024, 6, 1, 23, 59, 59, 123456789, time.FixedZone("UTC-3", -3*3600)),
	}

	got, ok := DecodeEvent(EncodeEvent(e))
	if !ok {
		t.Fatalf("expected decode ok")
	}
	if got.ID != e.ID || got.Title != e.Title || got.Venue != e.Venue || got.Description != e.Description {
		t.Fatalf("field mismatch: %#v vs %#v", got, e)
	}
	if !got.Date.Equal(e.Date) {
		t.Fatalf("date mismatch: %s vs %s", got.Date, e.Date)
	}
}

func TestEncodeDecode_RoundTripThroughJSON(t *testing.T) {
	e := Event{ID: "x", Title: "T", Venue: "V", Description: "D", Date: time.Date(2024, 6, 1, 0, 0, 0, 1, time.UTC)}

	raw, err := json.Marshal(EncodeEvent(e).Fields)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]FieldValue
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got, ok := DecodeEvent(Record{Kind: RecordKind, Name: "x", Fields: fields})
	if !ok || got.Title != "T" || !got.Date.Equal(e.Date) {
		t.Fatalf("unexpected decode %#v ok=%v", got, ok)
	}
}

func TestDecodeEvent_DropsMissingOrMistypedFields(t *testing.T) {
	base := EncodeEvent(Event{ID: "x", Title: "T", Venue: "V", Description: "D", Date: time.Now()})

	for _, name := range []string{FieldTitle, FieldVenue, FieldDescription, FieldDate} {
		missing := Record{Name: "x", Fields: map[string]FieldValue{}}
		for k, v := range base.Fields {
			if k != name {
				missing.Fields[k] = v
			}
		}
		if _, ok := DecodeEvent(missing); ok {
			t.Fatalf("expected drop when %s is missing", name)
		}
	}

	mistyped := Record{Name: "x", Fields: map[string]FieldValue{}}
	for k, v := range base.Fields {
		mistyped.Fields[k] = v
	}
	mistyped.Fields[FieldDate] = StringValue("2024-06-01")
	if _, ok := DecodeEvent(mistyped); ok {
		t.Fatalf("expected drop when date is a string")
	}

	mistyped.Fields[FieldDate] = base.Fields[FieldDate]
	mistyped.Fields[FieldTitle] = TimeValue(time.Now())
	if _, ok := DecodeEvent(mistyped); ok {
		t.Fatalf("expected drop when title is a date")
	}
}

func TestFieldValue_UnmarshalNeverFails(t *testing.T) {
	cases := []struct {
		in   string
		want FieldType
	}{
		{`{"type":"STRING","value":"ok"}`, FieldTypeString},
		{`{"type":"STRING","value":12}`, FieldTypeInvalid},
		{`{"type":"TIMESTAMP","value":"nope"}`, FieldTypeInvalid},
		{`{"type":"TIMESTAMP","value":1.5}`, FieldTypeInvalid},
		{`{"type":"TIMESTAMP","value":true}`, FieldTypeInvalid},
		{`{"type":"INT64","value":12}`, FieldType("INT64")},
		{`"just a string"`, FieldTypeInvalid},
		{`{"type":"TIMESTAMP","value":"2024-06-01T10:00:00.5Z"}`, FieldTypeTimestamp},
		{`{"type":"TIMESTAMP","value":1717200000000}`, FieldTypeTimestamp},
	}
	for _, tc := range cases {
		var v FieldValue
		if err := json.Unmarshal([]byte(tc.in), &v); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if v.Type != tc.want {
			t.Fatalf("%s: expected type %s, got %s", tc.in, tc.want, v.Type)
		}
	}
}

func TestFieldValue_TimestampAcceptsEpochMillis(t *testing.T) {
	var v FieldValue
	if err := json.Unmarshal([]byte(`{"type":"TIMESTAMP","value":1717200000123}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := time.Date(2024, 6, 1, 0, 0, 0, 123000000, time.UTC)
	if v.Type != FieldTypeTimestamp || !v.Time.Equal(want) {
		t.Fatalf("expected %v, got %#v", want, v)
	}
}
