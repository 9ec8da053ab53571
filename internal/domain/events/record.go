package events

// EncodeEvent arma el record remoto de e, con nombre e.ID.
func EncodeEvent(e Event) Record {
	return Record{
		Kind:   RecordKind,
		Name:   e.ID,
		Fields: encodeFields(e),
	}
}

func encodeFields(e Event) map[string]FieldValue {
	return map[string]FieldValue{
		FieldTitle:       StringValue(e.Title),
		FieldVenue:       StringValue(e.Venue),
		FieldDescription: StringValue(e.Description),
		FieldDate:        TimeValue(e.Date),
	}
}

// DecodeEvent devuelve ok=false si falta algún campo o tiene otro tipo.
func DecodeEvent(r Record) (Event, bool) {
	title, ok := stringField(r.Fields, FieldTitle)
	if !ok {
		return Event{}, false
	}
	venue, ok := stringField(r.Fields, FieldVenue)
	if !ok {
		return Event{}, false
	}
	desc, ok := stringField(r.Fields, FieldDescription)
	if !ok {
		return Event{}, false
	}
	date, ok := r.Fields[FieldDate]
	if !ok || date.Type != FieldTypeTimestamp {
		return Event{}, false
	}

	return Event{
		ID:          r.Name,
		Title:       title,
		Venue:       venue,
		Description: desc,
		Date:        date.Time,
	}, true
}

func stringField(fields map[string]FieldValue, name string) (string, bool) {
	v, ok := fields[name]
	if !ok || v.Type != FieldTypeString {
		return "", false
	}
	return v.Str, true
}
