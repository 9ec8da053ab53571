package events

import "time"

// Event es la entidad que se sincroniza con el record store remoto.
// ID es la clave de unión con el record remoto y no cambia nunca.
type Event struct {
	ID          string
	Title       string
	Venue       string
	Description string
	Date        time.Time
}

type CreateInput struct {
	Title       string
	Venue       string
	Description string
	Date        time.Time
}

// SampleEvents devuelve eventos de ejemplo para sembrar un backend vacío en dev.
func SampleEvents(now time.Time) []Event {
	return []Event{
		{
			ID:          "sample-my-concert",
			Title:       "My Concert",
			Venue:       "The Club",
			Description: "We're playing some of our greatest hits.",
			Date:        now,
		},
		{
			ID:          "sample-baby-shower",
			Title:       "Baby Shower",
			Venue:       "Mom's House",
			Description: "Come wash our baby, they rolled in the mud and we need help cleaning them up.",
			Date:        now,
		},
	}
}
