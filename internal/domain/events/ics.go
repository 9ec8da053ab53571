package events

import (
	"time"

	ical "github.com/arran4/golang-ical"
)

const icsProductID = "-//cloud-events-sync//events//ES"

// ExportICS serializa eventos como VCALENDAR. Sólo la fecha del evento es
// significativa, así que se exportan como eventos de día completo.
func ExportICS(items []Event, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)

	for _, e := range items {
		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(now)
		ve.SetAllDayStartAt(e.Date)
		ve.SetSummary(e.Title)
		ve.SetLocation(e.Venue)
		ve.SetDescription(e.Description)
	}
	return cal.Serialize()
}
