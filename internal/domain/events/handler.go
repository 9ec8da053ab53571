package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

var ErrInvalidInput = errors.New("invalid input")

func RegisterRoutes(r chi.Router, c *Controller) {
	r.Route("/events", func(er chi.Router) {
		er.Get("/", snapshotHandler(c))
		er.Post("/", createEventHandler(c))
		er.Post("/refresh", refreshHandler(c))
		er.Put("/{eventID}", updateEventHandler(c))
		er.Delete("/{eventID}", deleteEventHandler(c))
	})

	r.Get("/events.ics", icsHandler(c))

	r.Route("/state", func(sr chi.Router) {
		sr.Get("/", stateHandler(c))
		sr.Post("/reset", resetStateHandler(c))
	})
}

// eventRequest es el cuerpo para crear o reemplazar un evento.
type eventRequest struct {
	Title       string `json:"title"`
	Venue       string `json:"venue"`
	Description string `json:"description"`
	Date        string `json:"date"` // RFC3339
}

// eventResponse representa un evento del cache local.
type eventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Venue       string    `json:"venue"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// stateResponse es el estado de aplicación: loading | loaded | failed.
type stateResponse struct {
	Phase Phase  `json:"phase" enums:"loading,loaded,failed"`
	Error string `json:"error,omitempty"`
}

// snapshotResponse es estado + cache en un mismo momento.
type snapshotResponse struct {
	State  stateResponse   `json:"state"`
	Events []eventResponse `json:"events"`
}

// snapshotHandler godoc
// @Summary Snapshot del cache
// @Description Devuelve el estado actual y el cache local de eventos, sin llamar al store remoto.
// @Tags events
// @Produce json
// @Success 200 {object} snapshotResponse
// @Router /events [get]
func snapshotHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, toSnapshot(c))
	}
}

// refreshHandler godoc
// @Summary Recargar eventos
// @Description Trae todos los eventos del store remoto y reemplaza el cache completo.
// @Tags events
// @Produce json
// @Success 200 {object} snapshotResponse
// @Failure 503 {object} snapshotResponse "store no disponible"
// @Router /events/refresh [post]
func refreshHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := c.FetchAll(r.Context())
		writeJSON(w, statusFor(err, http.StatusOK), toSnapshot(c))
	}
}

// createEventHandler godoc
// @Summary Crear evento
// @Description Crea el evento en el store remoto con un id nuevo y, si sale bien, lo agrega al cache.
// @Tags events
// @Accept json
// @Produce json
// @Param payload body eventRequest true "Datos del evento; date en formato RFC3339"
// @Success 201 {object} eventResponse
// @Failure 400 {string} string "invalid json / campos vacíos / date inválido"
// @Failure 409 {object} snapshotResponse "id duplicado"
// @Failure 503 {object} snapshotResponse "store no disponible"
// @Router /events [post]
func createEventHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeEventRequest(w, r)
		if !ok {
			return
		}

		e, err := c.Create(r.Context(), in)
		if err != nil {
			writeJSON(w, statusFor(err, http.StatusOK), toSnapshot(c))
			return
		}
		writeJSON(w, http.StatusCreated, toEventResponse(e))
	}
}

// updateEventHandler godoc
// @Summary Reemplazar evento
// @Description Reemplaza todos los campos del evento indicado. Nunca crea: si no existe en remoto devuelve 404.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "ID del evento"
// @Param payload body eventRequest true "Nuevos datos del evento"
// @Success 200 {object} eventResponse
// @Failure 400 {string} string "invalid json / campos vacíos / date inválido"
// @Failure 404 {object} snapshotResponse "event not found"
// @Failure 503 {object} snapshotResponse "store no disponible"
// @Router /events/{eventID} [put]
func updateEventHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeEventRequest(w, r)
		if !ok {
			return
		}

		e := Event{
			ID:          chi.URLParam(r, "eventID"),
			Title:       in.Title,
			Venue:       in.Venue,
			Description: in.Description,
			Date:        in.Date,
		}
		if err := c.Update(r.Context(), e); err != nil {
			writeJSON(w, statusFor(err, http.StatusOK), toSnapshot(c))
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(e))
	}
}

// deleteEventHandler godoc
// @Summary Borrar evento
// @Description Borra el evento del store remoto y, si sale bien, del cache.
// @Tags events
// @Produce json
// @Param eventID path string true "ID del evento"
// @Success 200 {object} snapshotResponse
// @Failure 404 {object} snapshotResponse "event not found"
// @Failure 503 {object} snapshotResponse "store no disponible"
// @Router /events/{eventID} [delete]
func deleteEventHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "eventID")
		err := c.Delete(r.Context(), findCached(c, id))
		writeJSON(w, statusFor(err, http.StatusOK), toSnapshot(c))
	}
}

// icsHandler godoc
// @Summary Exportar calendario
// @Description Exporta el cache local como iCalendar (eventos de día completo).
// @Tags events
// @Produce text/calendar
// @Success 200 {string} string "VCALENDAR"
// @Router /events.ics [get]
func icsHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(ExportICS(c.Events(), time.Now().UTC())))
	}
}

// stateHandler godoc
// @Summary Estado de aplicación
// @Tags state
// @Produce json
// @Success 200 {object} stateResponse
// @Router /state [get]
func stateHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, toStateResponse(c.State()))
	}
}

// resetStateHandler godoc
// @Summary Descartar error
// @Description Vuelve el estado a loaded sin reintentar la operación fallida.
// @Tags state
// @Produce json
// @Success 200 {object} stateResponse
// @Router /state/reset [post]
func resetStateHandler(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.Reset()
		writeJSON(w, http.StatusOK, toStateResponse(c.State()))
	}
}

// decodeEventRequest valida lo que el core no valida: strings no vacíos y fecha.
func decodeEventRequest(w http.ResponseWriter, r *http.Request) (CreateInput, bool) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return CreateInput{}, false
	}

	in, err := req.toInput()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return CreateInput{}, false
	}
	return in, true
}

func (req eventRequest) toInput() (CreateInput, error) {
	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Venue) == "" ||
		strings.TrimSpace(req.Description) == "" {
		return CreateInput{}, fmt.Errorf("%w: title, venue and description are required", ErrInvalidInput)
	}
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(req.Date))
	if err != nil {
		return CreateInput{}, fmt.Errorf("%w: date must be RFC3339", ErrInvalidInput)
	}
	return CreateInput{
		Title:       req.Title,
		Venue:       req.Venue,
		Description: req.Description,
		Date:        t,
	}, nil
}

// findCached devuelve la entrada del cache o, si no está, un Event con sólo el id
// (delete sólo necesita el id).
func findCached(c *Controller, id string) Event {
	for _, e := range c.Events() {
		if e.ID == id {
			return e
		}
	}
	return Event{ID: id}
}

func statusFor(err error, ok int) int {
	switch {
	case err == nil:
		return ok
	case errors.Is(err, ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateIdentifier):
		return http.StatusConflict
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func toSnapshot(c *Controller) snapshotResponse {
	items := c.Events()
	out := make([]eventResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toEventResponse(e))
	}
	return snapshotResponse{
		State:  toStateResponse(c.State()),
		Events: out,
	}
}

func toStateResponse(s State) stateResponse {
	out := stateResponse{Phase: s.Phase}
	if s.Err != nil {
		out.Error = s.Err.Error()
	}
	return out
}

func toEventResponse(e Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Venue:       e.Venue,
		Description: e.Description,
		Date:        e.Date,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
