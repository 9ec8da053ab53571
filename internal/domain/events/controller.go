package events

import (
	"context"
	"sync"

	"cloud-events-sync/internal/platform/logger"

	"github.com/google/uuid"
)

// EventStore es lo que el Controller necesita del store remoto (lo implementa *Store).
type EventStore interface {
	Create(ctx context.Context, e Event) error
	FetchAll(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, e Event) error
	Delete(ctx context.Context, e Event) error
}

// Controller es el único punto de entrada para la capa de presentación.
// Dueño del cache local y del State.
//
// Política de concurrencia: las operaciones se serializan con opMu; una segunda
// llamada espera a que termine la que está en vuelo. State, Events y Reset no
// esperan a la operación en curso.
type Controller struct {
	store EventStore
	log   logger.Logger
	newID func() string

	opMu sync.Mutex

	// notifyMu cubre aplicar + notificar, así los listeners ven las
	// transiciones en el mismo orden en que se aplicaron.
	notifyMu sync.Mutex

	mu        sync.RWMutex
	state     State
	cache     []Event
	listeners map[int]func(State)
	nextSub   int
}

func NewController(store EventStore, log logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		store:     store,
		log:       log.With(map[string]any{"component": "event_sync"}),
		newID:     uuid.NewString,
		state:     Loaded(),
		cache:     []Event{},
		listeners: map[int]func(State){},
	}
}

// State devuelve el estado actual.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Events devuelve una copia del cache.
func (c *Controller) Events() []Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Event, len(c.cache))
	copy(out, c.cache)
	return out
}

// Reset vuelve a Loaded sin reintentar nada (p.ej. al cerrar un banner de error).
func (c *Controller) Reset() {
	c.setState(Loaded(), nil)
}

// Subscribe registra fn para cada transición de estado, incluidas las de Reset.
// Las transiciones llegan en el orden en que se aplicaron y el último estado
// notificado coincide con State(). Devuelve la función para desuscribirse.
//
// fn corre en la goroutine que hizo la transición: puede leer State y Events,
// pero no debe llamar a Reset ni a una operación (FetchAll, Create, Update,
// Delete) porque se bloquea para siempre.
func (c *Controller) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// FetchAll reemplaza el cache completo con lo que devuelva el store.
func (c *Controller) FetchAll(ctx context.Context) error {
	return c.run(ctx, "fetch_all", nil, func(ctx context.Context) (func([]Event) []Event, error) {
		items, err := c.store.FetchAll(ctx)
		if err != nil {
			return nil, err
		}
		return func([]Event) []Event {
			out := make([]Event, len(items))
			copy(out, items)
			return out
		}, nil
	})
}

// Create genera un id nuevo, crea el record remoto y recién ahí lo agrega al cache.
func (c *Controller) Create(ctx context.Context, in CreateInput) (Event, error) {
	e := Event{
		ID:          c.newID(),
		Title:       in.Title,
		Venue:       in.Venue,
		Description: in.Description,
		Date:        in.Date,
	}

	err := c.run(ctx, "create", map[string]any{"event_id": e.ID}, func(ctx context.Context) (func([]Event) []Event, error) {
		if err := c.store.Create(ctx, e); err != nil {
			return nil, err
		}
		return func(cache []Event) []Event {
			return append(cache, e)
		}, nil
	})
	if err != nil {
		return Event{}, err
	}
	return e, nil
}

// Update reemplaza la entrada con el mismo id; la entrada actualizada queda al final.
func (c *Controller) Update(ctx context.Context, e Event) error {
	return c.run(ctx, "update", map[string]any{"event_id": e.ID}, func(ctx context.Context) (func([]Event) []Event, error) {
		if err := c.store.Update(ctx, e); err != nil {
			return nil, err
		}
		return func(cache []Event) []Event {
			return append(removeByID(cache, e.ID), e)
		}, nil
	})
}

func (c *Controller) Delete(ctx context.Context, e Event) error {
	return c.run(ctx, "delete", map[string]any{"event_id": e.ID}, func(ctx context.Context) (func([]Event) []Event, error) {
		if err := c.store.Delete(ctx, e); err != nil {
			return nil, err
		}
		return func(cache []Event) []Event {
			return removeByID(cache, e.ID)
		}, nil
	})
}

// run aplica el contrato de tres fases: Loading -> llamada remota -> Loaded | Failed.
// call devuelve la mutación del cache a aplicar sólo si la llamada remota salió bien.
func (c *Controller) run(
	ctx context.Context,
	op string,
	fields map[string]any,
	call func(ctx context.Context) (func([]Event) []Event, error),
) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	log := c.log.With(fields).With(map[string]any{"op": op})

	c.setState(Loading(), nil)
	log.Debug("operation started", nil)

	mutate, err := call(ctx)
	if err != nil {
		log.Warn("operation failed", map[string]any{"error": err.Error()})
		c.setState(Failed(err), nil)
		return err
	}

	c.setState(Loaded(), mutate)
	log.Debug("operation finished", nil)
	return nil
}

// setState cambia el estado (y opcionalmente el cache) bajo mu y notifica a los
// listeners fuera de mu pero dentro de notifyMu.
func (c *Controller) setState(s State, mutate func([]Event) []Event) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if mutate != nil {
		c.cache = mutate(c.cache)
	}
	c.state = s
	listeners := make([]func(State), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}

func removeByID(cache []Event, id string) []Event {
	out := make([]Event, 0, len(cache))
	for _, e := range cache {
		if e.ID == id {
			continue
		}
		out = append(out, e)
	}
	return out
}
