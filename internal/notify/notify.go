package notify

import (
	"encoding/json"
	"time"

	"cloud-events-sync/internal/domain/events"
	"cloud-events-sync/internal/platform/logger"
	"cloud-events-sync/internal/platform/natsutil"

	"github.com/nats-io/nuid"
)

// StateChanged es el mensaje publicado en cada transición del controller.
type StateChanged struct {
	NotificationID string       `json:"notification_id"`
	ContainerID    string       `json:"container_id"`
	Phase          events.Phase `json:"phase"`
	Error          string       `json:"error,omitempty"`
	CacheSize      int          `json:"cache_size"`
	OccurredAt     time.Time    `json:"occurred_at"`
}

type Notifier struct {
	pub         natsutil.Publisher
	subject     string
	containerID string
	log         logger.Logger

	Now   func() time.Time
	NewID func() string
}

func New(pub natsutil.Publisher, subject, containerID string, log logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{
		pub:         pub,
		subject:     subject,
		containerID: containerID,
		log:         log.With(map[string]any{"component": "notify", "subject": subject}),
		Now:         func() time.Time { return time.Now().UTC() },
		NewID:       nuid.Next,
	}
}

// Attach suscribe el notifier al controller. Un publish fallido se loguea y no
// afecta al estado del controller.
func (n *Notifier) Attach(c *events.Controller) (detach func()) {
	return c.Subscribe(func(s events.State) {
		msg := StateChanged{
			NotificationID: n.NewID(),
			ContainerID:    n.containerID,
			Phase:          s.Phase,
			CacheSize:      len(c.Events()),
			OccurredAt:     n.Now(),
		}
		if s.Err != nil {
			msg.Error = s.Err.Error()
		}

		payload, err := json.Marshal(msg)
		if err != nil {
			n.log.Error("marshal state notification", map[string]any{"error": err.Error()})
			return
		}
		if err := n.pub.Publish(n.subject, payload); err != nil {
			n.log.Warn("publish state notification failed", map[string]any{"error": err.Error()})
		}
	})
}
