package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventMatchingDataChanged = "matching_data_changed"
	EventMatchingCompleted   = "matching_completed"
)

type Event struct {
	Type       string     `json:"type"`
	ProjectID  *uuid.UUID `json:"project_id,omitempty"`
	EmployeeID *uuid.UUID `json:"employee_id,omitempty"`
	Reason     string     `json:"reason,omitempty"`
	Timestamp  string     `json:"timestamp"`
}

// Notifier publishes matching events. A nil *Notifier or one without a hub
// silently drops events.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

// DataChanged tells clients that cached matching results are stale.
func (n *Notifier) DataChanged(employeeID uuid.UUID, reason string) {
	evt := Event{Type: EventMatchingDataChanged, Reason: reason}
	if employeeID != uuid.Nil {
		evt.EmployeeID = &employeeID
	}
	n.publish(evt)
}

func (n *Notifier) MatchingCompleted(projectID uuid.UUID) {
	n.publish(Event{Type: EventMatchingCompleted, ProjectID: &projectID})
}

func (n *Notifier) publish(evt Event) {
	if n == nil || n.hub == nil {
		return
	}
	evt.Timestamp = n.now().UTC().Format(time.RFC3339)
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
