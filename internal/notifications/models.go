package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DecisionType identifies which approval decision produced an event.
type DecisionType string

const (
	DecisionApproved DecisionType = "APPLICATION_APPROVED"
	DecisionRejected DecisionType = "APPLICATION_REJECTED"
	DecisionReverted DecisionType = "APPLICATION_REVERTED"
)

// DecisionEvent is the message published after an MPP administrator
// decides a facility application. Downstream consumers (email, audit)
// read these off the decision topic.
type DecisionEvent struct {
	ID            uuid.UUID    `json:"id"`
	Type          DecisionType `json:"type"`
	ApplicationID uuid.UUID    `json:"application_id"`
	BusinessID    uuid.UUID    `json:"business_id"`
	BusinessName  string       `json:"business_name"`
	OwnerID       uuid.UUID    `json:"owner_id"`
	OwnerEmail    string       `json:"owner_email"`
	EventName     string       `json:"event_name"`
	FacilityName  string       `json:"facility_name"`
	Quantity      int          `json:"quantity"`
	Reason        string       `json:"reason,omitempty"`
	OccurredAt    time.Time    `json:"occurred_at"`
}

// NewDecisionEvent fills the envelope fields.
func NewDecisionEvent(decisionType DecisionType) *DecisionEvent {
	return &DecisionEvent{
		ID:         uuid.New(),
		Type:       decisionType,
		OccurredAt: time.Now(),
	}
}

func (e *DecisionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func DecisionEventFromJSON(data []byte) (*DecisionEvent, error) {
	var event DecisionEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// PartitionKey keeps every event for one application on the same
// partition so consumers see a coherent decision history.
func (e *DecisionEvent) PartitionKey() string {
	return e.ApplicationID.String()
}
