package realtime

import (
	"encoding/json"
	"testing"
)

func TestEmitWithoutClients(t *testing.T) {
	hub := NewHub()

	// Broadcasting into an empty hub must be a no-op
	hub.Emit(EventDisasterUpdated, map[string]string{"action": "create"})

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("ClientCount() = %d, want 0", got)
	}
}

func TestMessageEnvelope(t *testing.T) {
	msg := message{
		Event:   EventReportUpdated,
		Payload: map[string]string{"action": "update", "reportId": "abc"},
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Event   string            `json:"event"`
		Payload map[string]string `json:"payload"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Event != EventReportUpdated {
		t.Errorf("event = %q, want %q", decoded.Event, EventReportUpdated)
	}
	if decoded.Payload["action"] != "update" {
		t.Errorf("payload action = %q, want %q", decoded.Payload["action"], "update")
	}
}
