package advisory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	conversation "github.com/krishisetu/sakhi-core/core"
)

func TestProcessCarriesTurnAndMapsReply(t *testing.T) {
	var received respondRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != respondPath {
			t.Errorf("expected request to %s, got %s", respondPath, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"message": {"text": "Sow wheat after the first rains.", "quickActions": ["Weather forecast"]},
			"requiresConsent": true,
			"consentRequest": {"action": "share my soil report", "detail": "Send it to the advisor."}
		}`))
	}))
	defer server.Close()

	client, err := NewClient(WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	history := []conversation.Message{
		conversation.NewAgentMessage("Namaste!"),
		conversation.NewUserMessage("what should I sow"),
	}
	result, err := client.Process(context.Background(), "what about wheat", history)
	if err != nil {
		t.Fatalf("expected process to succeed, got error: %v", err)
	}

	if received.Text != "what about wheat" {
		t.Fatalf("expected the user text on the wire, got %q", received.Text)
	}
	if len(received.History) != 2 || received.History[1].Sender != conversation.SenderUser {
		t.Fatalf("expected the prior history on the wire, got %+v", received.History)
	}
	if received.RequestID == "" {
		t.Fatalf("expected a request id on the wire")
	}
	if len(received.ReplySchema) == 0 {
		t.Fatalf("expected the reply schema on the wire")
	}

	if result.Message.Sender != conversation.SenderAgent {
		t.Fatalf("expected an agent message, got %+v", result.Message)
	}
	if result.Message.Text != "Sow wheat after the first rains." {
		t.Fatalf("unexpected reply text %q", result.Message.Text)
	}
	if len(result.Message.QuickActions) != 1 || result.Message.QuickActions[0] != "Weather forecast" {
		t.Fatalf("expected quick actions to carry over, got %v", result.Message.QuickActions)
	}
	if !result.RequiresConsent || result.ConsentRequest == nil {
		t.Fatalf("expected the consent request to carry over, got %+v", result)
	}
	if result.ConsentRequest.Action != "share my soil report" {
		t.Fatalf("unexpected consent action %q", result.ConsentRequest.Action)
	}
}

func TestProcessReportsBackendFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "backend exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.Process(context.Background(), "hello", nil); err == nil {
		t.Fatalf("expected an error for a failing backend")
	}
}

func TestNewClientRequiresABaseURL(t *testing.T) {
	t.Setenv("SAKHI_ADVISORY_URL", "")

	if _, err := NewClient(); err == nil {
		t.Fatalf("expected an error without a backend url")
	}
}

func TestReplySchemaDescribesTheReplyShape(t *testing.T) {
	schema, err := replySchema()
	if err != nil {
		t.Fatalf("failed to build reply schema: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(schema, &decoded); err != nil {
		t.Fatalf("reply schema is not valid JSON: %v", err)
	}
	properties, ok := decoded["properties"].(map[string]any)
	if !ok {
		t.Fatalf("expected schema properties, got %v", decoded)
	}
	for _, name := range []string{"message", "requiresConsent"} {
		if _, ok := properties[name]; !ok {
			t.Fatalf("expected schema to describe %q, got %v", name, properties)
		}
	}
}
