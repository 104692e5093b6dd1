// Package advisory implements the message processor against the farming
// advisory backend. The understanding logic lives behind the HTTP boundary;
// this client only carries the turn across it.
package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	conversation "github.com/krishisetu/sakhi-core/core"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/codes"
)

const respondPath = "/api/assistant/respond"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithBaseURL overrides the backend URL taken from SAKHI_ADVISORY_URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(opts ...Option) (*Client, error) {
	client := &Client{
		baseURL: os.Getenv("SAKHI_ADVISORY_URL"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.baseURL == "" {
		return nil, fmt.Errorf("advisory backend url not found")
	}
	return client, nil
}

type wireMessage struct {
	ID           string              `json:"id"`
	Sender       conversation.Sender `json:"sender"`
	Text         string              `json:"text"`
	Timestamp    time.Time           `json:"timestamp"`
	QuickActions []string            `json:"quickActions,omitempty"`
}

type respondRequest struct {
	RequestID   string          `json:"requestId"`
	Text        string          `json:"text"`
	History     []wireMessage   `json:"history"`
	ReplySchema json.RawMessage `json:"replySchema"`
}

type respondReply struct {
	Message struct {
		Text         string   `json:"text"`
		QuickActions []string `json:"quickActions,omitempty"`
	} `json:"message"`
	RequiresConsent bool `json:"requiresConsent"`
	ConsentRequest  *struct {
		Action string `json:"action"`
		Detail string `json:"detail,omitempty"`
	} `json:"consentRequest,omitempty"`
}

// Process sends the user turn and prior history to the backend and maps its
// reply onto the orchestrator's result shape.
func (c *Client) Process(ctx context.Context, text string, history []conversation.Message) (*conversation.ProcessorResult, error) {
	ctx, span := tracer.Start(ctx, "process advisory turn")
	defer span.End()

	wireHistory := []wireMessage{}
	if err := copier.Copy(&wireHistory, &history); err != nil {
		return nil, fmt.Errorf("failed to copy history: %w", err)
	}

	schema, err := replySchema()
	if err != nil {
		return nil, fmt.Errorf("failed to build reply schema: %w", err)
	}

	body, err := json.Marshal(respondRequest{
		RequestID:   uuid.NewString(),
		Text:        text,
		History:     wireHistory,
		ReplySchema: schema,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+respondPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		recordedErr := fmt.Errorf("advisory backend unreachable: %w", err)
		logger.Error("Failed to reach advisory backend", "error", err)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		return nil, recordedErr
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		recordedErr := fmt.Errorf("advisory backend responded with status %d", response.StatusCode)
		logger.Error("Advisory backend rejected the turn", "status", response.StatusCode)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		return nil, recordedErr
	}

	var reply respondReply
	if err := json.NewDecoder(response.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("failed to decode reply: %w", err)
	}

	result := &conversation.ProcessorResult{
		Message:         conversation.NewAgentMessage(reply.Message.Text, reply.Message.QuickActions...),
		RequiresConsent: reply.RequiresConsent,
	}
	if reply.ConsentRequest != nil {
		result.ConsentRequest = &conversation.ConsentRequest{
			ID:     uuid.NewString(),
			Action: reply.ConsentRequest.Action,
			Detail: reply.ConsentRequest.Detail,
		}
	}
	return result, nil
}
