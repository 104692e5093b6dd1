// Package deepgram renders speech through Deepgram's streaming speak API.
package deepgram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/krishisetu/sakhi-core/core/audio"
	"github.com/krishisetu/sakhi-core/core/synthesis"
)

type SpeechClient struct {
	activeRequest *speakRequest
	mu            sync.Mutex
}

func NewSpeechClient() *SpeechClient {
	return &SpeechClient{}
}

// Speak renders text as speech, delivering audio through the option
// callbacks. A new request replaces any in-flight one; the replaced
// request's audio stops and its EndedCallback never fires. Pitch and rate
// are accepted but not adjustable on this provider.
func (c *SpeechClient) Speak(ctx context.Context, text string, opts ...synthesis.SpeechOption) error {
	options := &synthesis.SpeechOptions{
		Voice:        defaultVoiceModel,
		Pitch:        1,
		Rate:         1,
		EncodingInfo: audio.GetDefaultEncodingInfo(),
	}
	for _, opt := range opts {
		opt(options)
	}

	if options.Voice == "" {
		options.Voice = defaultVoiceModel
	}
	if !isKnownVoice(options.Voice) {
		return fmt.Errorf("unknown voice %q", options.Voice)
	}

	conn, err := connectWebsocket(options.Voice, options.EncodingInfo)
	if err != nil {
		return fmt.Errorf("failed to open websocket: %w", err)
	}

	req := &speakRequest{ws: conn, options: *options}

	c.mu.Lock()
	if previous := c.activeRequest; previous != nil {
		_ = previous.cancel()
	}
	c.activeRequest = req
	c.mu.Unlock()

	if err := req.sendWebsocketMessage(speakMsg(text)); err != nil {
		_ = req.close()
		return fmt.Errorf("failed to send text to deepgram through websocket: %w", err)
	}
	if err := req.sendWebsocketMessage(flushMsg); err != nil {
		_ = req.close()
		return fmt.Errorf("failed to flush deepgram buffer through websocket: %w", err)
	}

	go req.processIncomingMessages(ctx)

	return nil
}

// Cancel stops the in-flight request, if any. Audio already handed to the
// AudioCallback is not recalled.
func (c *SpeechClient) Cancel() error {
	c.mu.Lock()
	req := c.activeRequest
	c.activeRequest = nil
	c.mu.Unlock()

	if req == nil {
		return nil
	}
	return req.cancel()
}

func connectWebsocket(voice string, encodingInfo audio.EncodingInfo) (*websocket.Conn, error) {
	apiKey, ok := os.LookupEnv("DEEPGRAM_API_KEY")
	if !ok {
		return nil, fmt.Errorf("deepgram api key not found")
	}

	urlValues := url.Values{}
	urlValues.Set("encoding", encodingInfo.Format.Name())
	urlValues.Set("sample_rate", strconv.Itoa(encodingInfo.SampleRate))
	urlValues.Set("model", voice)
	urlValues.Set("container", "none")

	conn, _, err := websocket.DefaultDialer.Dial(
		(&url.URL{
			Scheme: "wss",
			Host:   "api.deepgram.com", Path: "/v1/speak",
			RawQuery: urlValues.Encode(),
		}).String(),
		http.Header{"Authorization": {"token " + apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}

type speakRequest struct {
	ws *websocket.Conn
	mu sync.Mutex

	options synthesis.SpeechOptions

	started   bool
	cancelled bool
	closed    bool
}

func (r *speakRequest) processIncomingMessages(_ context.Context) {
	for {
		msgType, msg, err := r.ws.ReadMessage()
		if err != nil {
			if r.cancelled || r.closed ||
				websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				_ = r.close()
				return
			}

			log.Printf("Websocket read error: %v", err)
			if r.options.ErrorCallback != nil {
				r.options.ErrorCallback(fmt.Errorf("speech stream failed: %w", err))
			}
			_ = r.close()
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			if len(msg) == 0 {
				continue
			}
			if !r.started {
				r.started = true
				if r.options.StartedCallback != nil {
					r.options.StartedCallback()
				}
			}
			if r.options.AudioCallback != nil {
				r.options.AudioCallback(msg)
			}
		case websocket.TextMessage:
			var parsedMsg struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(msg, &parsedMsg); err != nil {
				continue
			}

			switch parsedMsg.Type {
			case "Flushed":
				if !r.cancelled && r.options.EndedCallback != nil {
					r.options.EndedCallback()
				}
				_ = r.close()
				return
			case "Error":
				var errMsg struct {
					Description string `json:"description"`
				}
				_ = json.Unmarshal(msg, &errMsg)
				if r.options.ErrorCallback != nil {
					r.options.ErrorCallback(fmt.Errorf("speech synthesis failed: %s", errMsg.Description))
				}
				_ = r.close()
				return
			}
		}
	}
}

func (r *speakRequest) cancel() error {
	if r.closed {
		return nil
	}

	r.cancelled = true
	if err := r.sendWebsocketMessage(clearMsg); err != nil {
		return r.close()
	}
	return r.close()
}

func (r *speakRequest) close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}

	r.closed = true
	if err := r.ws.WriteJSON(closeMsg); err != nil {
		if aggressiveCloseErr := r.ws.Close(); aggressiveCloseErr != nil {
			return fmt.Errorf("failed to close websocket: %w", errors.Join(err, aggressiveCloseErr))
		}
	}
	return nil
}

type websocketMessage struct {
	Type string `json:"type"`
}

var (
	speakMsg = func(text string) struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} {
		return struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{Type: "Speak", Text: text}
	}
	flushMsg = websocketMessage{Type: "Flush"}
	clearMsg = websocketMessage{Type: "Clear"}
	closeMsg = websocketMessage{Type: "Close"}
)

func (r *speakRequest) sendWebsocketMessage(msg any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("websocket connection closed")
	} else if r.ws == nil {
		return fmt.Errorf("websocket connection closed")
	}

	if err := r.ws.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write to websocket: %w", err)
	}
	return nil
}
