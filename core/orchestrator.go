// Package conversation orchestrates the voice side of an advisory
// conversation: continuous speech capture, deterministic persona voice
// assignment, single-flight playback, and a consent-gated message pipeline.
package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/krishisetu/sakhi-core/core/recognition"
	"github.com/krishisetu/sakhi-core/core/voices"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Orchestrator struct {
	capture  *captureSession
	playback *playbackManager

	processor MessageProcessor

	messages       messageLog
	processing     bool
	consentRequest *ConsentRequest
	stateMu        sync.Mutex

	audioInput AudioInput

	greeting         string
	defaultPersonaID string

	orchestrateOptions OrchestrateOptions
	baseContext        context.Context
	closeOnce          sync.Once
}

func NewOrchestrator(opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		baseContext: context.Background(),
	}
	o.capture = newCaptureSession(nil)
	o.playback = newPlaybackManager(nil)

	for _, opt := range opts {
		opt(o)
	}

	if o.defaultPersonaID == "" && len(o.playback.catalog) > 0 {
		o.defaultPersonaID = o.playback.catalog[0].ID
	}
	o.playback.defaultPersonaID = o.defaultPersonaID

	return o
}

// Orchestrate wires the capture, playback, and processor pipeline together
// and starts listening for device audio if an input is configured.
//
// Call Orchestrate at most once per orchestrator instance; callbacks are
// reconfigured while it runs.
func (o *Orchestrator) Orchestrate(ctx context.Context, opts ...OrchestrateOption) {
	o.orchestrateOptions = OrchestrateOptions{}
	for _, opt := range opts {
		opt(&o.orchestrateOptions)
	}
	o.baseContext = ctx

	o.capture.setCallbacks(captureCallbacks{
		onListeningChange: func(listening bool) {
			if callback := o.orchestrateOptions.onListeningChanged; callback != nil {
				callback(listening)
			}
		},
		onInterim: func(transcript string) {
			if callback := o.orchestrateOptions.onInterimTranscription; callback != nil {
				callback(transcript)
			}
		},
		onTranscriptFinal: func(transcript string) {
			if callback := o.orchestrateOptions.onTranscription; callback != nil {
				callback(transcript)
			}
			go func() {
				if err := o.Send(o.baseContext, transcript); err != nil {
					logger.Error("Failed to process transcript", "error", err)
				}
			}()
		},
		onError: func(kind recognition.ErrorKind) {
			o.surfaceAdvisory(advisoryForRecognitionError(kind))
		},
	})

	o.playback.setCallbacks(playbackCallbacks{
		onSpeakingChange: func(speaking bool) {
			if callback := o.orchestrateOptions.onSpeakingChanged; callback != nil {
				callback(speaking)
			}
		},
		onVoiceChange: func(enabled bool) {
			if callback := o.orchestrateOptions.onVoiceChanged; callback != nil {
				callback(enabled)
			}
		},
		onError: func(err error) {
			recordedErr := fmt.Errorf("speech playback failed: %w", err)
			span := trace.SpanFromContext(o.baseContext)
			span.RecordError(recordedErr)
			span.SetStatus(codes.Error, recordedErr.Error())
			o.surfaceAdvisory(newAdvisory(AdvisorySynthesisUnavailable))
		},
	})

	if o.greeting != "" {
		o.appendMessage(NewAgentMessage(o.greeting))
	}

	if o.audioInput != nil {
		go func() {
			if err := o.audioInput.Stream(ctx, func(audio []byte) {
				if err := o.capture.SendAudio(audio); err != nil {
					logger.Error("Failed to forward captured audio", "error", err)
				}
			}); err != nil {
				logger.Error("Audio input stream ended", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			o.Close()
		}()
	}
}

// Send runs one user turn through the pipeline. Blank input is rejected
// with no side effects. The processing flag is set before the processor
// call and cleared on every exit path. Concurrent Sends are not serialized
// here; the UI boundary disables the send affordance while processing.
func (o *Orchestrator) Send(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	ctx, span := tracer.Start(ctx, "send user message")
	defer span.End()

	// History is captured before the user message is appended; the
	// processor receives the conversation as it was when the user spoke.
	history := o.messages.History()
	o.appendMessage(NewUserMessage(trimmed))

	o.setProcessing(true)
	defer o.setProcessing(false)

	if o.processor == nil {
		err := fmt.Errorf("no message processor configured")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.surfaceAdvisory(newAdvisory(AdvisoryProcessorFailure))
		return err
	}

	result, err := o.processor.Process(ctx, trimmed, history)
	if err != nil {
		recordedErr := fmt.Errorf("message processor failed: %w", err)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		o.surfaceAdvisory(newAdvisory(AdvisoryProcessorFailure))
		return recordedErr
	}

	o.appendMessage(result.Message)
	if result.Message.Sender == SenderAgent {
		o.playback.Speak(ctx, result.Message.Text, o.defaultPersonaID)
	}

	if result.RequiresConsent {
		o.setConsentRequest(result.ConsentRequest)
	}

	return nil
}

// QuickAction feeds a suggested follow-up back through the send pipeline.
func (o *Orchestrator) QuickAction(ctx context.Context, action string) error {
	return o.Send(ctx, action)
}

// ToggleMic starts listening when idle and stops it when active.
func (o *Orchestrator) ToggleMic(ctx context.Context) {
	if o.capture.IsListening() {
		o.capture.Stop()
		return
	}
	o.capture.Start(ctx)
}

func (o *Orchestrator) StartListening(ctx context.Context) { o.capture.Start(ctx) }
func (o *Orchestrator) StopListening()                     { o.capture.Stop() }

func (o *Orchestrator) EnableVoice()  { o.playback.Enable() }
func (o *Orchestrator) DisableVoice() { o.playback.Disable() }

// SetDeviceVoices recomputes the persona voice assignment against a changed
// device inventory.
func (o *Orchestrator) SetDeviceVoices(devices []voices.DeviceVoice) {
	o.playback.SetDeviceVoices(devices)
}

// VoiceAssignment returns the current persona voice assignment.
func (o *Orchestrator) VoiceAssignment() voices.Assignment {
	return o.playback.Assignment()
}

// ResolveConsent records the user's decision and clears the pending
// request. Resolving with nothing pending is a no-op.
func (o *Orchestrator) ResolveConsent(ctx context.Context, accepted bool) error {
	o.stateMu.Lock()
	pending := o.consentRequest
	o.consentRequest = nil
	o.stateMu.Unlock()

	if pending == nil {
		return nil
	}
	if callback := o.orchestrateOptions.onConsentResolved; callback != nil {
		callback(*pending, accepted)
	}
	if !accepted {
		return nil
	}
	return o.Send(ctx, pending.Action)
}

func (o *Orchestrator) Messages() []Message { return o.messages.History() }

func (o *Orchestrator) IsListening() bool { return o.capture.IsListening() }
func (o *Orchestrator) IsSpeaking() bool  { return o.playback.IsSpeaking() }
func (o *Orchestrator) IsVoiceEnabled() bool {
	return o.playback.IsEnabled()
}

func (o *Orchestrator) IsProcessing() bool {
	o.stateMu.Lock()
	defer o.stateMu.Unlock()
	return o.processing
}

// ConsentRequest returns the pending consent request, or nil.
func (o *Orchestrator) ConsentRequest() *ConsentRequest {
	o.stateMu.Lock()
	defer o.stateMu.Unlock()
	if o.consentRequest == nil {
		return nil
	}
	pending := *o.consentRequest
	return &pending
}

func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		o.capture.Stop()
		o.playback.Stop()
		if o.audioInput != nil {
			o.audioInput.Close()
		}
	})
}

func (o *Orchestrator) appendMessage(message Message) {
	o.messages.Append(message)
	if callback := o.orchestrateOptions.onMessage; callback != nil {
		callback(message)
	}
}

func (o *Orchestrator) setProcessing(processing bool) {
	o.stateMu.Lock()
	changed := o.processing != processing
	o.processing = processing
	o.stateMu.Unlock()

	if changed {
		if callback := o.orchestrateOptions.onProcessingChanged; callback != nil {
			callback(processing)
		}
	}
}

func (o *Orchestrator) setConsentRequest(request *ConsentRequest) {
	o.stateMu.Lock()
	o.consentRequest = request
	o.stateMu.Unlock()

	if request != nil {
		if callback := o.orchestrateOptions.onConsentRequested; callback != nil {
			callback(*request)
		}
	}
}

func (o *Orchestrator) surfaceAdvisory(advisory Advisory) {
	if callback := o.orchestrateOptions.onAdvisory; callback != nil {
		callback(advisory)
	}
}
