package conversation

import (
	"context"

	"github.com/krishisetu/sakhi-core/core/audio"
	"github.com/krishisetu/sakhi-core/core/recognition"
	"github.com/krishisetu/sakhi-core/core/synthesis"
	"github.com/krishisetu/sakhi-core/core/voices"
)

type OrchestratorOption func(*Orchestrator)

// SpeechRecognizer is the capture session's view of a live transcription
// provider. The recognizer is a process-wide singleton; the session tears
// down one run before starting the next.
type SpeechRecognizer interface {
	Transcribe(ctx context.Context, opts ...recognition.TranscriptionOption) error
	SendAudio(audio []byte) error
	Stop() error
}

func WithSpeechRecognizer(client SpeechRecognizer) OrchestratorOption {
	return func(o *Orchestrator) {
		o.capture.recognizer = client
	}
}

// SpeechSynthesizer is the playback manager's view of a speech provider.
// Speak replaces any in-flight request.
type SpeechSynthesizer interface {
	Speak(ctx context.Context, text string, opts ...synthesis.SpeechOption) error
	Cancel() error
}

func WithSpeechSynthesizer(client SpeechSynthesizer) OrchestratorOption {
	return func(o *Orchestrator) {
		o.playback.synthesizer = client
	}
}

func WithMessageProcessor(processor MessageProcessor) OrchestratorOption {
	return func(o *Orchestrator) {
		o.processor = processor
	}
}

// AudioInput is a microphone-side device client feeding the recognizer.
type AudioInput interface {
	EncodingInfo() audio.EncodingInfo
	Stream(ctx context.Context, onAudio func(audio []byte)) error
	Close()
}

func WithAudioInput(client AudioInput) OrchestratorOption {
	return func(o *Orchestrator) {
		o.audioInput = client
		o.capture.encoding = client.EncodingInfo()
	}
}

func WithAudioOutput(client AudioOutput) OrchestratorOption {
	return func(o *Orchestrator) {
		o.playback.audioOutput = client
	}
}

// WithPersonaCatalog replaces the built-in persona catalog. Order matters:
// earlier personas claim device voices first.
func WithPersonaCatalog(catalog []voices.Persona) OrchestratorOption {
	return func(o *Orchestrator) {
		o.playback.catalog = catalog
	}
}

// WithDeviceVoices seeds the device voice inventory the personas are
// matched against. The inventory can be replaced later through
// [Orchestrator.SetDeviceVoices].
func WithDeviceVoices(devices []voices.DeviceVoice) OrchestratorOption {
	return func(o *Orchestrator) {
		o.playback.SetDeviceVoices(devices)
	}
}

func WithPlaybackPolicy(policy PlaybackPolicy) OrchestratorOption {
	return func(o *Orchestrator) {
		o.playback.policy = policy
	}
}

// WithDefaultPersona picks the persona agent replies are spoken as.
func WithDefaultPersona(personaID string) OrchestratorOption {
	return func(o *Orchestrator) {
		o.defaultPersonaID = personaID
	}
}

// WithGreeting opens the conversation with an agent message.
func WithGreeting(greeting string) OrchestratorOption {
	return func(o *Orchestrator) {
		o.greeting = greeting
	}
}

// WithVoiceDisabled starts with voice output disarmed.
func WithVoiceDisabled() OrchestratorOption {
	return func(o *Orchestrator) {
		o.playback.enabled = false
	}
}

// WithCaptureLanguage sets the language hint passed to the recognizer.
func WithCaptureLanguage(language string) OrchestratorOption {
	return func(o *Orchestrator) {
		o.capture.language = language
	}
}

type OrchestrateOptions struct {
	onTranscription        func(transcript string)
	onInterimTranscription func(transcript string)
	onListeningChanged     func(listening bool)
	onSpeakingChanged      func(speaking bool)
	onVoiceChanged         func(enabled bool)
	onProcessingChanged    func(processing bool)
	onMessage              func(message Message)
	onConsentRequested     func(request ConsentRequest)
	onConsentResolved      func(request ConsentRequest, accepted bool)
	onAdvisory             func(advisory Advisory)
}

type OrchestrateOption func(*OrchestrateOptions)

// WithTranscriptionCallback registers a callback for finalized transcripts
// about to be submitted through the send pipeline.
func WithTranscriptionCallback(callback func(transcript string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onTranscription = callback
	}
}

// WithInterimTranscriptionCallback registers a callback for provisional
// transcripts. Each call replaces the previous interim text.
func WithInterimTranscriptionCallback(callback func(transcript string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onInterimTranscription = callback
	}
}

func WithListeningChangedCallback(callback func(listening bool)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onListeningChanged = callback
	}
}

func WithSpeakingChangedCallback(callback func(speaking bool)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onSpeakingChanged = callback
	}
}

// WithVoiceChangedCallback registers a callback for voice-output arming
// changes, including the automatic disarm under the single-shot policy.
func WithVoiceChangedCallback(callback func(enabled bool)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onVoiceChanged = callback
	}
}

func WithProcessingChangedCallback(callback func(processing bool)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onProcessingChanged = callback
	}
}

// WithMessageCallback registers a callback for every message appended to
// the conversation, user and agent alike.
func WithMessageCallback(callback func(message Message)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onMessage = callback
	}
}

func WithConsentRequestedCallback(callback func(request ConsentRequest)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onConsentRequested = callback
	}
}

func WithConsentResolvedCallback(callback func(request ConsentRequest, accepted bool)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onConsentResolved = callback
	}
}

// WithAdvisoryCallback registers a callback for transient, user-facing
// failure notifications.
func WithAdvisoryCallback(callback func(advisory Advisory)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onAdvisory = callback
	}
}
