// Package recognition defines the contract between the capture session and
// speech recognition providers.
package recognition

import "github.com/krishisetu/sakhi-core/core/audio"

type TranscriptionOptions struct {
	// StartedCallback is called once the provider is connected and ready to
	// accept audio.
	StartedCallback func()
	// InterimTranscriptionCallback is called with provisional hypotheses that
	// may still be revised.
	InterimTranscriptionCallback func(transcript string)
	// TranscriptionCallback is called with finalized transcript segments.
	TranscriptionCallback func(transcript string)
	// ErrorCallback is called when the provider fails, with a stable code
	// from this package.
	ErrorCallback func(code Code)
	// EndedCallback is called exactly once when the provider session is over,
	// whether it ended cleanly or after an error.
	EndedCallback func()

	Language string

	EncodingInfo audio.EncodingInfo
}

type TranscriptionOption func(*TranscriptionOptions)

func WithStartedCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.StartedCallback = callback
	}
}

func WithInterimTranscriptionCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.InterimTranscriptionCallback = callback
	}
}

func WithTranscriptionCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.TranscriptionCallback = callback
	}
}

func WithErrorCallback(callback func(code Code)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.ErrorCallback = callback
	}
}

func WithEndedCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.EndedCallback = callback
	}
}

func WithLanguage(language string) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.Language = language
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.EncodingInfo = encodingInfo
	}
}
