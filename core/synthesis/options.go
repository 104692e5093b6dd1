// Package synthesis defines the contract between the playback manager and
// speech synthesis providers.
package synthesis

import "github.com/krishisetu/sakhi-core/core/audio"

type SpeechOptions struct {
	// Voice names the provider voice to render with. Empty means the
	// provider default.
	Voice string
	// Pitch is a multiplier around the voice's natural pitch, 1.0 being
	// unchanged. Providers that cannot adjust pitch ignore it.
	Pitch float64
	// Rate is a speaking-rate multiplier, 1.0 being unchanged. Providers
	// that cannot adjust rate ignore it.
	Rate float64

	// StartedCallback is called once, when the first audio is produced.
	StartedCallback func()
	// AudioCallback is called with each chunk of rendered speech audio.
	AudioCallback func(audio []byte)
	// EndedCallback is called once all speech for the request has been
	// produced. It is not called after ErrorCallback.
	EndedCallback func()
	// ErrorCallback is called when the provider fails mid-request.
	ErrorCallback func(err error)

	EncodingInfo audio.EncodingInfo
}

type SpeechOption func(*SpeechOptions)

func WithVoice(voice string) SpeechOption {
	return func(o *SpeechOptions) {
		o.Voice = voice
	}
}

func WithPitch(pitch float64) SpeechOption {
	return func(o *SpeechOptions) {
		o.Pitch = pitch
	}
}

func WithRate(rate float64) SpeechOption {
	return func(o *SpeechOptions) {
		o.Rate = rate
	}
}

func WithStartedCallback(callback func()) SpeechOption {
	return func(o *SpeechOptions) {
		o.StartedCallback = callback
	}
}

func WithAudioCallback(callback func(audio []byte)) SpeechOption {
	return func(o *SpeechOptions) {
		o.AudioCallback = callback
	}
}

func WithEndedCallback(callback func()) SpeechOption {
	return func(o *SpeechOptions) {
		o.EndedCallback = callback
	}
}

func WithErrorCallback(callback func(err error)) SpeechOption {
	return func(o *SpeechOptions) {
		o.ErrorCallback = callback
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) SpeechOption {
	return func(o *SpeechOptions) {
		if encodingInfo.IsZero() {
			return
		}

		o.EncodingInfo = encodingInfo
	}
}
