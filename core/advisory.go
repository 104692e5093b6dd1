package conversation

import (
	"github.com/google/uuid"
	"github.com/krishisetu/sakhi-core/core/recognition"
)

type AdvisoryKind string

const (
	AdvisoryPermissionDenied       AdvisoryKind = "permission_denied"
	AdvisoryDeviceUnavailable      AdvisoryKind = "device_unavailable"
	AdvisoryNoSpeechDetected       AdvisoryKind = "no_speech_detected"
	AdvisoryRecognitionUnsupported AdvisoryKind = "recognition_unsupported"
	AdvisorySynthesisUnavailable   AdvisoryKind = "synthesis_unavailable"
	AdvisoryProcessorFailure       AdvisoryKind = "processor_failure"
)

// Advisory is a transient, user-facing notification about a recoverable
// failure. Advisories are not part of the conversation history.
type Advisory struct {
	ID   string
	Kind AdvisoryKind
	Text string
}

var advisoryTexts = map[AdvisoryKind]string{
	AdvisoryPermissionDenied:       "Microphone access was denied. Please allow microphone access and try again.",
	AdvisoryDeviceUnavailable:      "No microphone was found. Please check your audio devices and try again.",
	AdvisoryNoSpeechDetected:       "No speech was detected. Please try speaking again.",
	AdvisoryRecognitionUnsupported: "Voice input is not supported on this device. You can still type your question.",
	AdvisorySynthesisUnavailable:   "Voice playback is unavailable right now. The reply is shown as text.",
	AdvisoryProcessorFailure:       "Something went wrong while preparing a reply. Please try again.",
}

func newAdvisory(kind AdvisoryKind) Advisory {
	text, ok := advisoryTexts[kind]
	if !ok {
		text = advisoryTexts[AdvisoryProcessorFailure]
	}
	return Advisory{ID: uuid.NewString(), Kind: kind, Text: text}
}

func advisoryForRecognitionError(kind recognition.ErrorKind) Advisory {
	switch kind {
	case recognition.ErrorKindPermissionDenied:
		return newAdvisory(AdvisoryPermissionDenied)
	case recognition.ErrorKindDeviceUnavailable:
		return newAdvisory(AdvisoryDeviceUnavailable)
	case recognition.ErrorKindNoSpeechDetected:
		return newAdvisory(AdvisoryNoSpeechDetected)
	case recognition.ErrorKindUnsupported:
		return newAdvisory(AdvisoryRecognitionUnsupported)
	}
	return newAdvisory(AdvisoryDeviceUnavailable)
}
