package recognition

// Code identifies a recognizer failure. Providers report whichever codes
// apply to their transport; unknown codes still surface, classified as
// [ErrorKindUnknown].
type Code string

const (
	// CodeNotAllowed means microphone access was denied.
	CodeNotAllowed Code = "not-allowed"
	// CodeAudioCapture means no usable input device was found or the device
	// failed mid-session.
	CodeAudioCapture Code = "audio-capture"
	// CodeNoSpeech means the provider gave up waiting for speech.
	CodeNoSpeech Code = "no-speech"
	// CodeServiceNotAllowed means the recognition service itself refused the
	// session.
	CodeServiceNotAllowed Code = "service-not-allowed"
)

type ErrorKind int

const (
	ErrorKindUnknown ErrorKind = iota
	ErrorKindPermissionDenied
	ErrorKindDeviceUnavailable
	ErrorKindNoSpeechDetected
	ErrorKindUnsupported
)

// Classify maps a provider code onto the stable taxonomy callers branch on.
// Permission denials are terminal for a session, device failures may clear
// up on retry, and absence of speech is not a fault at all.
func Classify(code Code) ErrorKind {
	switch code {
	case CodeNotAllowed, CodeServiceNotAllowed:
		return ErrorKindPermissionDenied
	case CodeAudioCapture:
		return ErrorKindDeviceUnavailable
	case CodeNoSpeech:
		return ErrorKindNoSpeechDetected
	}
	return ErrorKindUnknown
}

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindPermissionDenied:
		return "permission_denied"
	case ErrorKindDeviceUnavailable:
		return "device_unavailable"
	case ErrorKindNoSpeechDetected:
		return "no_speech_detected"
	case ErrorKindUnsupported:
		return "unsupported"
	}
	return "unknown"
}
