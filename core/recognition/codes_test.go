package recognition

import "testing"

func TestClassifyMapsKnownCodes(t *testing.T) {
	t.Parallel()

	for _, testCase := range []struct {
		code Code
		want ErrorKind
	}{
		{code: CodeNotAllowed, want: ErrorKindPermissionDenied},
		{code: CodeServiceNotAllowed, want: ErrorKindPermissionDenied},
		{code: CodeAudioCapture, want: ErrorKindDeviceUnavailable},
		{code: CodeNoSpeech, want: ErrorKindNoSpeechDetected},
		{code: Code("network"), want: ErrorKindUnknown},
		{code: Code(""), want: ErrorKindUnknown},
	} {
		if got := Classify(testCase.code); got != testCase.want {
			t.Errorf("Classify(%q) = %v, expected %v", testCase.code, got, testCase.want)
		}
	}
}

func TestErrorKindStringsAreStable(t *testing.T) {
	t.Parallel()

	for _, testCase := range []struct {
		kind ErrorKind
		want string
	}{
		{kind: ErrorKindPermissionDenied, want: "permission_denied"},
		{kind: ErrorKindDeviceUnavailable, want: "device_unavailable"},
		{kind: ErrorKindNoSpeechDetected, want: "no_speech_detected"},
		{kind: ErrorKindUnsupported, want: "unsupported"},
		{kind: ErrorKindUnknown, want: "unknown"},
	} {
		if got := testCase.kind.String(); got != testCase.want {
			t.Errorf("String() = %q, expected %q", got, testCase.want)
		}
	}
}
