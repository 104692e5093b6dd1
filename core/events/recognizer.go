package events

const (
	// KindRecognizerStarted identifies the start of a recognizer run.
	KindRecognizerStarted Kind = "recognizer.started"
	// KindRecognizerResultInterim identifies replaceable interim transcript guesses.
	KindRecognizerResultInterim Kind = "recognizer.result_interim"
	// KindRecognizerResultFinal identifies confirmed transcript segments.
	KindRecognizerResultFinal Kind = "recognizer.result_final"
	// KindRecognizerError identifies platform recognition errors.
	KindRecognizerError Kind = "recognizer.error"
	// KindRecognizerEnded identifies the end of a recognizer run.
	KindRecognizerEnded Kind = "recognizer.ended"
)

// RecognizerStarted marks when a recognizer run begins delivering results.
type RecognizerStarted struct {
	Base
	Epoch int64
}

// NewRecognizerStarted creates a recognizer started event.
func NewRecognizerStarted(epoch int64) RecognizerStarted {
	return RecognizerStarted{Base: NewBase(KindRecognizerStarted), Epoch: epoch}
}

// RecognizerResultInterim carries a replaceable interim transcript guess.
type RecognizerResultInterim struct {
	Base
	Epoch      int64
	Transcript string
}

// NewRecognizerResultInterim creates an interim result event.
func NewRecognizerResultInterim(epoch int64, transcript string) RecognizerResultInterim {
	return RecognizerResultInterim{Base: NewBase(KindRecognizerResultInterim), Epoch: epoch, Transcript: transcript}
}

// RecognizerResultFinal carries a confirmed transcript segment.
type RecognizerResultFinal struct {
	Base
	Epoch      int64
	Transcript string
}

// NewRecognizerResultFinal creates a final result event.
func NewRecognizerResultFinal(epoch int64, transcript string) RecognizerResultFinal {
	return RecognizerResultFinal{Base: NewBase(KindRecognizerResultFinal), Epoch: epoch, Transcript: transcript}
}

// RecognizerError carries a platform recognition error code.
type RecognizerError struct {
	Base
	Epoch int64
	Code  string
}

// NewRecognizerError creates a recognizer error event.
func NewRecognizerError(epoch int64, code string) RecognizerError {
	return RecognizerError{Base: NewBase(KindRecognizerError), Epoch: epoch, Code: code}
}

// RecognizerEnded marks when a recognizer run stops delivering results.
type RecognizerEnded struct {
	Base
	Epoch int64
}

// NewRecognizerEnded creates a recognizer ended event.
func NewRecognizerEnded(epoch int64) RecognizerEnded {
	return RecognizerEnded{Base: NewBase(KindRecognizerEnded), Epoch: epoch}
}
