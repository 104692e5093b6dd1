package events

const (
	// KindUtteranceStarted identifies the start of utterance playback.
	KindUtteranceStarted Kind = "utterance.started"
	// KindUtteranceEnded identifies completed utterance playback.
	KindUtteranceEnded Kind = "utterance.ended"
	// KindUtteranceError identifies failed utterance playback.
	KindUtteranceError Kind = "utterance.error"
)

// UtteranceStarted marks when playback of a synthesized utterance begins.
type UtteranceStarted struct {
	Base
	Token int64
}

// NewUtteranceStarted creates an utterance started event.
func NewUtteranceStarted(token int64) UtteranceStarted {
	return UtteranceStarted{Base: NewBase(KindUtteranceStarted), Token: token}
}

// UtteranceEnded marks when playback of a synthesized utterance completes.
type UtteranceEnded struct {
	Base
	Token int64
}

// NewUtteranceEnded creates an utterance ended event.
func NewUtteranceEnded(token int64) UtteranceEnded {
	return UtteranceEnded{Base: NewBase(KindUtteranceEnded), Token: token}
}

// UtteranceError marks a failed utterance playback attempt.
type UtteranceError struct {
	Base
	Token int64
	Err   string
}

// NewUtteranceError creates an utterance error event.
func NewUtteranceError(token int64, err string) UtteranceError {
	return UtteranceError{Base: NewBase(KindUtteranceError), Token: token, Err: err}
}
