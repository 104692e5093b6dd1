package conversation

import (
	"context"
	"strings"
	"sync"

	"github.com/krishisetu/sakhi-core/core/audio"
	"github.com/krishisetu/sakhi-core/core/events"
	"github.com/krishisetu/sakhi-core/core/recognition"
)

type captureState int

const (
	captureIdle captureState = iota
	captureListening
)

type captureCallbacks struct {
	onListeningChange func(listening bool)
	onInterim         func(transcript string)
	onTranscriptFinal func(transcript string)
	onError           func(kind recognition.ErrorKind)
}

// captureSession owns one continuous recognition lifecycle. Every recognizer
// run gets a fresh epoch; inbound events tagged with an older epoch are
// dropped, so a torn-down run can never touch the live transcript. All state
// transitions go through apply, which runs callbacks outside the lock.
type captureSession struct {
	mu sync.Mutex

	state           captureState
	epoch           int64
	resumeRequested bool

	finalSegments     []string
	interimSegment    string
	lastSubmittedText string

	recognizer  SpeechRecognizer
	language    string
	encoding    audio.EncodingInfo
	baseContext context.Context

	callbacks captureCallbacks
}

func newCaptureSession(recognizer SpeechRecognizer) *captureSession {
	return &captureSession{
		recognizer:  recognizer,
		baseContext: context.Background(),
	}
}

func (s *captureSession) setCallbacks(callbacks captureCallbacks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = callbacks
}

// Start activates listening. Calling it while already Listening tears the
// previous recognizer run down first; its late events are stale by epoch.
// Without a recognizer this is a no-op that reports unsupported and stays
// Idle.
func (s *captureSession) Start(ctx context.Context) {
	s.mu.Lock()
	if s.recognizer == nil {
		onError := s.callbacks.onError
		s.mu.Unlock()
		if onError != nil {
			onError(recognition.ErrorKindUnsupported)
		}
		return
	}

	// Invalidate the previous run before tearing it down so its Ended
	// event cannot sneak in as current and double-start the resume path.
	s.epoch++
	s.resumeRequested = true
	s.baseContext = ctx
	recognizer := s.recognizer
	wasListening := s.state == captureListening
	s.mu.Unlock()

	if wasListening {
		_ = recognizer.Stop()
	}
	s.startRecognizer()
}

// Stop deactivates listening. The transition to Idle happens when the
// recognizer reports it has ended.
func (s *captureSession) Stop() {
	s.mu.Lock()
	s.resumeRequested = false
	recognizer := s.recognizer
	s.mu.Unlock()

	if recognizer != nil {
		_ = recognizer.Stop()
	}
}

func (s *captureSession) SendAudio(audio []byte) error {
	s.mu.Lock()
	recognizer := s.recognizer
	listening := s.state == captureListening
	s.mu.Unlock()

	if recognizer == nil || !listening {
		return nil
	}
	return recognizer.SendAudio(audio)
}

func (s *captureSession) IsListening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == captureListening
}

// startRecognizer spins up a fresh recognizer run under a new epoch. The
// transcript buffers reset per run; lastSubmittedText survives so the same
// text is never submitted twice across runs.
func (s *captureSession) startRecognizer() {
	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.finalSegments = nil
	s.interimSegment = ""
	recognizer := s.recognizer
	ctx := s.baseContext
	opts := []recognition.TranscriptionOption{
		recognition.WithStartedCallback(func() {
			s.apply(events.NewRecognizerStarted(epoch))
		}),
		recognition.WithInterimTranscriptionCallback(func(transcript string) {
			s.apply(events.NewRecognizerResultInterim(epoch, transcript))
		}),
		recognition.WithTranscriptionCallback(func(transcript string) {
			s.apply(events.NewRecognizerResultFinal(epoch, transcript))
		}),
		recognition.WithErrorCallback(func(code recognition.Code) {
			s.apply(events.NewRecognizerError(epoch, string(code)))
		}),
		recognition.WithEndedCallback(func() {
			s.apply(events.NewRecognizerEnded(epoch))
		}),
	}
	if s.language != "" {
		opts = append(opts, recognition.WithLanguage(s.language))
	}
	if !s.encoding.IsZero() {
		opts = append(opts, recognition.WithEncodingInfo(s.encoding))
	}
	s.mu.Unlock()

	if err := recognizer.Transcribe(ctx, opts...); err != nil {
		logger.Error("Failed to start recognizer", "error", err)
		s.apply(events.NewRecognizerError(epoch, string(recognition.CodeAudioCapture)))
		s.apply(events.NewRecognizerEnded(epoch))
	}
}

// apply is the single reducer for recognizer events. It owns every state
// transition; callbacks run after the lock is released.
func (s *captureSession) apply(event events.Event) {
	s.mu.Lock()

	var notify []func()
	restart := false

	switch e := event.(type) {
	case events.RecognizerStarted:
		if e.Epoch != s.epoch {
			break
		}
		if s.state != captureListening {
			s.state = captureListening
			if callback := s.callbacks.onListeningChange; callback != nil {
				notify = append(notify, func() { callback(true) })
			}
		}

	case events.RecognizerResultInterim:
		if e.Epoch != s.epoch {
			break
		}
		s.interimSegment = e.Transcript
		if callback := s.callbacks.onInterim; callback != nil {
			combined := s.combinedTranscript()
			notify = append(notify, func() { callback(combined) })
		}

	case events.RecognizerResultFinal:
		if e.Epoch != s.epoch {
			break
		}
		s.finalSegments = append(s.finalSegments, e.Transcript)
		s.interimSegment = ""
		combined := s.combinedTranscript()
		if combined != "" && combined != s.lastSubmittedText {
			s.lastSubmittedText = combined
			if callback := s.callbacks.onTranscriptFinal; callback != nil {
				notify = append(notify, func() { callback(combined) })
			}
		}
		// The run has served its purpose; a stop here lets the resume
		// policy bring up a fresh run with clean buffers.
		recognizer := s.recognizer
		notify = append(notify, func() { _ = recognizer.Stop() })

	case events.RecognizerError:
		if e.Epoch != s.epoch {
			break
		}
		s.resumeRequested = false
		if s.state != captureIdle {
			s.state = captureIdle
			if callback := s.callbacks.onListeningChange; callback != nil {
				notify = append(notify, func() { callback(false) })
			}
		}
		if callback := s.callbacks.onError; callback != nil {
			kind := recognition.Classify(recognition.Code(e.Code))
			notify = append(notify, func() { callback(kind) })
		}

	case events.RecognizerEnded:
		if e.Epoch != s.epoch {
			break
		}
		if s.resumeRequested {
			restart = true
		} else if s.state != captureIdle {
			s.state = captureIdle
			if callback := s.callbacks.onListeningChange; callback != nil {
				notify = append(notify, func() { callback(false) })
			}
		}
	}

	s.mu.Unlock()

	for _, callback := range notify {
		callback()
	}
	if restart {
		s.startRecognizer()
	}
}

// combinedTranscript must be called with mu held.
func (s *captureSession) combinedTranscript() string {
	parts := make([]string, 0, len(s.finalSegments)+1)
	parts = append(parts, s.finalSegments...)
	if s.interimSegment != "" {
		parts = append(parts, s.interimSegment)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
