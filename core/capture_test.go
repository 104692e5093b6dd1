package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/krishisetu/sakhi-core/core/recognition"
)

type recognizerStub struct {
	transcribeCalls int
	stopCalls       int
	startErr        error
	endOnStop       bool

	runs []recognition.TranscriptionOptions
}

func (s *recognizerStub) Transcribe(_ context.Context, opts ...recognition.TranscriptionOption) error {
	if s.startErr != nil {
		return s.startErr
	}
	s.transcribeCalls++
	options := recognition.TranscriptionOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	s.runs = append(s.runs, options)
	if options.StartedCallback != nil {
		options.StartedCallback()
	}
	return nil
}

func (s *recognizerStub) SendAudio([]byte) error { return nil }

func (s *recognizerStub) Stop() error {
	s.stopCalls++
	if s.endOnStop && len(s.runs) > 0 {
		run := s.runs[len(s.runs)-1]
		if run.EndedCallback != nil {
			run.EndedCallback()
		}
	}
	return nil
}

func (s *recognizerStub) run(index int) recognition.TranscriptionOptions {
	return s.runs[index]
}

func (s *recognizerStub) currentRun() recognition.TranscriptionOptions {
	return s.runs[len(s.runs)-1]
}

func TestCaptureEmitsSingleFinalForInterimsThenFinal(t *testing.T) {
	stub := &recognizerStub{endOnStop: true}
	session := newCaptureSession(stub)

	finals := []string{}
	interims := []string{}
	session.setCallbacks(captureCallbacks{
		onTranscriptFinal: func(transcript string) { finals = append(finals, transcript) },
		onInterim:         func(transcript string) { interims = append(interims, transcript) },
	})

	session.Start(context.Background())

	run := stub.currentRun()
	run.InterimTranscriptionCallback("hel")
	run.InterimTranscriptionCallback("hello wor")
	run.TranscriptionCallback("hello world")

	if len(finals) != 1 {
		t.Fatalf("expected exactly one final transcript, got %d (%v)", len(finals), finals)
	}
	if finals[0] != "hello world" {
		t.Fatalf("expected final transcript %q, got %q", "hello world", finals[0])
	}
	if len(interims) != 2 {
		t.Fatalf("expected two interim callbacks, got %d", len(interims))
	}

	// The stop after a final, plus the resume policy, brings up a fresh run.
	if stub.transcribeCalls != 2 {
		t.Fatalf("expected a fresh recognizer run after the final, got %d runs", stub.transcribeCalls)
	}

	// The same text finalized again on the new run is deduplicated.
	stub.currentRun().TranscriptionCallback("hello world")
	if len(finals) != 1 {
		t.Fatalf("expected duplicate final transcript to be dropped, got %d finals", len(finals))
	}
}

func TestCaptureStartWhileListeningDropsOldEpochEvents(t *testing.T) {
	stub := &recognizerStub{}
	session := newCaptureSession(stub)

	finals := []string{}
	session.setCallbacks(captureCallbacks{
		onTranscriptFinal: func(transcript string) { finals = append(finals, transcript) },
	})

	session.Start(context.Background())
	oldRun := stub.run(0)

	session.Start(context.Background())
	if stub.transcribeCalls != 2 {
		t.Fatalf("expected restart to create a new recognizer run, got %d runs", stub.transcribeCalls)
	}

	oldRun.TranscriptionCallback("stale transcript")
	if len(finals) != 0 {
		t.Fatalf("expected stale final to be dropped, got %v", finals)
	}

	oldRun.EndedCallback()
	if stub.transcribeCalls != 2 {
		t.Fatalf("expected stale ended event not to trigger a resume, got %d runs", stub.transcribeCalls)
	}

	stub.run(1).TranscriptionCallback("fresh transcript")
	if len(finals) != 1 || finals[0] != "fresh transcript" {
		t.Fatalf("expected the live run's final to be delivered, got %v", finals)
	}
}

func TestCaptureStopTransitionsToIdleWhenRecognizerEnds(t *testing.T) {
	stub := &recognizerStub{endOnStop: true}
	session := newCaptureSession(stub)

	listeningChanges := []bool{}
	session.setCallbacks(captureCallbacks{
		onListeningChange: func(listening bool) { listeningChanges = append(listeningChanges, listening) },
	})

	session.Start(context.Background())
	if !session.IsListening() {
		t.Fatalf("expected session to be listening after start")
	}

	session.Stop()
	if session.IsListening() {
		t.Fatalf("expected session to be idle after stop")
	}
	if len(listeningChanges) != 2 || !listeningChanges[0] || listeningChanges[1] {
		t.Fatalf("expected listening changes [true false], got %v", listeningChanges)
	}
	if stub.transcribeCalls != 1 {
		t.Fatalf("expected no resume after explicit stop, got %d runs", stub.transcribeCalls)
	}
}

func TestCaptureNotAllowedErrorGoesIdleAndClassifies(t *testing.T) {
	stub := &recognizerStub{}
	session := newCaptureSession(stub)

	kinds := []recognition.ErrorKind{}
	listeningChanges := []bool{}
	session.setCallbacks(captureCallbacks{
		onError:           func(kind recognition.ErrorKind) { kinds = append(kinds, kind) },
		onListeningChange: func(listening bool) { listeningChanges = append(listeningChanges, listening) },
	})

	session.Start(context.Background())
	stub.currentRun().ErrorCallback(recognition.CodeNotAllowed)

	if session.IsListening() {
		t.Fatalf("expected session to be idle after a permission error")
	}
	if len(kinds) != 1 || kinds[0] != recognition.ErrorKindPermissionDenied {
		t.Fatalf("expected a permission-denied classification, got %v", kinds)
	}
	if len(listeningChanges) != 2 || listeningChanges[1] {
		t.Fatalf("expected listening to end after the error, got %v", listeningChanges)
	}

	stub.currentRun().EndedCallback()
	if stub.transcribeCalls != 1 {
		t.Fatalf("expected no resume after an error, got %d runs", stub.transcribeCalls)
	}

	// Errors are not fatal; a later start works again.
	session.Start(context.Background())
	if !session.IsListening() {
		t.Fatalf("expected session to recover on a subsequent start")
	}
}

func TestCaptureWithoutRecognizerReportsUnsupported(t *testing.T) {
	session := newCaptureSession(nil)

	kinds := []recognition.ErrorKind{}
	session.setCallbacks(captureCallbacks{
		onError: func(kind recognition.ErrorKind) { kinds = append(kinds, kind) },
	})

	session.Start(context.Background())

	if session.IsListening() {
		t.Fatalf("expected session to stay idle without a recognizer")
	}
	if len(kinds) != 1 || kinds[0] != recognition.ErrorKindUnsupported {
		t.Fatalf("expected an unsupported classification, got %v", kinds)
	}
}

func TestCaptureTranscribeFailureSurfacesDeviceError(t *testing.T) {
	stub := &recognizerStub{startErr: errors.New("no usable input device")}
	session := newCaptureSession(stub)

	kinds := []recognition.ErrorKind{}
	session.setCallbacks(captureCallbacks{
		onError: func(kind recognition.ErrorKind) { kinds = append(kinds, kind) },
	})

	session.Start(context.Background())

	if session.IsListening() {
		t.Fatalf("expected session to stay idle when the recognizer fails to start")
	}
	if len(kinds) != 1 || kinds[0] != recognition.ErrorKindDeviceUnavailable {
		t.Fatalf("expected a device-unavailable classification, got %v", kinds)
	}
}
