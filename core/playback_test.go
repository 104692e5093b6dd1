package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/krishisetu/sakhi-core/core/synthesis"
	"github.com/krishisetu/sakhi-core/core/voices"
)

type synthesizerStub struct {
	speakCalls  int
	cancelCalls int
	speakErr    error

	texts    []string
	requests []synthesis.SpeechOptions
}

func (s *synthesizerStub) Speak(_ context.Context, text string, opts ...synthesis.SpeechOption) error {
	if s.speakErr != nil {
		return s.speakErr
	}
	s.speakCalls++
	options := synthesis.SpeechOptions{Pitch: 1, Rate: 1}
	for _, opt := range opts {
		opt(&options)
	}
	s.texts = append(s.texts, text)
	s.requests = append(s.requests, options)
	return nil
}

func (s *synthesizerStub) Cancel() error {
	s.cancelCalls++
	return nil
}

func (s *synthesizerStub) request(index int) synthesis.SpeechOptions {
	return s.requests[index]
}

func TestPlaybackSupersededUtteranceCallbacksAreStale(t *testing.T) {
	stub := &synthesizerStub{}
	manager := newPlaybackManager(stub)

	speakingChanges := []bool{}
	manager.setCallbacks(playbackCallbacks{
		onSpeakingChange: func(speaking bool) { speakingChanges = append(speakingChanges, speaking) },
	})

	manager.Speak(context.Background(), "a", "")
	manager.Speak(context.Background(), "b", "")

	if stub.speakCalls != 2 {
		t.Fatalf("expected two synthesis requests, got %d", stub.speakCalls)
	}
	if stub.cancelCalls != 2 {
		t.Fatalf("expected each speak to cancel in-flight audio, got %d cancels", stub.cancelCalls)
	}

	// Late callbacks from the superseded utterance must not toggle state.
	stub.request(0).StartedCallback()
	if manager.IsSpeaking() {
		t.Fatalf("expected stale started callback to be ignored")
	}

	stub.request(1).StartedCallback()
	if !manager.IsSpeaking() {
		t.Fatalf("expected the live utterance to set speaking")
	}

	stub.request(0).EndedCallback()
	if !manager.IsSpeaking() {
		t.Fatalf("expected stale ended callback to be ignored")
	}

	stub.request(1).EndedCallback()
	if manager.IsSpeaking() {
		t.Fatalf("expected the live utterance's end to clear speaking")
	}

	if len(speakingChanges) != 2 || !speakingChanges[0] || speakingChanges[1] {
		t.Fatalf("expected exactly one start and one end, got %v", speakingChanges)
	}
}

func TestPlaybackStopClearsSpeakingUnconditionally(t *testing.T) {
	stub := &synthesizerStub{}
	manager := newPlaybackManager(stub)

	manager.Speak(context.Background(), "hello", "")
	stub.request(0).StartedCallback()
	if !manager.IsSpeaking() {
		t.Fatalf("expected speaking after the started callback")
	}

	manager.Stop()
	if manager.IsSpeaking() {
		t.Fatalf("expected stop to clear speaking")
	}
	if stub.cancelCalls != 2 {
		t.Fatalf("expected stop to request platform cancellation, got %d cancels", stub.cancelCalls)
	}

	stub.request(0).EndedCallback()
	if manager.IsSpeaking() {
		t.Fatalf("expected post-stop callbacks to be stale")
	}
}

func TestPlaybackSingleShotDisarmsAfterUtterance(t *testing.T) {
	stub := &synthesizerStub{}
	manager := newPlaybackManager(stub)
	manager.policy = PlaybackPolicySingleShot

	voiceChanges := []bool{}
	manager.setCallbacks(playbackCallbacks{
		onVoiceChange: func(enabled bool) { voiceChanges = append(voiceChanges, enabled) },
	})

	manager.Speak(context.Background(), "first", "")
	stub.request(0).StartedCallback()
	stub.request(0).EndedCallback()

	if manager.IsEnabled() {
		t.Fatalf("expected single-shot policy to disarm after the utterance")
	}
	if len(voiceChanges) != 1 || voiceChanges[0] {
		t.Fatalf("expected one disarm notification, got %v", voiceChanges)
	}

	manager.Speak(context.Background(), "second", "")
	if stub.speakCalls != 1 {
		t.Fatalf("expected speaking while disarmed to be a no-op, got %d requests", stub.speakCalls)
	}

	manager.Enable()
	manager.Speak(context.Background(), "third", "")
	if stub.speakCalls != 2 {
		t.Fatalf("expected speak to work again after rearming, got %d requests", stub.speakCalls)
	}
}

func TestPlaybackStickyStaysArmedAcrossUtterances(t *testing.T) {
	stub := &synthesizerStub{}
	manager := newPlaybackManager(stub)

	manager.Speak(context.Background(), "first", "")
	stub.request(0).StartedCallback()
	stub.request(0).EndedCallback()

	if !manager.IsEnabled() {
		t.Fatalf("expected sticky policy to stay armed after an utterance")
	}
}

func TestPlaybackPitchIsStablePerGender(t *testing.T) {
	stub := &synthesizerStub{}
	manager := newPlaybackManager(stub)

	manager.Speak(context.Background(), "hi", "en-female-soft")
	manager.Speak(context.Background(), "hi", "en-male-calm")
	manager.Speak(context.Background(), "hi", "en-neutral-global")

	if got := stub.request(0).Pitch; got != pitchFemale {
		t.Fatalf("expected female pitch %v, got %v", pitchFemale, got)
	}
	if got := stub.request(1).Pitch; got != pitchMale {
		t.Fatalf("expected male pitch %v, got %v", pitchMale, got)
	}
	if got := stub.request(2).Pitch; got != pitchNeutral {
		t.Fatalf("expected neutral pitch %v, got %v", pitchNeutral, got)
	}
}

func TestPlaybackResolvesVoiceThroughAssignment(t *testing.T) {
	stub := &synthesizerStub{}
	manager := newPlaybackManager(stub)
	manager.SetDeviceVoices([]voices.DeviceVoice{
		{Name: "Meera (en-IN, female)", Language: "en-IN"},
		{Name: "Arjun (en-IN, male)", Language: "en-IN"},
	})

	manager.Speak(context.Background(), "hi", "en-female-soft")
	if got := stub.request(0).Voice; got != "Meera (en-IN, female)" {
		t.Fatalf("expected the assigned device voice, got %q", got)
	}
}

func TestPlaybackSpeakFailureSurfacesError(t *testing.T) {
	stub := &synthesizerStub{speakErr: errors.New("synthesis backend offline")}
	manager := newPlaybackManager(stub)

	errs := []error{}
	manager.setCallbacks(playbackCallbacks{
		onError: func(err error) { errs = append(errs, err) },
	})

	manager.Speak(context.Background(), "hello", "")
	if manager.IsSpeaking() {
		t.Fatalf("expected failed speak to leave speaking clear")
	}
	if len(errs) != 1 {
		t.Fatalf("expected one surfaced error, got %d", len(errs))
	}
}
