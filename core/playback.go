package conversation

import (
	"context"
	"errors"
	"sync"

	"github.com/krishisetu/sakhi-core/core/audio"
	"github.com/krishisetu/sakhi-core/core/events"
	"github.com/krishisetu/sakhi-core/core/synthesis"
	"github.com/krishisetu/sakhi-core/core/voices"
)

// PlaybackPolicy controls whether voice output stays armed across turns.
type PlaybackPolicy int

const (
	// PlaybackPolicySticky keeps voice output enabled until the caller
	// disables it.
	PlaybackPolicySticky PlaybackPolicy = iota
	// PlaybackPolicySingleShot disarms voice output after one utterance
	// completes or fails; the caller re-arms it for the next turn.
	PlaybackPolicySingleShot
)

const (
	pitchMale    = 0.95
	pitchNeutral = 1.0
	pitchFemale  = 1.05
	speakingRate = 1.0
)

var errSynthesisUnavailable = errors.New("no speech synthesizer configured")

type playbackCallbacks struct {
	onSpeakingChange func(speaking bool)
	onVoiceChange    func(enabled bool)
	onError          func(err error)
}

// playbackManager owns single-flight utterance playback. Each Speak call
// takes a fresh token; callbacks carrying an older token are stale and
// dropped, so a superseded utterance can never toggle the speaking state.
type playbackManager struct {
	mu sync.Mutex

	speaking    bool
	activeToken int64
	enabled     bool
	policy      PlaybackPolicy

	synthesizer SpeechSynthesizer
	audioOutput AudioOutput

	catalog          []voices.Persona
	assignment       voices.Assignment
	defaultPersonaID string

	callbacks playbackCallbacks
}

func newPlaybackManager(synthesizer SpeechSynthesizer) *playbackManager {
	return &playbackManager{
		synthesizer: synthesizer,
		enabled:     true,
		catalog:     voices.DefaultCatalog(),
	}
}

func (m *playbackManager) setCallbacks(callbacks playbackCallbacks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = callbacks
}

// SetDeviceVoices recomputes the persona assignment against a changed
// device inventory.
func (m *playbackManager) SetDeviceVoices(devices []voices.DeviceVoice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignment = voices.Match(devices, m.catalog)
}

// Assignment returns the current persona assignment.
func (m *playbackManager) Assignment() voices.Assignment {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make(voices.Assignment, len(m.assignment))
	for personaID, voice := range m.assignment {
		snapshot[personaID] = voice
	}
	return snapshot
}

// Speak renders text as the given persona's voice. Any utterance in flight
// is cancelled first; its late callbacks are invalidated by the token bump
// before synthesis begins. Speaking while voice output is disarmed is a
// no-op.
func (m *playbackManager) Speak(ctx context.Context, text string, personaID string) {
	m.mu.Lock()
	if !m.enabled {
		m.mu.Unlock()
		return
	}
	if m.synthesizer == nil {
		onError := m.callbacks.onError
		m.mu.Unlock()
		if onError != nil {
			onError(errSynthesisUnavailable)
		}
		return
	}

	m.activeToken++
	token := m.activeToken

	if personaID == "" {
		personaID = m.defaultPersonaID
	}
	persona := m.personaLocked(personaID)
	voice := m.assignment.Voice(personaID)

	synthesizer := m.synthesizer
	output := m.audioOutput
	m.mu.Unlock()

	_ = synthesizer.Cancel()
	if output != nil {
		output.ClearBuffer()
	}

	opts := []synthesis.SpeechOption{
		synthesis.WithPitch(pitchForGender(persona)),
		synthesis.WithRate(speakingRate),
		synthesis.WithStartedCallback(func() {
			m.apply(events.NewUtteranceStarted(token))
		}),
		synthesis.WithEndedCallback(func() {
			m.onSynthesisEnded(token, output)
		}),
		synthesis.WithErrorCallback(func(err error) {
			m.apply(events.NewUtteranceError(token, err.Error()))
		}),
	}
	if voice != nil {
		opts = append(opts, synthesis.WithVoice(voice.Name))
	}
	if output != nil {
		opts = append(opts,
			synthesis.WithAudioCallback(func(chunk []byte) {
				m.mu.Lock()
				stale := token != m.activeToken
				m.mu.Unlock()
				if stale {
					return
				}
				if err := output.SendAudio(chunk); err != nil {
					logger.Error("Failed to queue speech audio", "error", err)
				}
			}),
			synthesis.WithEncodingInfo(output.EncodingInfo()),
		)
	}

	if err := synthesizer.Speak(ctx, text, opts...); err != nil {
		m.apply(events.NewUtteranceError(token, err.Error()))
	}
}

// Stop cancels playback and clears speaking unconditionally.
func (m *playbackManager) Stop() {
	m.mu.Lock()
	m.activeToken++
	synthesizer := m.synthesizer
	output := m.audioOutput
	var notify []func()
	if m.speaking {
		m.speaking = false
		if callback := m.callbacks.onSpeakingChange; callback != nil {
			notify = append(notify, func() { callback(false) })
		}
	}
	m.mu.Unlock()

	if synthesizer != nil {
		_ = synthesizer.Cancel()
	}
	if output != nil {
		output.ClearBuffer()
	}
	for _, callback := range notify {
		callback()
	}
}

func (m *playbackManager) IsSpeaking() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speaking
}

func (m *playbackManager) IsEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// Enable arms voice output. Under the single-shot policy this is the
// rearming step between turns.
func (m *playbackManager) Enable() {
	m.setEnabled(true)
}

// Disable disarms voice output and stops anything playing.
func (m *playbackManager) Disable() {
	m.setEnabled(false)
	m.Stop()
}

func (m *playbackManager) setEnabled(enabled bool) {
	m.mu.Lock()
	changed := m.enabled != enabled
	m.enabled = enabled
	callback := m.callbacks.onVoiceChange
	m.mu.Unlock()

	if changed && callback != nil {
		callback(enabled)
	}
}

// onSynthesisEnded defers the utterance-ended transition until the device
// has drained the queued audio, when the output supports signaling that.
func (m *playbackManager) onSynthesisEnded(token int64, output AudioOutput) {
	if notifier, ok := output.(drainNotifier); ok {
		notifier.NotifyDrained(func() {
			m.apply(events.NewUtteranceEnded(token))
		})
		return
	}
	m.apply(events.NewUtteranceEnded(token))
}

// apply is the single reducer for utterance events. Stale tokens are
// dropped before they can touch the speaking state.
func (m *playbackManager) apply(event events.Event) {
	m.mu.Lock()

	var notify []func()

	switch e := event.(type) {
	case events.UtteranceStarted:
		if e.Token != m.activeToken {
			break
		}
		if !m.speaking {
			m.speaking = true
			if callback := m.callbacks.onSpeakingChange; callback != nil {
				notify = append(notify, func() { callback(true) })
			}
		}

	case events.UtteranceEnded:
		if e.Token != m.activeToken {
			break
		}
		if m.speaking {
			m.speaking = false
			if callback := m.callbacks.onSpeakingChange; callback != nil {
				notify = append(notify, func() { callback(false) })
			}
		}
		notify = append(notify, m.disarmAfterUtteranceLocked()...)

	case events.UtteranceError:
		if e.Token != m.activeToken {
			break
		}
		if m.speaking {
			m.speaking = false
			if callback := m.callbacks.onSpeakingChange; callback != nil {
				notify = append(notify, func() { callback(false) })
			}
		}
		if callback := m.callbacks.onError; callback != nil {
			err := errors.New(e.Err)
			notify = append(notify, func() { callback(err) })
		}
		notify = append(notify, m.disarmAfterUtteranceLocked()...)
	}

	m.mu.Unlock()

	for _, callback := range notify {
		callback()
	}
}

// disarmAfterUtteranceLocked must be called with mu held.
func (m *playbackManager) disarmAfterUtteranceLocked() []func() {
	if m.policy != PlaybackPolicySingleShot || !m.enabled {
		return nil
	}
	m.enabled = false
	if callback := m.callbacks.onVoiceChange; callback != nil {
		return []func(){func() { callback(false) }}
	}
	return nil
}

// personaLocked must be called with mu held.
func (m *playbackManager) personaLocked(personaID string) *voices.Persona {
	for i := range m.catalog {
		if m.catalog[i].ID == personaID {
			return &m.catalog[i]
		}
	}
	return nil
}

// pitchForGender keeps prosody stable per gender category.
func pitchForGender(persona *voices.Persona) float64 {
	if persona == nil {
		return pitchNeutral
	}
	switch persona.Gender {
	case voices.GenderMale:
		return pitchMale
	case voices.GenderFemale:
		return pitchFemale
	}
	return pitchNeutral
}

type drainNotifier interface {
	NotifyDrained(callback func())
}

// AudioOutput is a speaker-side device client that plays queued PCM audio.
type AudioOutput interface {
	EncodingInfo() audio.EncodingInfo
	SendAudio(audio []byte) error
	ClearBuffer()
}
