// Package voices assigns synthetic voice personas to the device voices a
// platform actually exposes. The device inventory is dynamic and re-queried
// live, so the assignment must be deterministic for identical inputs.
package voices

import "regexp"

type Gender string

const (
	GenderFemale  Gender = "female"
	GenderMale    Gender = "male"
	GenderNeutral Gender = "neutral"
)

// Persona is a named synthetic voice profile the assistant can speak as.
// Matchers are tried in declaration order against "name language" of each
// device voice.
type Persona struct {
	ID       string
	Label    string
	Gender   Gender
	Language string
	Matchers []*regexp.Regexp
}

// DeviceVoice is a platform-supplied voice. The available set may change at
// runtime.
type DeviceVoice struct {
	Name     string
	Language string
}

// Assignment maps persona IDs to device voices. A persona with no usable
// voice maps to nil. The mapping is injective: a device voice is bound to at
// most one persona.
type Assignment map[string]*DeviceVoice

// Voice returns the device voice bound to the given persona, or nil.
func (a Assignment) Voice(personaID string) *DeviceVoice {
	if a == nil {
		return nil
	}
	return a[personaID]
}
