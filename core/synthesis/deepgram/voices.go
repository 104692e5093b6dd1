package deepgram

import "github.com/krishisetu/sakhi-core/core/voices"

type deepgramVoice struct {
	model    string
	language string
}

const defaultVoiceModel = "aura-2-asteria-en"

var availableVoices = []deepgramVoice{
	{model: "aura-2-asteria-en", language: "en-US"},
	{model: "aura-2-luna-en", language: "en-US"},
	{model: "aura-2-stella-en", language: "en-US"},
	{model: "aura-2-athena-en", language: "en-GB"},
	{model: "aura-2-hera-en", language: "en-US"},
	{model: "aura-2-orion-en", language: "en-US"},
	{model: "aura-2-arcas-en", language: "en-US"},
	{model: "aura-2-perseus-en", language: "en-US"},
	{model: "aura-2-angus-en", language: "en-IE"},
	{model: "aura-2-orpheus-en", language: "en-US"},
	{model: "aura-2-helios-en", language: "en-GB"},
	{model: "aura-2-zeus-en", language: "en-US"},
}

// DeviceVoices exposes the provider's voice inventory in the shape the
// persona matcher consumes.
func DeviceVoices() []voices.DeviceVoice {
	inventory := make([]voices.DeviceVoice, 0, len(availableVoices))
	for _, voice := range availableVoices {
		inventory = append(inventory, voices.DeviceVoice{
			Name:     voice.model,
			Language: voice.language,
		})
	}
	return inventory
}

func isKnownVoice(model string) bool {
	for _, voice := range availableVoices {
		if voice.model == model {
			return true
		}
	}
	return false
}
