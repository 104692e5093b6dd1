package voices

import (
	"reflect"
	"testing"
)

func TestMatchPrefersPatternThenFallsThroughChain(t *testing.T) {
	devices := []DeviceVoice{
		{Name: "Meera (en-IN, female)", Language: "en-IN"},
		{Name: "Arjun (en-IN, male)", Language: "en-IN"},
	}
	personas := DefaultCatalog()[:3] // Asha, Meera, Arjun

	assignment := Match(devices, personas)

	if voice := assignment.Voice("en-female-soft"); voice == nil || voice.Name != "Meera (en-IN, female)" {
		t.Fatalf("expected Asha to claim the first female en-IN voice, got %+v", voice)
	}
	if voice := assignment.Voice("en-female-clear"); voice == nil || voice.Name != "Arjun (en-IN, male)" {
		t.Fatalf("expected Meera to fall through to the remaining unclaimed voice, got %+v", voice)
	}
	if voice := assignment.Voice("en-male-calm"); voice != nil {
		t.Fatalf("expected Arjun to receive no voice once the inventory was exhausted, got %+v", voice)
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	devices := []DeviceVoice{
		{Name: "Google UK English Female", Language: "en-GB"},
		{Name: "Google हिन्दी", Language: "hi-IN"},
		{Name: "Microsoft Heera - English (India)", Language: "en-IN"},
		{Name: "Alex", Language: "en-US"},
	}
	personas := DefaultCatalog()

	first := Match(devices, personas)
	second := Match(devices, personas)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical assignments for identical inputs, got %v and %v", first, second)
	}
}

func TestMatchIsInjective(t *testing.T) {
	devices := []DeviceVoice{
		{Name: "Heera", Language: "en-IN"},
		{Name: "Ravi", Language: "en-IN"},
		{Name: "Hazel", Language: "en-GB"},
	}

	assignment := Match(devices, DefaultCatalog())

	seen := map[string]string{}
	for personaID, voice := range assignment {
		if voice == nil {
			continue
		}
		if previous, exists := seen[voice.Name]; exists {
			t.Fatalf("voice %q assigned to both %q and %q", voice.Name, previous, personaID)
		}
		seen[voice.Name] = personaID
	}
}

func TestMatchRegionalTagBeatsBaseLanguage(t *testing.T) {
	devices := []DeviceVoice{
		{Name: "Samantha", Language: "en-US"},
		{Name: "Heera", Language: "en-IN"},
	}
	// A persona without patterns exercises the language tiers directly.
	personas := []Persona{{ID: "bare", Language: "en-IN"}}

	assignment := Match(devices, personas)

	if voice := assignment.Voice("bare"); voice == nil || voice.Name != "Heera" {
		t.Fatalf("expected the en-IN voice to win the regional tier, got %+v", voice)
	}
}

func TestMatchFamilyFallback(t *testing.T) {
	devices := []DeviceVoice{
		{Name: "Lekha", Language: "hi-IN"},
		{Name: "Hazel", Language: "en-GB"},
	}
	personas := DefaultCatalog()[:1]

	assignment := Match(devices, personas)

	if voice := assignment.Voice("en-female-soft"); voice == nil || voice.Name != "Lekha" {
		t.Fatalf("expected the hi-IN family fallback to win over en-GB, got %+v", voice)
	}
}

func TestMatchDistinguishesVoicesSharingAName(t *testing.T) {
	devices := []DeviceVoice{
		{Name: "Voice", Language: "en-IN"},
		{Name: "Voice", Language: "hi-IN"},
	}
	personas := []Persona{
		{ID: "first", Language: "en-IN"},
		{ID: "second", Language: "en-IN"},
	}

	assignment := Match(devices, personas)

	first := assignment.Voice("first")
	second := assignment.Voice("second")
	if first == nil || first.Language != "en-IN" {
		t.Fatalf("expected the first persona to claim the en-IN voice, got %+v", first)
	}
	if second == nil || second.Language != "hi-IN" {
		t.Fatalf("expected the second persona to claim the same-named hi-IN voice, got %+v", second)
	}
	if first == second {
		t.Fatalf("expected distinct device entries behind the shared name")
	}
}

func TestMatchEmptyInventoryMapsEveryPersonaToNil(t *testing.T) {
	assignment := Match(nil, DefaultCatalog())

	for personaID, voice := range assignment {
		if voice != nil {
			t.Fatalf("expected nil voice for %q with an empty inventory, got %+v", personaID, voice)
		}
	}
}
