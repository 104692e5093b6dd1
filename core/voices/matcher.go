package voices

import "strings"

// familyFallbacks maps a region subtag to the co-regional language family
// tried after a persona's preferred regional tag fails.
var familyFallbacks = map[string]string{
	"in": "hi",
}

// Match assigns device voices to personas. It is pure, deterministic, and
// order-sensitive on both inputs: the same device list and catalog always
// yield the same assignment, so UI voice pickers do not jump between
// re-queries of the inventory.
//
// Personas are processed in declared order. For each persona the candidate
// chain is: the first device voice matched by the persona's patterns (in
// pattern order), then the first unclaimed voice with the persona's regional
// tag, then the family fallback tag, then the same base language, then any
// unclaimed voice. The first unclaimed candidate wins and is marked claimed;
// a persona with no candidate left maps to nil. Claims are tracked per
// device entry, so platform voices sharing a name stay distinct.
func Match(devices []DeviceVoice, personas []Persona) Assignment {
	assignment := make(Assignment, len(personas))
	claimed := make([]bool, len(devices))

	for _, persona := range personas {
		regional := strings.ToLower(persona.Language)
		base := baseLanguage(regional)

		candidates := []int{
			matchPatterns(devices, persona),
			matchLanguage(devices, claimed, regional),
			matchLanguagePrefix(devices, claimed, familyFallbacks[regionSubtag(regional)]),
			matchLanguagePrefix(devices, claimed, base),
			firstUnclaimed(claimed),
		}

		chosen := -1
		for _, candidate := range candidates {
			if candidate >= 0 && !claimed[candidate] {
				chosen = candidate
				break
			}
		}

		if chosen >= 0 {
			claimed[chosen] = true
			assignment[persona.ID] = &devices[chosen]
		} else {
			assignment[persona.ID] = nil
		}
	}

	return assignment
}

// matchPatterns returns the index of the first device voice whose
// "name language" string matches any persona pattern, walking patterns in
// declared order. The result may already be claimed; the caller skips
// claimed candidates.
func matchPatterns(devices []DeviceVoice, persona Persona) int {
	for _, matcher := range persona.Matchers {
		for i := range devices {
			if matcher.MatchString(devices[i].Name + " " + devices[i].Language) {
				return i
			}
		}
	}
	return -1
}

func matchLanguage(devices []DeviceVoice, claimed []bool, language string) int {
	if language == "" {
		return -1
	}
	for i := range devices {
		if claimed[i] {
			continue
		}
		if strings.Contains(strings.ToLower(devices[i].Language), language) {
			return i
		}
	}
	return -1
}

func matchLanguagePrefix(devices []DeviceVoice, claimed []bool, prefix string) int {
	if prefix == "" {
		return -1
	}
	for i := range devices {
		if claimed[i] {
			continue
		}
		if strings.HasPrefix(strings.ToLower(devices[i].Language), prefix) {
			return i
		}
	}
	return -1
}

func firstUnclaimed(claimed []bool) int {
	for i := range claimed {
		if !claimed[i] {
			return i
		}
	}
	return -1
}

func baseLanguage(tag string) string {
	if base, _, found := strings.Cut(tag, "-"); found {
		return base
	}
	return tag
}

func regionSubtag(tag string) string {
	if _, region, found := strings.Cut(tag, "-"); found {
		return region
	}
	return ""
}
