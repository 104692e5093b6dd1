package voices

import "regexp"

// DefaultCatalog returns the assistant's built-in persona catalog in fixed
// priority order. Earlier personas claim device voices first.
func DefaultCatalog() []Persona {
	return []Persona{
		{
			ID:       "en-female-soft",
			Label:    "Asha · Warm Female",
			Gender:   GenderFemale,
			Language: "en-IN",
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)asha`),
				regexp.MustCompile(`(?i)female`),
				regexp.MustCompile(`(?i)india`),
				regexp.MustCompile(`(?i)en-IN`),
			},
		},
		{
			ID:       "en-female-clear",
			Label:    "Meera · Crisp Female",
			Gender:   GenderFemale,
			Language: "en-IN",
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)meera`),
				regexp.MustCompile(`(?i)female`),
				regexp.MustCompile(`(?i)en-IN`),
			},
		},
		{
			ID:       "en-male-calm",
			Label:    "Arjun · Calm Male",
			Gender:   GenderMale,
			Language: "en-IN",
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)arjun`),
				regexp.MustCompile(`(?i)male`),
				regexp.MustCompile(`(?i)en-IN`),
			},
		},
		{
			ID:       "en-male-energetic",
			Label:    "Rohit · Energetic Male",
			Gender:   GenderMale,
			Language: "en-IN",
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)rohit`),
				regexp.MustCompile(`(?i)male`),
				regexp.MustCompile(`(?i)en-IN`),
			},
		},
		{
			ID:       "en-neutral-global",
			Label:    "Kai · Neutral Global",
			Gender:   GenderNeutral,
			Language: "en-GB",
			Matchers: []*regexp.Regexp{
				regexp.MustCompile(`(?i)english`),
				regexp.MustCompile(`(?i)neutral`),
				regexp.MustCompile(`(?i)en-GB`),
			},
		},
	}
}
