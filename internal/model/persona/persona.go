package persona

import "math/rand"

// DefaultGender is used when the caller does not specify one.
const DefaultGender = "woman"

// Age bounds for generated personas.
const (
	minAge = 25
	maxAge = 35
)

var occupations = []string{
	"teacher", "tour guide", "cafe owner", "office worker", "hotel manager",
	"shopkeeper", "restaurant owner", "travel blogger", "artist", "musician",
}

var hobbyPool = []string{
	"cooking", "photography", "hiking", "reading", "painting",
	"traveling", "dancing", "gardening", "writing", "music",
}

// Persona is the fictional local character portrayed by the model for a
// given country and gender. It is ephemeral: folded into the opening system
// turn and then discarded.
type Persona struct {
	Country    string   `json:"country"`
	Gender     string   `json:"gender"`
	Age        int      `json:"age"`
	Occupation string   `json:"occupation"`
	Hobbies    []string `json:"hobbies"`
}

// Random generates a persona for the given country: an age in [25,35], an
// occupation from the fixed set and two distinct hobbies sampled without
// replacement. An empty gender falls back to DefaultGender.
func Random(country, gender string) Persona {
	if gender == "" {
		gender = DefaultGender
	}

	idx := rand.Perm(len(hobbyPool))
	hobbies := []string{hobbyPool[idx[0]], hobbyPool[idx[1]]}

	return Persona{
		Country:    country,
		Gender:     gender,
		Age:        minAge + rand.Intn(maxAge-minAge+1),
		Occupation: occupations[rand.Intn(len(occupations))],
		Hobbies:    hobbies,
	}
}
