// Package model contains domain models passed between layers.
package model

// RawCharacter is a single person record as returned by the upstream
// source. Numeric attributes arrive as strings and may carry the
// "unknown" sentinel instead of being absent.
type RawCharacter struct {
	Name      string   `json:"name"`
	Height    string   `json:"height"`
	Mass      string   `json:"mass"`
	BirthYear string   `json:"birth_year"`
	Gender    string   `json:"gender"`
	HairColor string   `json:"hair_color"`
	EyeColor  string   `json:"eye_color"`
	Homeworld string   `json:"homeworld"`
	Films     []string `json:"films"`
	Species   []string `json:"species"`
	Starships []string `json:"starships"`
	URL       string   `json:"url"`
}

// Character is the simplified record served to clients.
// Numeric fields are nil when the upstream value was unknown or
// unparseable; the derived HeightIn is nil whenever HeightCM is.
type Character struct {
	Name      string   `json:"name"`
	HeightCM  *float64 `json:"height_cm"`
	HeightIn  *float64 `json:"height_in"`
	MassKG    *float64 `json:"mass_kg"`
	BirthYear string   `json:"birth_year"`
	Gender    string   `json:"gender"`
	HairColor string   `json:"hair_color"`
	EyeColor  string   `json:"eye_color"`
	Homeworld string   `json:"homeworld"`
	Films     []string `json:"films"`
	Species   []string `json:"species"`
	Starships []string `json:"starships"`
	URL       string   `json:"url"`

	// Resolved display names, filled in during a refresh. Kept
	// non-omitempty so cached and freshly computed lists serialize
	// byte-identically.
	HomeworldName string   `json:"homeworld_name"`
	FilmTitles    []string `json:"film_titles"`
	SpeciesNames  []string `json:"species_names"`
	StarshipNames []string `json:"starship_names"`
}
