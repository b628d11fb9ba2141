// Package transform maps raw upstream records onto the simplified
// character shape served to clients.
//
// Transformation is a pure function and never fails: any per-field
// anomaly (unknown sentinel, unparseable number) degrades that field
// to its zero/nil form instead of aborting the record.
package transform

import (
	"math"
	"strconv"
	"strings"

	"github.com/brownkon/StarWarsApp/internal/domain/model"
)

// cmPerInch is the fixed conversion factor for the derived height field.
const cmPerInch = 2.54

// Character converts one raw upstream record into the simplified shape.
// Only allow-listed fields are carried over; everything else the source
// sends is dropped at decode time.
func Character(raw model.RawCharacter) model.Character {
	heightCM := parseNumber(raw.Height)

	name := raw.Name
	if name == "" {
		name = "Unknown"
	}

	return model.Character{
		Name:      name,
		HeightCM:  heightCM,
		HeightIn:  cmToInches(heightCM),
		MassKG:    parseNumber(raw.Mass),
		BirthYear: raw.BirthYear,
		Gender:    raw.Gender,
		HairColor: raw.HairColor,
		EyeColor:  raw.EyeColor,
		Homeworld: raw.Homeworld,
		Films:     cloneList(raw.Films),
		Species:   cloneList(raw.Species),
		Starships: cloneList(raw.Starships),
		URL:       raw.URL,
	}
}

// parseNumber parses upstream numeric strings, ignoring unknowns and
// thousands separators. Returns nil for anything non-numeric.
func parseNumber(value string) *float64 {
	value = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(value, ",", "")))
	if value == "" || value == "unknown" || value == "n/a" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

// cmToInches derives the imperial height, rounded to the nearest inch.
// A nil source always yields a nil result, never a stale number.
func cmToInches(heightCM *float64) *float64 {
	if heightCM == nil {
		return nil
	}
	inches := math.Round(*heightCM / cmPerInch)
	return &inches
}

// cloneList normalizes reference lists so cached and freshly fetched
// records serialize identically (never null, always an array).
func cloneList(urls []string) []string {
	out := make([]string, 0, len(urls))
	return append(out, urls...)
}
