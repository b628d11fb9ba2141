package service

import (
	"sort"
	"strings"

	"github.com/brownkon/StarWarsApp/internal/domain/model"
)

// Sort keys accepted by the characters endpoint.
const (
	SortByName      = "name"
	SortByHeight    = "height"
	SortByMass      = "mass"
	SortByBirthYear = "birth_year"
	SortByGender    = "gender"
	SortByOrigin    = "origin"
)

// Orders accepted by the characters endpoint.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ValidSortBy reports whether key is an accepted sort key.
func ValidSortBy(key string) bool {
	switch key {
	case SortByName, SortByHeight, SortByMass, SortByBirthYear, SortByGender, SortByOrigin:
		return true
	}
	return false
}

// ValidOrder reports whether order is an accepted sort order.
func ValidOrder(order string) bool {
	return order == OrderAsc || order == OrderDesc
}

// Sort orders characters in place, stably, by the requested key.
// Records whose key value is unknown always sort after records with a
// defined value, in both directions.
func Sort(chars []model.Character, sortBy, order string) {
	desc := order == OrderDesc
	sort.SliceStable(chars, func(i, j int) bool {
		ni, si, oki := sortValue(chars[i], sortBy)
		nj, sj, okj := sortValue(chars[j], sortBy)
		if oki != okj {
			// Defined values first regardless of direction.
			return oki
		}
		if !oki {
			return false
		}
		if si != "" || sj != "" {
			if si == sj {
				return false
			}
			if desc {
				return si > sj
			}
			return si < sj
		}
		if ni == nj {
			return false
		}
		if desc {
			return ni > nj
		}
		return ni < nj
	})
}

// sentinel values treated as "unknown" for sorting purposes.
func isUnknown(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "unknown", "n/a", "none", "unavailable":
		return true
	}
	return false
}

// sortValue extracts the comparable value for a key. Numeric keys
// return a float, string keys a lowercased string; ok is false when
// the value is the unknown sentinel.
func sortValue(c model.Character, key string) (num float64, str string, ok bool) {
	switch key {
	case SortByHeight:
		if c.HeightCM == nil {
			return 0, "", false
		}
		return *c.HeightCM, "", true
	case SortByMass:
		if c.MassKG == nil {
			return 0, "", false
		}
		return *c.MassKG, "", true
	case SortByBirthYear:
		return stringValue(c.BirthYear)
	case SortByGender:
		return stringValue(c.Gender)
	case SortByOrigin:
		return stringValue(c.HomeworldName)
	default: // SortByName
		return stringValue(c.Name)
	}
}

func stringValue(value string) (float64, string, bool) {
	if isUnknown(value) {
		return 0, "", false
	}
	return 0, strings.ToLower(value), true
}
