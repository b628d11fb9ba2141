package service_test

import (
	"testing"

	service "github.com/brownkon/StarWarsApp/internal/app"
	"github.com/brownkon/StarWarsApp/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func f(v float64) *float64 { return &v }

func namesOf(chars []model.Character) []string {
	out := make([]string, len(chars))
	for i, c := range chars {
		out[i] = c.Name
	}
	return out
}

func TestSort(t *testing.T) {
	Convey("Given characters with mixed known and unknown masses", t, func() {
		chars := []model.Character{
			{Name: "Heavy", MassKG: f(120)},
			{Name: "Mystery"},
			{Name: "Light", MassKG: f(60)},
			{Name: "Middle", MassKG: f(80)},
		}

		Convey("When sorting by mass ascending", func() {
			service.Sort(chars, service.SortByMass, service.OrderAsc)

			Convey("Then unknowns should come last", func() {
				So(namesOf(chars), ShouldResemble, []string{"Light", "Middle", "Heavy", "Mystery"})
			})
		})

		Convey("When sorting by mass descending", func() {
			service.Sort(chars, service.SortByMass, service.OrderDesc)

			Convey("Then unknowns should still come last", func() {
				So(namesOf(chars), ShouldResemble, []string{"Heavy", "Middle", "Light", "Mystery"})
			})
		})
	})

	Convey("Given characters sharing an equal sort key value", t, func() {
		chars := []model.Character{
			{Name: "First", Gender: "male"},
			{Name: "Second", Gender: "male"},
			{Name: "Third", Gender: "female"},
			{Name: "Fourth", Gender: "male"},
		}

		Convey("When sorting by gender ascending", func() {
			service.Sort(chars, service.SortByGender, service.OrderAsc)

			Convey("Then ties should keep their original relative order", func() {
				So(namesOf(chars), ShouldResemble, []string{"Third", "First", "Second", "Fourth"})
			})
		})
	})

	Convey("Given characters with sentinel string values", t, func() {
		chars := []model.Character{
			{Name: "A", BirthYear: "unknown"},
			{Name: "B", BirthYear: "19BBY"},
			{Name: "C", BirthYear: "n/a"},
			{Name: "D", BirthYear: "41.9BBY"},
		}

		Convey("When sorting by birth year descending", func() {
			service.Sort(chars, service.SortByBirthYear, service.OrderDesc)

			Convey("Then sentinel values should never win the sort", func() {
				So(namesOf(chars)[2:], ShouldResemble, []string{"A", "C"})
			})
		})
	})

	Convey("Given characters with resolved origin names", t, func() {
		chars := []model.Character{
			{Name: "A", HomeworldName: "Tatooine"},
			{Name: "B", HomeworldName: "Unavailable"},
			{Name: "C", HomeworldName: "Alderaan"},
			{Name: "D", HomeworldName: "Unknown"},
		}

		Convey("When sorting by origin ascending", func() {
			service.Sort(chars, service.SortByOrigin, service.OrderAsc)

			Convey("Then placeholder origins should sort after real ones", func() {
				So(namesOf(chars), ShouldResemble, []string{"C", "A", "B", "D"})
			})
		})
	})

	Convey("Given name sorting is case-insensitive", t, func() {
		chars := []model.Character{
			{Name: "luke"},
			{Name: "Ackbar"},
			{Name: "ZEB"},
		}

		Convey("When sorting by name ascending", func() {
			service.Sort(chars, service.SortByName, service.OrderAsc)

			Convey("Then order should ignore case", func() {
				So(namesOf(chars), ShouldResemble, []string{"Ackbar", "luke", "ZEB"})
			})
		})
	})
}

func TestSortValidation(t *testing.T) {
	Convey("Given the accepted sort parameters", t, func() {
		Convey("Then all documented keys should validate", func() {
			for _, key := range []string{"name", "height", "mass", "birth_year", "gender", "origin"} {
				So(service.ValidSortBy(key), ShouldBeTrue)
			}
			So(service.ValidSortBy("mass_kg"), ShouldBeFalse)
			So(service.ValidSortBy(""), ShouldBeFalse)
		})

		Convey("Then only asc and desc should validate as orders", func() {
			So(service.ValidOrder("asc"), ShouldBeTrue)
			So(service.ValidOrder("desc"), ShouldBeTrue)
			So(service.ValidOrder("up"), ShouldBeFalse)
		})
	})
}
