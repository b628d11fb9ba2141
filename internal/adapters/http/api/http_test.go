package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brownkon/StarWarsApp/internal/adapters/http/api"
	"github.com/brownkon/StarWarsApp/internal/adapters/swapi"
	"github.com/brownkon/StarWarsApp/internal/domain/resolve"
	"github.com/brownkon/StarWarsApp/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// fakeDeps implements api.Dependencies with canned results.
type fakeDeps struct {
	chars       []api.Character
	charsErr    error
	lastSortBy  string
	lastOrder   string
	lastRefresh bool
	resolveResp resolve.Response
}

func (d *fakeDeps) Characters(_ context.Context, sortBy, order string, refresh bool) ([]api.Character, error) {
	d.lastSortBy = sortBy
	d.lastOrder = order
	d.lastRefresh = refresh
	if d.charsErr != nil {
		return nil, d.charsErr
	}
	return d.chars, nil
}

func (d *fakeDeps) Resolve(context.Context, resolve.Request) resolve.Response {
	return d.resolveResp
}

func newTestServer(deps api.Dependencies) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestCharactersEndpoint(t *testing.T) {
	Convey("Given a server with two characters", t, func() {
		deps := &fakeDeps{
			chars: []api.Character{
				{Name: "Luke Skywalker", HomeworldName: "Tatooine"},
				{Name: "Leia Organa", HomeworldName: "Alderaan"},
			},
		}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When requesting the list with explicit parameters", func() {
			resp, err := http.Get(srv.URL + "/api/characters?sort_by=mass&order=desc&refresh=true")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the parameters should reach the service", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(deps.lastSortBy, ShouldEqual, "mass")
				So(deps.lastOrder, ShouldEqual, "desc")
				So(deps.lastRefresh, ShouldBeTrue)
			})

			Convey("And the body should be the JSON character list", func() {
				var got []api.Character
				So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
				So(got, ShouldHaveLength, 2)
				So(got[0].Name, ShouldEqual, "Luke Skywalker")
			})

			Convey("And a request id should be issued", func() {
				So(resp.Header.Get("X-Request-ID"), ShouldNotBeEmpty)
			})
		})

		Convey("When omitting the query parameters", func() {
			resp, err := http.Get(srv.URL + "/api/characters")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then defaults should apply", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(deps.lastSortBy, ShouldEqual, "name")
				So(deps.lastOrder, ShouldEqual, "asc")
				So(deps.lastRefresh, ShouldBeFalse)
			})
		})

		Convey("When sending an invalid sort key", func() {
			resp, err := http.Get(srv.URL + "/api/characters?sort_by=midichlorians")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it should reject with 400 and a detail message", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				var body map[string]string
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body["detail"], ShouldContainSubstring, "sort_by")
			})
		})

		Convey("When sending an invalid order", func() {
			resp, err := http.Get(srv.URL + "/api/characters?order=sideways")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using POST on the characters route", func() {
			resp, err := http.Post(srv.URL+"/api/characters", "application/json", strings.NewReader("{}"))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a service whose refresh fails", t, func() {
		Convey("When the source is unreachable", func() {
			deps := &fakeDeps{charsErr: fmt.Errorf("%w: dial tcp: refused", swapi.ErrUnreachable)}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/api/characters?refresh=true")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it should answer 504 with a detail body", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusGatewayTimeout)
				var body map[string]string
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body["detail"], ShouldContainSubstring, "unable to reach SWAPI")
			})
		})

		Convey("When the source returns an error status", func() {
			deps := &fakeDeps{charsErr: fmt.Errorf("%w: 500", swapi.ErrBadStatus)}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/api/characters?refresh=true")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it should answer 502", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadGateway)
			})
		})

		Convey("When the payload is malformed", func() {
			deps := &fakeDeps{charsErr: fmt.Errorf("%w: unexpected token", swapi.ErrMalformedPayload)}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/api/characters?refresh=true")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadGateway)
		})
	})
}

func TestResolveEndpoint(t *testing.T) {
	Convey("Given a server with a resolving service", t, func() {
		deps := &fakeDeps{
			resolveResp: resolve.Response{
				Homeworld: "Tatooine",
				Films:     []string{"A New Hope"},
				Species:   []string{},
				Starships: []string{},
			},
		}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When posting a resolve request", func() {
			body := `{"homeworld": "planets/1", "films": ["films/1"], "species": [], "starships": []}`
			resp, err := http.Post(srv.URL+"/api/resolve", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the response should mirror the request shape", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var got map[string]any
				So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
				So(got["homeworld"], ShouldEqual, "Tatooine")
				So(got["films"], ShouldResemble, []any{"A New Hope"})
				So(got["species"], ShouldResemble, []any{})
			})
		})

		Convey("When posting a malformed body", func() {
			resp, err := http.Post(srv.URL+"/api/resolve", "application/json", strings.NewReader("{"))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it should reject with 400", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When using GET on the resolve route", func() {
			resp, err := http.Get(srv.URL + "/api/resolve")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given the health endpoint", t, func() {
		srv := newTestServer(&fakeDeps{})
		defer srv.Close()

		Convey("When probing /healthz", func() {
			resp, err := http.Get(srv.URL + "/healthz")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it should serve metrics output", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})
	})
}
