// Package service provides the core business service that implements
// the dependencies required by the HTTP API. It orchestrates the
// fetch-transform-resolve-persist cycle behind the characters endpoint.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brownkon/StarWarsApp/internal/adapters/cache"
	"github.com/brownkon/StarWarsApp/internal/domain/model"
	"github.com/brownkon/StarWarsApp/internal/domain/resolve"
	"github.com/brownkon/StarWarsApp/internal/domain/transform"
	"github.com/brownkon/StarWarsApp/pkg/logger"
	"github.com/brownkon/StarWarsApp/pkg/metrics"
)

// Fetcher retrieves raw records and referenced resources from the
// upstream source.
type Fetcher interface {
	People(ctx context.Context) ([]model.RawCharacter, error)
	Resource(ctx context.Context, url string) (map[string]any, error)
}

// Service implements the API dependencies for the explorer backend.
type Service struct {
	store    cache.Store
	fetcher  Fetcher
	resolver *resolve.Resolver

	// Configuration
	resolveConcurrency int
	resolveTimeout     time.Duration

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the cache store used for persistence.
func WithStore(store cache.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithFetcher sets the upstream fetcher.
func WithFetcher(fetcher Fetcher) Option {
	return func(s *Service) {
		s.fetcher = fetcher
	}
}

// WithResolveConcurrency caps simultaneous per-identifier fetches.
func WithResolveConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.resolveConcurrency = n
		}
	}
}

// WithResolveTimeout bounds each per-identifier fetch.
func WithResolveTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.resolveTimeout = timeout
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// Default service configuration constants.
const (
	defaultResolveConcurrency = 8
	defaultResolveTimeout     = 5 * time.Second
)

// New creates a Service with configuration options. Store and fetcher
// are required; Start reports their absence.
func New(opts ...Option) *Service {
	s := &Service{
		resolveConcurrency: defaultResolveConcurrency,
		resolveTimeout:     defaultResolveTimeout,
		logger:             logger.Get().Named("service"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start validates dependencies and builds the resolver.
func (s *Service) Start(ctx context.Context) error {
	if s.store == nil {
		return fmt.Errorf("%w: store", ErrMissingDependency)
	}
	if s.fetcher == nil {
		return fmt.Errorf("%w: fetcher", ErrMissingDependency)
	}

	s.resolver = resolve.New(s.fetcher, s.store,
		resolve.WithConcurrency(s.resolveConcurrency),
		resolve.WithItemTimeout(s.resolveTimeout),
		resolve.WithLogger(s.logger.Named("resolve")),
	)

	// Seed the gauge from whatever survived the last process.
	if chars, err := s.cachedCharacters(ctx); err == nil {
		metrics.UpdateCharactersCached(len(chars))
	}

	return nil
}

// Stop releases service resources. The store itself is owned and
// closed by the caller that opened it.
func (s *Service) Stop() {
	s.logger.Info(context.Background(), "service stopped")
}

// Characters returns the transformed character list in the requested
// order. With refresh false and a populated cache it serves straight
// from the store; otherwise it runs a full refresh cycle.
func (s *Service) Characters(ctx context.Context, sortBy, order string, refresh bool) ([]model.Character, error) {
	if !refresh {
		if chars, err := s.cachedCharacters(ctx); err == nil {
			metrics.RecordCacheHit(cache.NamespaceCharacters)
			Sort(chars, sortBy, order)
			return chars, nil
		}
		metrics.RecordCacheMiss(cache.NamespaceCharacters)
	}

	chars, err := s.refresh(ctx)
	if err != nil {
		return nil, err
	}
	Sort(chars, sortBy, order)
	return chars, nil
}

// Resolve resolves a batch of reference identifiers to display names
// and persists anything newly fetched.
func (s *Service) Resolve(ctx context.Context, req resolve.Request) resolve.Response {
	resp, fresh := s.resolver.Names(ctx, req)
	s.persistFresh(ctx, fresh)
	return resp
}

// cachedCharacters loads the transformed list from the store. Any
// storage or decoding problem reads as a miss so callers fall through
// to the refresh path.
func (s *Service) cachedCharacters(ctx context.Context) ([]model.Character, error) {
	data, err := s.store.Get(ctx, cache.NamespaceCharacters, cache.CharactersKey)
	if err != nil {
		return nil, err
	}
	var chars []model.Character
	if err := json.Unmarshal(data, &chars); err != nil {
		s.logger.Warn(ctx, "cached character list is corrupt; forcing refresh", logger.Error(err))
		return nil, fmt.Errorf("%w: %v", cache.ErrCacheIO, err)
	}
	return chars, nil
}

// refresh runs the full cycle: fetch every page, transform every
// record, resolve every referenced name, persist the result. A fetch
// failure leaves the existing cache untouched.
func (s *Service) refresh(ctx context.Context) ([]model.Character, error) {
	start := time.Now()

	raw, err := s.fetcher.People(ctx)
	if err != nil {
		return nil, err
	}

	chars := make([]model.Character, 0, len(raw))
	for _, r := range raw {
		chars = append(chars, transform.Character(r))
	}

	refs := collectRefs(chars)
	names, fresh := s.resolver.Lookup(ctx, refs)
	for i := range chars {
		enrich(&chars[i], names)
	}

	s.persist(ctx, chars, fresh)

	metrics.UpdateCharactersCached(len(chars))
	metrics.RecordRefreshDuration(float64(time.Since(start).Milliseconds()))
	s.logger.Info(ctx, "refreshed character cache",
		logger.Int("characters", len(chars)),
		logger.Int("resolved", len(fresh)))

	return chars, nil
}

// persist writes the whole list plus newly resolved names in one
// transaction. Write failures are warnings: the in-memory result is
// still served to the caller.
func (s *Service) persist(ctx context.Context, chars []model.Character, fresh []resolve.Fresh) {
	payload, err := json.Marshal(chars)
	if err != nil {
		s.logger.Warn(ctx, "failed to encode character list", logger.Error(err))
		return
	}

	entries := make([]cache.Entry, 0, 1+len(fresh))
	entries = append(entries, cache.Entry{
		Namespace: cache.NamespaceCharacters,
		Key:       cache.CharactersKey,
		Value:     payload,
	})
	for _, f := range fresh {
		entries = append(entries, cache.Entry{
			Namespace: string(f.Ref.Category),
			Key:       f.Ref.URL,
			Value:     []byte(f.Name),
		})
	}

	if err := s.store.PutMany(ctx, entries); err != nil {
		metrics.RecordCacheWriteError()
		s.logger.Warn(ctx, "failed to persist refreshed cache", logger.Error(err))
	}
}

// persistFresh writes newly resolved names from a resolve call.
func (s *Service) persistFresh(ctx context.Context, fresh []resolve.Fresh) {
	if len(fresh) == 0 {
		return
	}
	entries := make([]cache.Entry, 0, len(fresh))
	for _, f := range fresh {
		entries = append(entries, cache.Entry{
			Namespace: string(f.Ref.Category),
			Key:       f.Ref.URL,
			Value:     []byte(f.Name),
		})
	}
	if err := s.store.PutMany(ctx, entries); err != nil {
		metrics.RecordCacheWriteError()
		s.logger.Warn(ctx, "failed to persist resolved names", logger.Error(err))
	}
}

// collectRefs gathers every reference identifier across the whole set,
// so one resolver pass shares its dedup across all records.
func collectRefs(chars []model.Character) []resolve.Ref {
	refs := make([]resolve.Ref, 0, len(chars)*4)
	for _, c := range chars {
		if c.Homeworld != "" {
			refs = append(refs, resolve.Ref{Category: resolve.CategoryPlanet, URL: c.Homeworld})
		}
		for _, url := range c.Films {
			refs = append(refs, resolve.Ref{Category: resolve.CategoryFilm, URL: url})
		}
		for _, url := range c.Species {
			refs = append(refs, resolve.Ref{Category: resolve.CategorySpecies, URL: url})
		}
		for _, url := range c.Starships {
			refs = append(refs, resolve.Ref{Category: resolve.CategoryStarship, URL: url})
		}
	}
	return refs
}

// enrich fills a character's display-name fields from resolved names.
func enrich(c *model.Character, names map[resolve.Ref]string) {
	c.HomeworldName = resolve.UnknownName
	if c.Homeworld != "" {
		c.HomeworldName = names[resolve.Ref{Category: resolve.CategoryPlanet, URL: c.Homeworld}]
	}
	c.FilmTitles = mapNames(names, resolve.CategoryFilm, c.Films)
	c.SpeciesNames = mapNames(names, resolve.CategorySpecies, c.Species)
	c.StarshipNames = mapNames(names, resolve.CategoryStarship, c.Starships)
}

func mapNames(names map[resolve.Ref]string, category resolve.Category, urls []string) []string {
	out := make([]string, len(urls))
	for i, url := range urls {
		out[i] = names[resolve.Ref{Category: category, URL: url}]
	}
	return out
}
