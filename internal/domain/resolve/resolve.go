// Package resolve turns reference identifiers (upstream resource URLs)
// into human-readable display names.
//
// Lookups check the resolved-name cache first and fall back to fetching
// the referenced entity. Failures are isolated per identifier: one bad
// reference degrades to a placeholder, never aborting the batch.
package resolve

import (
	"context"
	"sync"
	"time"

	"github.com/brownkon/StarWarsApp/pkg/logger"
	"github.com/brownkon/StarWarsApp/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

// Category partitions the identifier space. Values double as cache
// namespaces; the same URL is never reused across categories.
type Category string

// Reference categories.
const (
	CategoryPlanet   Category = "planet"
	CategoryFilm     Category = "film"
	CategorySpecies  Category = "species"
	CategoryStarship Category = "starship"
)

// Placeholder display names.
const (
	// UnknownName stands in for an absent reference.
	UnknownName = "Unknown"
	// UnavailableName stands in for a reference whose resolution failed.
	UnavailableName = "Unavailable"
)

// Default resolver configuration constants.
const (
	defaultConcurrency = 8
	defaultItemTimeout = 5 * time.Second
)

// displayField returns the upstream field carrying the display name.
func (c Category) displayField() string {
	if c == CategoryFilm {
		return "title"
	}
	return "name"
}

// Ref identifies one referenced entity.
type Ref struct {
	Category Category
	URL      string
}

// Fresh is a name fetched from the source during a lookup; the caller
// persists these so later lookups hit the cache.
type Fresh struct {
	Ref  Ref
	Name string
}

// Fetcher fetches one referenced entity as a loose document.
type Fetcher interface {
	Resource(ctx context.Context, url string) (map[string]any, error)
}

// NameStore is the read side of the resolved-name cache.
type NameStore interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
}

// Request carries one optional origin reference and up to three lists
// of grouping references.
type Request struct {
	Homeworld *string
	Films     []string
	Species   []string
	Starships []string
}

// Response mirrors Request's shape exactly: same lengths, same order.
type Response struct {
	Homeworld string
	Films     []string
	Species   []string
	Starships []string
}

// Resolver resolves reference identifiers to display names.
type Resolver struct {
	fetcher     Fetcher
	store       NameStore
	concurrency int
	itemTimeout time.Duration
	logger      logger.Logger
}

// New creates a Resolver with configuration options.
func New(fetcher Fetcher, store NameStore, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher:     fetcher,
		store:       store,
		concurrency: defaultConcurrency,
		itemTimeout: defaultItemTimeout,
		logger:      logger.Get().Named("resolve"),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Names resolves one request, preserving its shape: the origin stays a
// single value (UnknownName when absent) and each list keeps its
// length and order.
func (r *Resolver) Names(ctx context.Context, req Request) (Response, []Fresh) {
	refs := make([]Ref, 0, 1+len(req.Films)+len(req.Species)+len(req.Starships))
	if req.Homeworld != nil && *req.Homeworld != "" {
		refs = append(refs, Ref{Category: CategoryPlanet, URL: *req.Homeworld})
	}
	for _, url := range req.Films {
		refs = append(refs, Ref{Category: CategoryFilm, URL: url})
	}
	for _, url := range req.Species {
		refs = append(refs, Ref{Category: CategorySpecies, URL: url})
	}
	for _, url := range req.Starships {
		refs = append(refs, Ref{Category: CategoryStarship, URL: url})
	}

	names, fresh := r.Lookup(ctx, refs)

	resp := Response{
		Homeworld: UnknownName,
		Films:     pick(names, CategoryFilm, req.Films),
		Species:   pick(names, CategorySpecies, req.Species),
		Starships: pick(names, CategoryStarship, req.Starships),
	}
	if req.Homeworld != nil && *req.Homeworld != "" {
		resp.Homeworld = names[Ref{Category: CategoryPlanet, URL: *req.Homeworld}]
	}
	return resp, fresh
}

// Lookup resolves a batch of references. Duplicates are fetched at most
// once per call even when the cache is cold; fetches run concurrently,
// bounded by the configured limit. The returned map has an entry for
// every input ref. Newly fetched names come back as the second value
// for the caller to persist.
func (r *Resolver) Lookup(ctx context.Context, refs []Ref) (map[Ref]string, []Fresh) {
	unique := make(map[Ref]struct{}, len(refs))
	for _, ref := range refs {
		if ref.URL == "" {
			continue
		}
		unique[ref] = struct{}{}
	}

	var mu sync.Mutex
	names := make(map[Ref]string, len(unique))
	fresh := make([]Fresh, 0)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for ref := range unique {
		ref := ref
		g.Go(func() error {
			name, fetched := r.one(gctx, ref)
			mu.Lock()
			names[ref] = name
			if fetched {
				fresh = append(fresh, Fresh{Ref: ref, Name: name})
			}
			mu.Unlock()
			return nil
		})
	}
	// Workers never return errors; failures degrade per item.
	_ = g.Wait()

	return names, fresh
}

// one resolves a single reference: cache first, then a bounded fetch.
// The second return reports whether the name came from the source.
func (r *Resolver) one(ctx context.Context, ref Ref) (string, bool) {
	ns := string(ref.Category)

	if cached, err := r.store.Get(ctx, ns, ref.URL); err == nil {
		metrics.RecordCacheHit(ns)
		return string(cached), false
	}
	metrics.RecordCacheMiss(ns)

	fetchCtx, cancel := context.WithTimeout(ctx, r.itemTimeout)
	defer cancel()

	doc, err := r.fetcher.Resource(fetchCtx, ref.URL)
	if err != nil {
		metrics.RecordResolutionFailure(ns)
		r.logger.Warn(ctx, "reference resolution failed",
			logger.String("category", ns),
			logger.String("url", ref.URL),
			logger.Error(err))
		return UnavailableName, false
	}

	name, ok := doc[ref.Category.displayField()].(string)
	if !ok || name == "" {
		metrics.RecordResolutionFailure(ns)
		r.logger.Warn(ctx, "reference has no display field",
			logger.String("category", ns),
			logger.String("url", ref.URL))
		return UnavailableName, false
	}
	return name, true
}

// pick maps a URL list back to names, preserving order and length.
func pick(names map[Ref]string, category Category, urls []string) []string {
	out := make([]string, len(urls))
	for i, url := range urls {
		if url == "" {
			out[i] = UnavailableName
			continue
		}
		out[i] = names[Ref{Category: category, URL: url}]
	}
	return out
}
