// Package wikidata resolves knowledge-base identifiers to coordinates using
// the Wikidata entity-data endpoint.
package wikidata

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/fwojciec/nerview"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Wikidata host.
const DefaultBaseURL = "https://www.wikidata.org"

// DefaultTimeout bounds each lookup, including reading the response.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is sent with every request. Wikidata rejects requests
// without a recognizable agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// CoordinateProperty is the "coordinate location" property.
const CoordinateProperty = "P625"

// DefaultLanguages is the label and description preference order.
var DefaultLanguages = []string{"en", "sr"}

// Ensure Resolver implements nerview.Resolver at compile time.
var _ nerview.Resolver = (*Resolver)(nil)

// Resolver looks up items over HTTP. It performs no caching; wrap it with
// cache.Resolver for that.
type Resolver struct {
	client    *http.Client
	baseURL   string
	timeout   time.Duration
	userAgent string
	languages []string
	limiter   *rate.Limiter
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTimeout sets the per-lookup timeout.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.timeout = d
	}
}

// WithBaseURL points the resolver at another host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(r *Resolver) {
		r.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(r *Resolver) {
		r.userAgent = ua
	}
}

// WithLanguages sets the label and description language preference.
func WithLanguages(langs ...string) Option {
	return func(r *Resolver) {
		r.languages = langs
	}
}

// WithRateLimit caps requests per second. Zero or negative disables pacing.
func WithRateLimit(rps float64) Option {
	return func(r *Resolver) {
		if rps <= 0 {
			r.limiter = nil
			return
		}
		r.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewResolver creates a new Wikidata Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		languages: DefaultLanguages,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.client = &http.Client{
		Timeout: r.timeout,
	}

	return r
}

// EntityDataURL returns the JSON entity-data URL for qid.
func (r *Resolver) EntityDataURL(qid string) string {
	return r.baseURL + "/wiki/Special:EntityData/" + qid + ".json"
}

// Resolve fetches the item and returns its label, description and
// coordinates.
func (r *Resolver) Resolve(ctx context.Context, qid string) (*nerview.Place, error) {
	if !nerview.ValidQID(qid) {
		return nil, nerview.Errorf(nerview.EINVALID, "invalid identifier %q", qid)
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, nerview.Errorf(nerview.EUNAVAILABLE, "network error for %s: %v", qid, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.EntityDataURL(qid), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, nerview.Errorf(nerview.EUNAVAILABLE, "network error for %s: %v", qid, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nerview.Errorf(nerview.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, qid)
	}

	var data entityData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, nerview.Errorf(nerview.EINTERNAL, "unexpected response for %s: %v", qid, err)
	}

	ent, ok := data.entity(qid)
	if !ok {
		return nil, nerview.Errorf(nerview.ENOTFOUND, "no entity data for %s", qid)
	}

	lat, lon, ok := ent.coordinates()
	if !ok {
		return nil, nerview.Errorf(nerview.ENOTFOUND, "no coordinates for %s", qid)
	}

	return &nerview.Place{
		QID:         qid,
		Label:       pick(ent.Labels, r.languages, qid),
		Description: pick(ent.Descriptions, r.languages, ""),
		Lat:         lat,
		Lon:         lon,
	}, nil
}

type entityData struct {
	Entities map[string]entity `json:"entities"`
}

// entity returns the item for qid. A redirected item is keyed by its
// target, so a lone entity is accepted as the answer.
func (d entityData) entity(qid string) (entity, bool) {
	if e, ok := d.Entities[qid]; ok {
		return e, true
	}
	if len(d.Entities) == 1 {
		for _, e := range d.Entities {
			return e, true
		}
	}
	return entity{}, false
}

type entity struct {
	Labels       map[string]langValue `json:"labels"`
	Descriptions map[string]langValue `json:"descriptions"`
	Claims       map[string][]claim   `json:"claims"`
}

type langValue struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

type claim struct {
	Mainsnak struct {
		Datavalue *struct {
			Value json.RawMessage `json:"value"`
		} `json:"datavalue"`
	} `json:"mainsnak"`
}

type globeCoordinate struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// coordinates reads the first coordinate claim. Missing or malformed
// values report false.
func (e entity) coordinates() (lat, lon float64, ok bool) {
	claims := e.Claims[CoordinateProperty]
	if len(claims) == 0 || claims[0].Mainsnak.Datavalue == nil {
		return 0, 0, false
	}

	var v globeCoordinate
	if err := json.Unmarshal(claims[0].Mainsnak.Datavalue.Value, &v); err != nil {
		return 0, 0, false
	}
	if v.Latitude == nil || v.Longitude == nil {
		return 0, 0, false
	}
	return *v.Latitude, *v.Longitude, true
}

// pick returns the value in the first preferred language, else the value
// of the lexically first language, else fallback.
func pick(values map[string]langValue, langs []string, fallback string) string {
	for _, lang := range langs {
		if v, ok := values[lang]; ok {
			return v.Value
		}
	}
	if len(values) == 0 {
		return fallback
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return values[keys[0]].Value
}

