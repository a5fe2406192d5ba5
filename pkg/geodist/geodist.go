// Package geodist estimates driving distances between free-text place names.
// It geocodes via a Nominatim-style search endpoint, asks an OSRM-style
// router for the driving distance, and falls back to a great-circle figure
// when routing is unavailable. Failures degrade step by step and never reach
// the caller as errors.
package geodist

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/paulmach/orb"
)

const earthRadiusKm = 6371

// HaversineKm is the great-circle distance between two points, in km.
// Points follow orb's lon/lat ordering.
func HaversineKm(a, b orb.Point) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(b.Lat() - a.Lat())
	dLon := toRad(b.Lon() - a.Lon())
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat()))*math.Cos(toRad(b.Lat()))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// Round2 rounds to two decimal places, the precision shown on the form.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PlaceResolver turns place names into coordinates and coordinate pairs into
// route distances.
type PlaceResolver interface {
	Geocode(ctx context.Context, place string) (orb.Point, bool)
	RouteDistanceKm(ctx context.Context, from, to orb.Point) (float64, bool)
}

// Resolver calls the public Nominatim and OSRM endpoints.
type Resolver struct {
	nominatimURL string
	osrmURL      string
	http         *http.Client
}

func NewResolver(nominatimURL, osrmURL string) *Resolver {
	return &Resolver{
		nominatimURL: nominatimURL,
		osrmURL:      osrmURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// nominatimHit carries lat/lon as strings, the way Nominatim sends them.
type nominatimHit struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a place name to its first search hit. No hit, a transport
// failure, or unparsable coordinates all mean "no location".
func (r *Resolver) Geocode(ctx context.Context, place string) (orb.Point, bool) {
	u := fmt.Sprintf("%s/search?format=json&q=%s", r.nominatimURL, url.QueryEscape(place))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return orb.Point{}, false
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return orb.Point{}, false
	}
	defer resp.Body.Close()

	var hits []nominatimHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil || len(hits) == 0 {
		return orb.Point{}, false
	}
	lat, latErr := strconv.ParseFloat(hits[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(hits[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return orb.Point{}, false
	}
	return orb.Point{lon, lat}, true
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
	} `json:"routes"`
}

// RouteDistanceKm asks the router for a driving route between two points.
func (r *Resolver) RouteDistanceKm(ctx context.Context, from, to orb.Point) (float64, bool) {
	u := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		r.osrmURL, from.Lon(), from.Lat(), to.Lon(), to.Lat())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, false
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return 0, false
	}
	defer resp.Body.Close()

	var route osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&route); err != nil {
		return 0, false
	}
	if route.Code != "Ok" || len(route.Routes) == 0 {
		return 0, false
	}
	return route.Routes[0].Distance / 1000, true
}

// Estimate runs the full lookup once: geocode both ends, prefer the routed
// distance, fall back to haversine. A false return means no distance is
// available (one of the places did not resolve).
func Estimate(ctx context.Context, r PlaceResolver, fromPlace, toPlace string) (float64, bool) {
	from, ok := r.Geocode(ctx, fromPlace)
	if !ok {
		return 0, false
	}
	to, ok := r.Geocode(ctx, toPlace)
	if !ok {
		return 0, false
	}
	if km, ok := r.RouteDistanceKm(ctx, from, to); ok {
		return Round2(km), true
	}
	return Round2(HaversineKm(from, to)), true
}

// Result is one published estimate.
type Result struct {
	FromPlace  string  `json:"fromPlace"`
	ToPlace    string  `json:"toPlace"`
	DistanceKm float64 `json:"distanceKm"`
}

// Estimator serializes publication of concurrent estimates. Calls may overlap
// when the places change quickly; the result that sticks in Latest is the one
// from the last *issued* call, and completions of superseded calls are
// dropped rather than flashed.
type Estimator struct {
	resolver PlaceResolver

	mu     sync.Mutex
	seq    uint64
	latest *Result
}

func NewEstimator(resolver PlaceResolver) *Estimator {
	return &Estimator{resolver: resolver}
}

// Estimate looks up the distance and publishes it unless a newer call was
// issued meanwhile. The caller always receives its own result.
func (e *Estimator) Estimate(ctx context.Context, fromPlace, toPlace string) (float64, bool) {
	e.mu.Lock()
	e.seq++
	my := e.seq
	e.mu.Unlock()

	km, ok := Estimate(ctx, e.resolver, fromPlace, toPlace)

	e.mu.Lock()
	defer e.mu.Unlock()
	if my == e.seq {
		if ok {
			e.latest = &Result{FromPlace: fromPlace, ToPlace: toPlace, DistanceKm: km}
		} else {
			e.latest = nil
		}
	}
	return km, ok
}

// Latest returns the most recently published estimate, if any.
func (e *Estimator) Latest() (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.latest == nil {
		return Result{}, false
	}
	return *e.latest, true
}
