// Package search drives the free-text place lookup behind the location
// picker: keystrokes in, at most one geocoder query per quiet period out,
// with stale responses discarded.
package search

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/sautiwatch/ireporter-core/models"
)

// Coordinator debounces query changes and guarantees that only the response
// of the most recently issued lookup is ever applied. Every issued lookup
// carries a generation number; late responses from older generations are
// no-ops.
type Coordinator struct {
	geocoder Geocoder
	debounce time.Duration
	minChars int

	mu         sync.Mutex
	gen        uint64
	timer      *time.Timer
	cancel     context.CancelFunc
	results    []models.Place
	loading    bool
	closed     bool
	onResults  func([]models.Place)
	onLoading  func(bool)
	onLocation func(models.Location)
}

// NewCoordinator initializes a coordinator over the given geocoder
func NewCoordinator(g Geocoder, debounce time.Duration, minChars int) *Coordinator {
	if debounce <= 0 {
		debounce = 400 * time.Millisecond
	}
	if minChars <= 0 {
		minChars = 3
	}
	return &Coordinator{geocoder: g, debounce: debounce, minChars: minChars}
}

// OnResults registers the callback receiving each settled result set
func (c *Coordinator) OnResults(fn func([]models.Place)) {
	c.mu.Lock()
	c.onResults = fn
	c.mu.Unlock()
}

// OnLoading registers the callback receiving loading transitions
func (c *Coordinator) OnLoading(fn func(bool)) {
	c.mu.Lock()
	c.onLoading = fn
	c.mu.Unlock()
}

// OnLocationChange registers the callback receiving the coordinate of a
// selected place
func (c *Coordinator) OnLocationChange(fn func(models.Location)) {
	c.mu.Lock()
	c.onLocation = fn
	c.mu.Unlock()
}

// QueryChanged restarts the quiet-period timer for q. A query shorter than
// the minimum clears the current results and cancels any lookup in flight
// without issuing a request.
func (c *Coordinator) QueryChanged(q string) {
	q = strings.TrimSpace(q)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if utf8.RuneCountInString(q) < c.minChars {
		c.gen++ // invalidate anything still in flight
		if c.cancel != nil {
			c.cancel()
			c.cancel = nil
		}
		c.results = nil
		c.loading = false
		resultsFn, loadingFn := c.onResults, c.onLoading
		c.mu.Unlock()

		if loadingFn != nil {
			loadingFn(false)
		}
		if resultsFn != nil {
			resultsFn(nil)
		}
		return
	}
	c.timer = time.AfterFunc(c.debounce, func() { c.lookup(q) })
	c.mu.Unlock()
}

// lookup issues the network query for q once the quiet period has elapsed
func (c *Coordinator) lookup(q string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.gen++
	gen := c.gen
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.loading = true
	loadingFn := c.onLoading
	c.mu.Unlock()

	if loadingFn != nil {
		loadingFn(true)
	}

	go func() {
		places, err := c.geocoder.Search(ctx, q)

		c.mu.Lock()
		if gen != c.gen {
			// a newer query was issued while this one was in flight
			c.mu.Unlock()
			return
		}
		c.loading = false
		if err != nil {
			// search failures degrade silently: no results, no user-visible error
			zap.S().Debugw("place lookup failed", "query", q, "error", err)
			c.results = nil
		} else {
			c.results = places
		}
		snapshot := append([]models.Place(nil), c.results...)
		resultsFn, loadingFn := c.onResults, c.onLoading
		c.mu.Unlock()

		if loadingFn != nil {
			loadingFn(false)
		}
		if resultsFn != nil {
			resultsFn(snapshot)
		}
	}()
}

// Select resolves a chosen place into a coordinate, hands it to the
// location callback and clears the result list
func (c *Coordinator) Select(p models.Place) models.Location {
	loc := models.Location{Lat: p.Lat, Lng: p.Lng}

	c.mu.Lock()
	c.results = nil
	resultsFn, locationFn := c.onResults, c.onLocation
	c.mu.Unlock()

	if locationFn != nil {
		locationFn(loc)
	}
	if resultsFn != nil {
		resultsFn(nil)
	}
	return loc
}

// Results returns a snapshot of the current result set
func (c *Coordinator) Results() []models.Place {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Place(nil), c.results...)
}

// Loading reports whether a lookup is in flight
func (c *Coordinator) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Close stops the debounce timer and cancels any lookup in flight
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
}
