package resilience

import "sync"

// SingleFlight collapses concurrent calls for the same key into one
// execution. The portal leans on it for read deduplication toward the
// backend and for cache loads.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flightResult
}

type flightResult struct {
	done  chan struct{}
	value any
	err   error
}

// Do runs fn once per key at a time. Callers arriving while a flight for the
// same key is running block and receive its result; shared reports whether
// the result came from another caller's flight.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (value any, err error, shared bool) {
	g.mu.Lock()
	if g.inflight == nil {
		g.inflight = make(map[string]*flightResult)
	}
	if existing, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		<-existing.done
		return existing.value, existing.err, true
	}

	flight := &flightResult{done: make(chan struct{})}
	g.inflight[key] = flight
	g.mu.Unlock()

	flight.value, flight.err = fn()
	close(flight.done)

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()

	return flight.value, flight.err, false
}
