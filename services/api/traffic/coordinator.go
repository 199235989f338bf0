package traffic

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNotReady is returned for events that arrive before DataReady.
	ErrNotReady = errors.New("traffic data not loaded")
	// ErrNoTransform is returned when a nil viewport transform is supplied.
	ErrNoTransform = errors.New("viewport transform is required")
)

// Sink receives every refreshed frame.
type Sink interface {
	Render(Frame)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(Frame)

// Render calls f.
func (f SinkFunc) Render(frame Frame) {
	f(frame)
}

// State is the lifecycle state of a Coordinator.
type State int

const (
	// StateWaiting means the roster and trip log have not been handed over.
	StateWaiting State = iota
	// StateReady means a baseline frame exists and events are processed.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Coordinator sequences the engine in response to data-ready, time filter and
// viewport events. It does no locking: callers deliver one event at a time.
type Coordinator struct {
	sink Sink

	state     State
	stations  []Station
	trips     []Trip
	transform Transform

	snapshot Snapshot
	frame    Frame
}

// NewCoordinator returns a coordinator in StateWaiting. A nil sink discards
// frames.
func NewCoordinator(sink Sink) *Coordinator {
	if sink == nil {
		sink = SinkFunc(func(Frame) {})
	}
	return &Coordinator{sink: sink, state: StateWaiting}
}

// State reports whether the coordinator has its inputs.
func (c *Coordinator) State() State {
	return c.state
}

// Filter returns the active time filter.
func (c *Coordinator) Filter() TimeFilter {
	return c.snapshot.Filter
}

// Frame returns the last frame handed to the sink.
func (c *Coordinator) Frame() Frame {
	return c.frame
}

// Snapshot returns the current aggregation.
func (c *Coordinator) Snapshot() Snapshot {
	return c.snapshot
}

// DataReady stores the roster and trip log and renders the unfiltered
// baseline. Both slices are treated as read-only from here on.
func (c *Coordinator) DataReady(stations []Station, trips []Trip, t Transform) error {
	if t == nil {
		return ErrNoTransform
	}
	c.stations = stations
	c.trips = trips
	c.transform = t
	c.state = StateReady

	log.Debug().Int("stations", len(stations)).Int("trips", len(trips)).Msg("traffic data ready")
	return c.SetTimeFilter(NoFilter)
}

// SetTimeFilter recomputes the filtered aggregation over the full trip log,
// rebuilds the scales, re-projects and renders.
func (c *Coordinator) SetTimeFilter(filter TimeFilter) error {
	if c.state != StateReady {
		return ErrNotReady
	}
	if !filter.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidTimeFilter, int(filter))
	}

	start := time.Now()
	c.snapshot = Compute(c.stations, c.trips, filter)
	c.render()

	log.Debug().
		Int("time_filter", int(filter)).
		Int("trips", c.snapshot.TripCount).
		Int("max_traffic", c.snapshot.Radius.Max()).
		Dur("elapsed", time.Since(start)).
		Msg("recomputed traffic")
	return nil
}

// SetViewport re-projects the current aggregation under t without filtering
// or aggregating again.
func (c *Coordinator) SetViewport(t Transform) error {
	if t == nil {
		return ErrNoTransform
	}
	if c.state != StateReady {
		return ErrNotReady
	}
	c.transform = t
	c.render()
	return nil
}

func (c *Coordinator) render() {
	c.frame = c.snapshot.Frame(c.transform)
	c.sink.Render(c.frame)
}
