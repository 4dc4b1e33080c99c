package searcher

import (
	"sync/atomic"
	"time"
)

// DecisionMetrics describes one move decision by the simulation strategy.
type DecisionMetrics struct {
	StartTime  time.Time
	Duration   time.Duration
	Candidates int
	Playouts   int64
	Failures   int64
}

type Collector interface {
	Start(candidates int)
	AddPlayout()
	AddFailure()
	Complete() DecisionMetrics
}

type collector struct {
	startTime  time.Time
	candidates int
	playouts   atomic.Int64
	failures   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(candidates int) {
	c.startTime = time.Now()
	c.candidates = candidates
	c.playouts.Store(0)
	c.failures.Store(0)
}

func (c *collector) AddPlayout() { c.playouts.Add(1) }
func (c *collector) AddFailure() { c.failures.Add(1) }

func (c *collector) Complete() DecisionMetrics {
	return DecisionMetrics{
		StartTime:  c.startTime,
		Duration:   time.Since(c.startTime),
		Candidates: c.candidates,
		Playouts:   c.playouts.Load(),
		Failures:   c.failures.Load(),
	}
}

type noCollector struct{}

func NewNoCollector() Collector { return &noCollector{} }

func (noCollector) Start(int)                {}
func (noCollector) AddPlayout()              {}
func (noCollector) AddFailure()              {}
func (noCollector) Complete() DecisionMetrics { return DecisionMetrics{} }
