package obs

import (
	"sort"
	"strings"
	"sync"
)

// Label is a key/value pair attached to measurements.
type Label struct {
	Key   string
	Value string
}

// Meter is a very small interface for emitting counters/histograms.
// Implementations may no-op or bridge to a metrics system.
type Meter interface {
	Counter(name string, value float64, labels ...Label)
	Histogram(name string, value float64, labels ...Label)
}

// NopMeter is a Meter that discards all measurements.
type NopMeter struct{}

func (NopMeter) Counter(name string, value float64, labels ...Label)   {}
func (NopMeter) Histogram(name string, value float64, labels ...Label) {}

// Counters keeps running totals in memory. Histograms are reduced to
// name_count and name_sum series. Safe for concurrent use.
type Counters struct {
	mu     sync.Mutex
	values map[string]float64
}

func NewCounters() *Counters {
	return &Counters{values: make(map[string]float64)}
}

func (c *Counters) Counter(name string, value float64, labels ...Label) {
	c.add(SeriesKey(name, labels...), value)
}

func (c *Counters) Histogram(name string, value float64, labels ...Label) {
	c.add(SeriesKey(name+"_count", labels...), 1)
	c.add(SeriesKey(name+"_sum", labels...), value)
}

func (c *Counters) add(key string, v float64) {
	c.mu.Lock()
	c.values[key] += v
	c.mu.Unlock()
}

// Get returns the current value of one series.
func (c *Counters) Get(name string, labels ...Label) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[SeriesKey(name, labels...)]
}

// Snapshot copies every series.
func (c *Counters) Snapshot() map[string]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]float64, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// SeriesKey renders name{k="v",...} with labels sorted by key.
func SeriesKey(name string, labels ...Label) string {
	if len(labels) == 0 {
		return name
	}
	ls := append([]Label(nil), labels...)
	sort.Slice(ls, func(i, j int) bool { return ls[i].Key < ls[j].Key })
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('{')
	for i, l := range ls {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(l.Key)
		b.WriteString(`="`)
		b.WriteString(l.Value)
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String()
}
