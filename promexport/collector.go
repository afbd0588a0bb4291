// Package promexport bridges the numeric variables of a varexport namespace
// into Prometheus.
//
// Every variable whose current value is a number, a bool, a time.Duration
// or a time.Time becomes a gauge named after the variable. Other values are
// skipped. The set of variables changes at run time, so the collector is
// unchecked: it describes nothing up front.
package promexport

import (
	"reflect"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vk/varexport/varexport"
)

// Collector is a prometheus.Collector reading one namespace on each scrape.
type Collector struct {
	ns          *varexport.Namespace
	prefix      string
	constLabels prometheus.Labels
}

type Option func(*Collector)

// WithPrefix prepends prefix and an underscore to every metric name.
func WithPrefix(prefix string) Option {
	return func(c *Collector) { c.prefix = prefix }
}

func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Collector) { c.constLabels = labels }
}

func NewCollector(ns *varexport.Namespace, opts ...Option) *Collector {
	c := &Collector{ns: ns}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Describe sends nothing, which makes the collector unchecked.
func (c *Collector) Describe(chan<- *prometheus.Desc) {}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	seen := make(map[string]bool)
	for _, v := range c.ns.Variables() {
		value, ok := Numeric(v.Value())
		if !ok {
			continue
		}
		name := MetricName(c.prefix, v.Name())
		// Names that only differ in invalid characters collapse; first one wins.
		if seen[name] {
			continue
		}
		seen[name] = true

		help := v.Doc()
		if help == "" {
			help = "Variable " + v.Name() + " of namespace " + c.ns.Name() + "."
		}
		desc := prometheus.NewDesc(name, help, nil, c.constLabels)
		m, err := prometheus.NewConstMetric(desc, prometheus.GaugeValue, value)
		if err != nil {
			ch <- prometheus.NewInvalidMetric(desc, err)
			continue
		}
		ch <- m
	}
}

// MetricName turns a variable name into a valid metric name: every character
// outside [a-zA-Z0-9_] becomes '_' and a leading digit gets a '_' prefix.
func MetricName(prefix, variable string) string {
	var b strings.Builder
	if prefix != "" {
		b.WriteString(sanitize(prefix))
		b.WriteByte('_')
	}
	s := sanitize(variable)
	if b.Len() == 0 && s != "" && s[0] >= '0' && s[0] <= '9' {
		b.WriteByte('_')
	}
	b.WriteString(s)
	return b.String()
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, s)
}

var (
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
)

// Numeric converts a variable value to a sample value. Durations are
// reported in seconds and times as Unix seconds.
func Numeric(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Type() {
	case durationType:
		return v.(time.Duration).Seconds(), true
	case timeType:
		t := v.(time.Time)
		return float64(t.UnixNano()) / float64(time.Second), true
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
