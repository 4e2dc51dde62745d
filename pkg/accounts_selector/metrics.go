package accounts_selector

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

const (
	resultSelected = "selected"
	resultSkipped  = "skipped"
)

type Metrics struct {
	events   *prom.CounterVec
	selected prom.Counter
	skipped  prom.Counter
	reloads  *prom.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		events: prom.NewCounterVec(
			prom.CounterOpts{
				Name: "accounts_selector_events_total",
				Help: "Account updates evaluated by the accounts selector, by result",
			},
			[]string{"result"},
		),
		reloads: prom.NewCounterVec(
			prom.CounterOpts{
				Name: "accounts_selector_reloads_total",
				Help: "Accounts selector config reloads, by source and status",
			},
			[]string{"source", "status"},
		),
	}
	// resolved once, the iterator hot path does not look up labels
	m.selected = m.events.WithLabelValues(resultSelected)
	m.skipped = m.events.WithLabelValues(resultSkipped)
	return m
}

func (m *Metrics) MustRegister(reg prom.Registerer) {
	reg.MustRegister(m.events, m.reloads)
}

func (m *Metrics) incSelected() {
	if m != nil {
		m.selected.Inc()
	}
}

func (m *Metrics) incSkipped() {
	if m != nil {
		m.skipped.Inc()
	}
}

func (m *Metrics) incReload(source string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.reloads.WithLabelValues(source, status).Inc()
}
