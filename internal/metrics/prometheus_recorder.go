package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder with a private registry so a short
// CLI run can dump its view of the session to a node_exporter textfile.
type PrometheusRecorder struct {
	registry     *prom.Registry
	transitions  *prom.CounterVec
	hookFailures *prom.CounterVec
	active       prom.Gauge
	remaining    prom.Gauge
	blockedSites prom.Gauge
}

func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		registry: reg,
		transitions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "refocus",
			Name:      "session_transitions_total",
			Help:      "Blocking session transitions by kind",
		}, []string{"transition"}),
		hookFailures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "refocus",
			Name:      "enforcement_hook_failures_total",
			Help:      "Enforcement hook failures by hook",
		}, []string{"hook"}),
		active: prom.NewGauge(prom.GaugeOpts{
			Namespace: "refocus",
			Name:      "session_active",
			Help:      "1 while a blocking session is active",
		}),
		remaining: prom.NewGauge(prom.GaugeOpts{
			Namespace: "refocus",
			Name:      "session_remaining_seconds",
			Help:      "Seconds until the active session expires",
		}),
		blockedSites: prom.NewGauge(prom.GaugeOpts{
			Namespace: "refocus",
			Name:      "blocked_sites",
			Help:      "Number of sites in the blocked set",
		}),
	}
	reg.MustRegister(pr.transitions, pr.hookFailures, pr.active, pr.remaining, pr.blockedSites)

	return pr
}

func (p *PrometheusRecorder) IncTransition(t Transition) {
	p.transitions.WithLabelValues(string(t)).Inc()
}

func (p *PrometheusRecorder) SetSession(active bool, remaining time.Duration) {
	if active {
		p.active.Set(1)
	} else {
		p.active.Set(0)
	}
	if remaining < 0 {
		remaining = 0
	}
	p.remaining.Set(remaining.Seconds())
}

func (p *PrometheusRecorder) SetBlockedSites(n int) {
	p.blockedSites.Set(float64(n))
}

func (p *PrometheusRecorder) IncHookFailure(hook string) {
	p.hookFailures.WithLabelValues(hook).Inc()
}

func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

// WriteTextfile writes the current metrics in text exposition format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
