// Package metrics exports Prometheus metrics for host function calls and
// contract executions.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/reglet-dev/contract-sdk/contract"
	"github.com/reglet-dev/contract-sdk/hostfuncs"
	"github.com/reglet-dev/contract-sdk/wireformat"
)

// Outcome label values.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"   // the call ran and reported a failure
	OutcomeFailure = "failure" // no response could be produced
	OutcomePanic   = "panic"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "contract"

// Collector owns a private registry with the host and contract metrics.
type Collector struct {
	registry         *prometheus.Registry
	hostCalls        *prometheus.CounterVec
	hostDuration     *prometheus.HistogramVec
	contractCalls    *prometheus.CounterVec
	contractDuration *prometheus.HistogramVec
}

// New creates a Collector whose metric names start with namespace.
// An empty namespace selects DefaultNamespace.
func New(namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Collector{
		registry: reg,
		hostCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "host_calls_total",
				Help:      "Total number of host function calls",
			},
			[]string{"function", "outcome"},
		),
		hostDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "host_call_duration_seconds",
				Help:      "Host function latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"function"},
		),
		contractCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "executions_total",
				Help:      "Total number of contract function executions",
			},
			[]string{"function", "kind", "outcome"},
		),
		contractDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "execution_duration_seconds",
				Help:      "Contract function latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"function", "kind"},
		),
	}
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteToTextfile writes a snapshot in the text exposition format, for the
// node exporter textfile collector.
func (c *Collector) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

// HostMiddleware counts and times host function calls. Install it inside
// hostfuncs.PanicRecoveryMiddleware so recovered panics count as errors.
func (c *Collector) HostMiddleware() hostfuncs.Middleware {
	return func(next hostfuncs.ByteHandler) hostfuncs.ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			name := "unknown"
			if hc, ok := ctx.(hostfuncs.HostContext); ok {
				name = hc.FunctionName()
			}
			start := time.Now()
			resp, err := next(ctx, payload)
			c.hostDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

			outcome := OutcomeOK
			if err != nil {
				outcome = OutcomeFailure
			} else if res, derr := hostfuncs.DecodeResult(resp); derr != nil || res.Err != nil {
				outcome = OutcomeError
			}
			c.hostCalls.WithLabelValues(name, outcome).Inc()
			return resp, err
		}
	}
}

// ContractMiddleware counts and times contract function executions.
func (c *Collector) ContractMiddleware() contract.Middleware {
	return func(next contract.Invocation) contract.Invocation {
		return func(ctx context.Context) (results []wireformat.Marshaler, err error) {
			name, kind := "unknown", "unknown"
			if cc, ok := contract.CallContextFrom(ctx); ok {
				name, kind = cc.FunctionName(), string(cc.Kind())
			}
			start := time.Now()
			defer func() {
				c.contractDuration.WithLabelValues(name, kind).Observe(time.Since(start).Seconds())
				outcome := OutcomeOK
				if r := recover(); r != nil {
					c.contractCalls.WithLabelValues(name, kind, OutcomePanic).Inc()
					panic(r)
				}
				var pe *contract.PanicError
				switch {
				case errors.As(err, &pe):
					outcome = OutcomePanic
				case err != nil:
					outcome = OutcomeError
				}
				c.contractCalls.WithLabelValues(name, kind, outcome).Inc()
			}()
			return next(ctx)
		}
	}
}
