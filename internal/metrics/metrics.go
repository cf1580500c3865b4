// Package metrics counts session outcomes with Prometheus collectors held in
// a private registry.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "agenda"

// Submission outcomes.
const (
	OutcomeCreated  = "created"
	OutcomeUpdated  = "updated"
	OutcomeRejected = "rejected"
)

// Lookup results for edit and delete requests.
const (
	ResultFound    = "found"
	ResultNotFound = "not_found"
)

// Recorder holds the session collectors. A nil *Recorder discards everything.
type Recorder struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	fieldErrors *prometheus.CounterVec
	edits       *prometheus.CounterVec
	deletions   *prometheus.CounterVec
	records     prometheus.Gauge
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Form submissions by outcome.",
		}, []string{"outcome"}),
		fieldErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "field_errors_total",
			Help:      "Validation failures by field.",
		}, []string{"field"}),
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edit_requests_total",
			Help:      "Edit requests by lookup result.",
		}, []string{"result"}),
		deletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delete_requests_total",
			Help:      "Delete requests by lookup result.",
		}, []string{"result"}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Records currently held by the session.",
		}),
	}
	r.registry.MustRegister(r.submissions, r.fieldErrors, r.edits, r.deletions, r.records)
	return r
}

// Submission counts one submission with the given outcome.
func (r *Recorder) Submission(outcome string) {
	if r == nil {
		return
	}
	r.submissions.WithLabelValues(outcome).Inc()
}

// FieldError counts one validation failure on field.
func (r *Recorder) FieldError(field string) {
	if r == nil {
		return
	}
	r.fieldErrors.WithLabelValues(field).Inc()
}

// Edit counts one edit request.
func (r *Recorder) Edit(found bool) {
	if r == nil {
		return
	}
	r.edits.WithLabelValues(result(found)).Inc()
}

// Deletion counts one delete request.
func (r *Recorder) Deletion(found bool) {
	if r == nil {
		return
	}
	r.deletions.WithLabelValues(result(found)).Inc()
}

// SetRecords records the current number of stored records.
func (r *Recorder) SetRecords(n int) {
	if r == nil {
		return
	}
	r.records.Set(float64(n))
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteText writes every gathered metric family in the Prometheus text format.
func (r *Recorder) WriteText(w io.Writer) error {
	if r == nil {
		return nil
	}
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gathering: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: writing %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func result(found bool) string {
	if found {
		return ResultFound
	}
	return ResultNotFound
}
