// Package metrics exposes operation counters for the document-ownership
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RegistrationsTotal      prometheus.Counter
	DuplicateUploadsTotal   prometheus.Counter
	VerificationsTotal      *prometheus.CounterVec
	ProofsGeneratedTotal    prometheus.Counter
	DownloadsTotal          prometheus.Counter
	DecryptionFailuresTotal prometheus.Counter
}

// New registers the counters on reg. Passing a private registry keeps test
// instances isolated from the default one.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistrationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "inventa_registrations_total",
			Help: "Total number of documents registered",
		}),
		DuplicateUploadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "inventa_duplicate_uploads_total",
			Help: "Total number of uploads rejected as already registered",
		}),
		VerificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inventa_verifications_total",
			Help: "Total number of public verification requests by outcome",
		}, []string{"outcome"}),
		ProofsGeneratedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "inventa_proofs_generated_total",
			Help: "Total number of ownership proofs assembled",
		}),
		DownloadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "inventa_downloads_total",
			Help: "Total number of successful document downloads",
		}),
		DecryptionFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "inventa_decryption_failures_total",
			Help: "Total number of stored-content decryption failures",
		}),
	}
}

func (m *Metrics) ObserveVerification(found bool) {
	if found {
		m.VerificationsTotal.WithLabelValues("verified").Inc()
	} else {
		m.VerificationsTotal.WithLabelValues("not_found").Inc()
	}
}
