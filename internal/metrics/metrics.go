package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "firstlight"

const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultError   = "error"

	ReasonCooldown = "cooldown"
	ReasonHourly   = "hourly_limit"
)

type Otp struct {
	Issued           *prometheus.CounterVec
	Verifications    *prometheus.CounterVec
	Rejected         *prometheus.CounterVec
	DeliveryFailures *prometheus.CounterVec
	Reaped           prometheus.Counter
}

func NewOtp(reg prometheus.Registerer) *Otp {
	f := promauto.With(reg)

	return &Otp{
		Issued: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_issued_total",
			Help:      "One-time codes persisted, by purpose.",
		}, []string{"purpose"}),
		Verifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_verifications_total",
			Help:      "Verification attempts, by purpose and result.",
		}, []string{"purpose", "result"}),
		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_rejected_total",
			Help:      "Issuance requests refused before any write, by purpose and reason.",
		}, []string{"purpose", "reason"}),
		DeliveryFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_delivery_failures_total",
			Help:      "Codes persisted whose email could not be delivered.",
		}, []string{"purpose"}),
		Reaped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_reaped_total",
			Help:      "Expired codes hard-deleted by the reaper.",
		}),
	}
}
