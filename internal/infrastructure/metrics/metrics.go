package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

// Method label values
const (
	MethodPassword = "password"
	MethodRefresh  = "refresh"
	MethodOTP      = "otp"
)

var (
	authSuccesses = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "auth_successes",
		Help: "Count of successful authentications",
	}, []string{"method"})
	authFailures = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "auth_failures",
		Help: "Count of failed authentications",
	}, []string{"method"})
	tokenGenerations = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "auth_token_generations",
		Help: "Count of auth tokens created",
	}, []string{"method"})
	otpIssued = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "auth_otp_issued",
		Help: "Count of password reset codes sent",
	}, []string{})
)

// AuthMetrics groups the counters the auth flow reports to
type AuthMetrics struct {
	Successes        metrics.Counter
	Failures         metrics.Counter
	TokenGenerations metrics.Counter
	OTPIssued        metrics.Counter
}

// Prometheus returns counters registered with the default prometheus registry
func Prometheus() *AuthMetrics {
	return &AuthMetrics{
		Successes:        authSuccesses,
		Failures:         authFailures,
		TokenGenerations: tokenGenerations,
		OTPIssued:        otpIssued,
	}
}

// Discard returns counters that drop every observation
func Discard() *AuthMetrics {
	return &AuthMetrics{
		Successes:        discard.NewCounter(),
		Failures:         discard.NewCounter(),
		TokenGenerations: discard.NewCounter(),
		OTPIssued:        discard.NewCounter(),
	}
}
