package firebaseauth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK                = "ok"
	resultMissingCredential = "missing_credential"
	resultFailed            = "failed"
	resultCallbackError     = "callback_error"
)

var (
	signInTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "firebase_auth_sign_in_total",
			Help: "Number of sign-in requests, differentiated by result.",
		},
		[]string{"result"},
	)

	signOutTotal = promauto.NewCounter( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "firebase_auth_sign_out_total",
			Help: "Number of sign-out requests.",
		},
	)

	redirectRejectedTotal = promauto.NewCounter( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "firebase_auth_redirect_rejected_total",
			Help: "Number of next targets rejected because of a foreign host.",
		},
	)
)
