package redisx

import "time"

const (
	// Cached gateway status per reference: payment_status:{reference_id}
	KeyPaymentStatus = "payment_status:%s"

	// Dedup webhook notifications: dedup:webhook:{transaction_id}:{transaction_status}
	KeyWebhookDedup = "dedup:webhook:%s:%s"

	// Idempotency for snap token creation: idem:snap:{reference_id} -> token
	KeyIdemSnapToken = "idem:snap:%s"
)

var (
	// Status cache TTL sits just above the clients' 5s poll interval so
	// a burst of pollers hits the gateway at most once per window.
	TTLStatusCache = 6 * time.Second

	TTLWebhookDedup = 48 * time.Hour
	TTLIdemSnap     = 24 * time.Hour
)
