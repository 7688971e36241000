package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOrderNumber builds a unique order reference, e.g.
// ORD-20250115-093512-123-04813972. The 8-digit random part keeps
// collisions out of reach even for calls in the same millisecond;
// orders.order_number stays UNIQUE without a retry loop.
func GenerateOrderNumber() string {
	now := time.Now().UTC()

	datePart := now.Format("20060102-150405")
	millis := now.Nanosecond() / int(time.Millisecond)

	n, err := rand.Int(rand.Reader, big.NewInt(100000000))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(now.UnixNano() % 100000000)
	}

	return fmt.Sprintf(
		"ORD-%s-%03d-%08d",
		datePart,
		millis,
		n.Int64(),
	)
}
