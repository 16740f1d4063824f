package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
)

// ClockEventHash computes the audit content hash of a clock event from the
// user identity, event kind and timestamp. The same inputs always produce the
// same hash, which makes tampering with a stored event detectable.
func ClockEventHash(userID string, kind domain.ClockEventKind, ts time.Time) string {
	data := fmt.Sprintf("%s:%s:%s", userID, kind, ts.Format(time.RFC3339))
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
