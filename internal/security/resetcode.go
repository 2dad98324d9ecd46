package security

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// GenerateResetCode returns a 6-digit numeric code sampled uniformly from
// [100000, 999999]. Collisions across users are tolerated since codes are
// only ever compared against the requesting user's own row.
func GenerateResetCode() (string, error) {
	const span = 900000 // 999999 - 100000 + 1

	// Rejection sampling keeps the distribution uniform.
	bound := (uint64(1<<63) / span) * span
	for {
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return "", fmt.Errorf("generate reset code: %w", err)
		}
		n := binary.BigEndian.Uint64(buf[:]) >> 1
		if n >= bound {
			continue
		}
		return fmt.Sprintf("%06d", 100000+n%span), nil
	}
}
