package helpers

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// GenOTPCode generates a secure random 6-digit code as a zero-padded string.
func GenOTPCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint32(b) % 1000000
	return fmt.Sprintf("%06d", n), nil
}
