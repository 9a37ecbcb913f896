package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const referenceAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// GenerateBookingReference returns a short code customers can read back over
// the phone. The alphabet drops easily confused glyphs (I/L/O/U).
func GenerateBookingReference() string {
	id, err := gonanoid.Generate(referenceAlphabet, 8)
	if err != nil {
		return ""
	}
	return id
}
