package auth

import (
	"strconv"
	"unicode/utf16"
)

// HashPassword is the 31x rolling hash over UTF-16 code units, wrapped to 32
// bits and printed in base 36. Stored hashes depend on this exact format; it
// offers no protection against an attacker who can read the store.
func HashPassword(password string) string {
	var h int32
	for _, unit := range utf16.Encode([]rune(password)) {
		h = (h << 5) - h + int32(unit)
	}
	return strconv.FormatInt(int64(h), 36)
}
