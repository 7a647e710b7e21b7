package workflow

import "strings"

// IMEILength is the fixed length of a device serial.
const IMEILength = 15

// TrimIMEI normalizes operator-entered IMEI input: surrounding whitespace is
// dropped and scanner overruns are truncated to 15 characters. The server
// remains the authority on validity.
func TrimIMEI(input string) string {
	trimmed := strings.TrimSpace(input)
	if len(trimmed) > IMEILength {
		return trimmed[:IMEILength]
	}
	return trimmed
}

// SanitizeFilter normalizes IMEI filter input: non-digits are stripped and
// the result is truncated to 15 digits.
func SanitizeFilter(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == IMEILength {
			break
		}
	}
	return b.String()
}

// ValidIMEI reports whether the value is exactly 15 digits.
func ValidIMEI(value string) bool {
	if len(value) != IMEILength {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
