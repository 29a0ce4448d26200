package utils

import "strings"

// MaskEmail masks an email address for safe logging.
// Example: "user@example.com" -> "u***@example.com"
func MaskEmail(email string) string {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) != 2 {
		return "***"
	}
	local := parts[0]
	if len(local) <= 1 {
		return local + "***@" + parts[1]
	}
	return string(local[0]) + "***@" + parts[1]
}

// MaskLicenseKey masks a license key for safe logging, keeping only the
// first group. Example: "GHX6-889J-WUJE-X2R2" -> "GHX6-****-****-****"
func MaskLicenseKey(key string) string {
	groups := strings.Split(key, "-")
	if len(groups) < 2 {
		return "****"
	}
	masked := make([]string, len(groups))
	masked[0] = groups[0]
	for i := 1; i < len(groups); i++ {
		masked[i] = strings.Repeat("*", len(groups[i]))
	}
	return strings.Join(masked, "-")
}
