package common

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	CCDDecimals = 6 // CCD has 6 decimals (micro CCD)
)

// MicroToCCD converts micro CCD to a CCD string with all 6 decimals
func MicroToCCD(micro uint64) string {
	return formatWithDecimals(micro, CCDDecimals)
}

// DisplayCCD converts micro CCD to a CCD string for display.
// Trailing zeros are trimmed but one fractional digit is kept: 1000000 → "1.0"
func DisplayCCD(micro uint64) string {
	s := strings.TrimRight(formatWithDecimals(micro, CCDDecimals), "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

// CCDToMicro converts a CCD string to micro CCD without float precision loss
func CCDToMicro(ccd string) (uint64, error) {
	return parseWithDecimals(ccd, CCDDecimals)
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 6) = "24.981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := strconv.FormatUint(value, 10)

	// Pad with leading zeros if needed
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// parseWithDecimals converts decimal string to integer by removing decimal point
// Example: parseWithDecimals("24.981836", 6) = 24981836
func parseWithDecimals(s string, decimals int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}
	if whole == "" {
		whole = "0"
	}

	// Fractions finer than the smallest unit are rejected, not truncated
	if len(frac) > decimals {
		return 0, fmt.Errorf("more than %d decimals", decimals)
	}
	frac += strings.Repeat("0", decimals-len(frac))

	return strconv.ParseUint(whole+frac, 10, 64)
}

// FiatValue returns the fiat value of micro CCD at rate, rounded to cents
func FiatValue(micro uint64, rate float64) string {
	ccd, _ := strconv.ParseFloat(MicroToCCD(micro), 64)
	return fmt.Sprintf("%.2f", ccd*rate)
}
