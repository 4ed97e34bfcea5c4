package domain

import (
	"fmt"
	"strings"
)

// NormalizeCurrency trims and upper-cases an ISO-4217 code and checks it is three ASCII letters.
func NormalizeCurrency(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != 3 {
		return "", fmt.Errorf("currency must be a 3-letter ISO-4217 code, got %q", code)
	}
	for _, r := range normalized {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("currency must be a 3-letter ISO-4217 code, got %q", code)
		}
	}
	return normalized, nil
}

// minorUnitExponents lists currencies whose minor unit is not 1/100.
var minorUnitExponents = map[string]int32{
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0, "KMF": 0, "KRW": 0,
	"PYG": 0, "RWF": 0, "UGX": 0, "VND": 0, "VUV": 0, "XAF": 0, "XOF": 0, "XPF": 0,
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
}

// MinorUnitExponent returns the number of decimal places of the currency's minor unit.
func MinorUnitExponent(code string) int32 {
	if exp, ok := minorUnitExponents[code]; ok {
		return exp
	}
	return 2
}
