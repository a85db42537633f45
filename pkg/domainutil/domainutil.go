package domainutil

import (
	"regexp"
	"strconv"
	"strings"
)

var priceCleanRe = regexp.MustCompile(`[^\d.]`)

// Normalize lowercases and trims a domain name so the same real-world domain
// always maps to the same identity key.
func Normalize(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

// SLDLength returns the character length of the second-level label, the part
// the marketplace shards its listings by.
func SLDLength(domain string) int {
	name := Normalize(domain)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return i
	}
	return len(name)
}

// ParsePrice extracts a numeric USD price from marketplace display text like
// "$2,195". It returns nil when the text carries no usable number.
func ParsePrice(text string) *float64 {
	clean := priceCleanRe.ReplaceAllString(text, "")
	if clean == "" {
		return nil
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil
	}
	return &v
}
