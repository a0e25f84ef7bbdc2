package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
)

// round2 rounds to two decimals for display amounts.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// normalizeHost reduces a domain, URL, or hostname to a canonical
// lowercase host: scheme, path, port, a leading "www." and a trailing
// dot are all stripped. Returns "" for unusable input.
func normalizeHost(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, "@"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[:i]
	}

	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimSuffix(s, ".")
	return s
}

// normalizeDateRange reduces the inputs to YYYY-MM-DD and checks order.
func normalizeDateRange(startDate, endDate string) (string, string, error) {
	start, ok := normalizeDate(startDate)
	if !ok {
		return "", "", fmt.Errorf("start date %q", startDate)
	}
	end, ok := normalizeDate(endDate)
	if !ok {
		return "", "", fmt.Errorf("end date %q", endDate)
	}
	if start > end {
		return "", "", fmt.Errorf("start %s after end %s", start, end)
	}
	return start, end, nil
}

func normalizeDate(s string) (string, bool) {
	if len(s) < 10 {
		return "", false
	}
	d := s[:10]
	if d[4] != '-' || d[7] != '-' {
		return "", false
	}
	for i, r := range d {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return d, true
}

// exportParamsHash identifies one export request for deduplication.
func exportParamsHash(userID, startDate, endDate, site string) string {
	sum := sha256.Sum256([]byte(userID + "|" + startDate + "|" + endDate + "|" + site))
	return hex.EncodeToString(sum[:])
}
