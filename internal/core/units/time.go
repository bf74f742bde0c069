package units

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	isoDurationRe = regexp.MustCompile(`(?i)^P(?:(\d+)D)?(?:T(?:(\d+(?:\.\d+)?)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)
	daysRe        = regexp.MustCompile(`(?i)(\d+)\s*(?:days?|d)(?:[^a-z]|$)`)
	hoursRe       = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:hours?|hrs?|h)(?:[^a-z]|$)`)
	minutesRe     = regexp.MustCompile(`(?i)(\d+)\s*(?:minutes?|mins?|m)(?:[^a-z]|$)`)
)

// NormalizeTime renders a free-text or ISO-8601 duration in compact form:
// "1 hour 30 minutes" and "PT1H30M" both become "1h 30m". Text without any
// recognisable duration is returned unchanged.
func NormalizeTime(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}

	minutes, ok := parseISODuration(trimmed)
	if !ok {
		minutes, ok = parseFreeDuration(trimmed)
	}
	if !ok {
		return s
	}
	return FormatMinutes(minutes)
}

// FormatMinutes renders a minute count as "Nd Nh Nm", omitting zero parts.
func FormatMinutes(total int) string {
	if total <= 0 {
		return "0m"
	}
	days := total / (24 * 60)
	hours := total % (24 * 60) / 60
	mins := total % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	return strings.Join(parts, " ")
}

func parseISODuration(s string) (int, bool) {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil || s == "P" || strings.EqualFold(s, "PT") {
		return 0, false
	}
	var total float64
	total += atof(m[1]) * 24 * 60
	total += atof(m[2]) * 60
	total += atof(m[3])
	total += atof(m[4]) / 60
	return int(math.Round(total)), true
}

func parseFreeDuration(s string) (int, bool) {
	var total float64
	found := false
	if m := daysRe.FindStringSubmatch(s); m != nil {
		total += atof(m[1]) * 24 * 60
		found = true
	}
	if m := hoursRe.FindStringSubmatch(s); m != nil {
		total += atof(m[1]) * 60
		found = true
	}
	if m := minutesRe.FindStringSubmatch(s); m != nil {
		total += atof(m[1])
		found = true
	}
	return int(math.Round(total)), found
}

func atof(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

var servesRe = regexp.MustCompile(`(\d+)(?:\s*(?:-|–|—|to)\s*(\d+))?`)

// NormalizeServes extracts the leading count or range from a servings
// string: "Serves 4-6 people" becomes "4-6". Text without digits is
// returned trimmed.
func NormalizeServes(s string) string {
	m := servesRe.FindStringSubmatch(s)
	if m == nil {
		return strings.TrimSpace(s)
	}
	if m[2] != "" {
		return m[1] + "-" + m[2]
	}
	return m[1]
}
