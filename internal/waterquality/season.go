package waterquality

import (
	"fmt"
	"strings"
	"time"
)

// Season is one of the four hydrological seasons of the monitoring region.
type Season int

const (
	PreMonsoon Season = iota
	Monsoon
	PostMonsoon
	Winter
)

var seasonLabels = [...]string{
	PreMonsoon:  "Pre-Monsoon",
	Monsoon:     "Monsoon",
	PostMonsoon: "Post-Monsoon",
	Winter:      "Winter",
}

// SeasonAt returns the season for t, evaluated in t's location.
// Pre-monsoon is March to May, monsoon June to September, post-monsoon
// October and November, and winter December to February.
func SeasonAt(t time.Time) Season {
	switch t.Month() {
	case time.March, time.April, time.May:
		return PreMonsoon
	case time.June, time.July, time.August, time.September:
		return Monsoon
	case time.October, time.November:
		return PostMonsoon
	default:
		return Winter
	}
}

// ParseSeason accepts the JSON label or a compact spelling such as "monsoon".
func ParseSeason(s string) (Season, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	for i, label := range seasonLabels {
		if norm == strings.ToLower(strings.ReplaceAll(label, "-", "")) {
			return Season(i), nil
		}
	}
	return 0, fmt.Errorf("unknown season %q", s)
}

func (s Season) String() string {
	if s < 0 || int(s) >= len(seasonLabels) {
		return fmt.Sprintf("Season(%d)", int(s))
	}
	return seasonLabels[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Season) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Season) UnmarshalText(text []byte) error {
	parsed, err := ParseSeason(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
