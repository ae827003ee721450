package waterquality

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownClass is returned when a class, category or status label cannot
// be parsed.
var ErrUnknownClass = errors.New("unknown classification")

// Category is the CPCB water quality category derived from the WQI.
type Category int

const (
	CategoryGoodToExcellent Category = iota
	CategoryMediumToGood
	CategoryBad
	CategoryBadToVeryBad
)

var categoryLabels = [...]string{
	CategoryGoodToExcellent: "Good to Excellent",
	CategoryMediumToGood:    "Medium to Good",
	CategoryBad:             "Bad",
	CategoryBadToVeryBad:    "Bad to Very Bad",
}

// CategoryFor maps a WQI to its category. Lower bounds are inclusive.
func CategoryFor(wqi float64) Category {
	switch {
	case wqi >= 63:
		return CategoryGoodToExcellent
	case wqi >= 50:
		return CategoryMediumToGood
	case wqi >= 38:
		return CategoryBad
	default:
		return CategoryBadToVeryBad
	}
}

func (c Category) String() string { return label(categoryLabels[:], int(c), "Category") }

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// WaterClass is the designated best use class.
type WaterClass int

const (
	ClassA WaterClass = iota
	ClassB
	ClassC
	ClassD
	ClassE
	ClassUnfit
)

var waterClassLabels = [...]string{
	ClassA:     "Class A - Drinking without treatment",
	ClassB:     "Class B - Outdoor bathing (organized)",
	ClassC:     "Class C - Drinking with conventional treatment",
	ClassD:     "Class D - Wildlife & Fisheries",
	ClassE:     "Class E - Irrigation, Industrial cooling, Controlled waste disposal",
	ClassUnfit: "Unfit for any use",
}

var waterClassCodes = [...]string{"A", "B", "C", "D", "E", "Unfit"}

// WaterClassFor maps a WQI to its class. Lower bounds are inclusive.
func WaterClassFor(wqi float64) WaterClass {
	switch {
	case wqi >= 90:
		return ClassA
	case wqi >= 75:
		return ClassB
	case wqi >= 60:
		return ClassC
	case wqi >= 45:
		return ClassD
	case wqi >= 30:
		return ClassE
	default:
		return ClassUnfit
	}
}

// ParseWaterClass accepts a class code ("A", "unfit"), the "Class A" form or
// the full label.
func ParseWaterClass(s string) (WaterClass, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.TrimPrefix(norm, "class ")
	for i, code := range waterClassCodes {
		if norm == strings.ToLower(code) || strings.EqualFold(s, waterClassLabels[i]) {
			return WaterClass(i), nil
		}
	}
	return 0, fmt.Errorf("%w: water class %q", ErrUnknownClass, s)
}

// Code returns the short class code, "A" to "E" or "Unfit".
func (c WaterClass) Code() string { return label(waterClassCodes[:], int(c), "WaterClass") }

func (c WaterClass) String() string { return label(waterClassLabels[:], int(c), "WaterClass") }

// MarshalText implements encoding.TextMarshaler.
func (c WaterClass) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Status is the headline quality label.
type Status int

const (
	StatusExcellent Status = iota
	StatusGood
	StatusModerate
	StatusPoor
	StatusVeryPoor
)

var statusLabels = [...]string{
	StatusExcellent: "Excellent",
	StatusGood:      "Good",
	StatusModerate:  "Moderate",
	StatusPoor:      "Poor",
	StatusVeryPoor:  "Very Poor",
}

// StatusFor maps a WQI to its status. Lower bounds are inclusive.
func StatusFor(wqi float64) Status {
	switch {
	case wqi >= 80:
		return StatusExcellent
	case wqi >= 65:
		return StatusGood
	case wqi >= 50:
		return StatusModerate
	case wqi >= 35:
		return StatusPoor
	default:
		return StatusVeryPoor
	}
}

// ParseStatus accepts a status label case-insensitively; "very_poor" and
// "very-poor" are accepted for use in URLs.
func ParseStatus(s string) (Status, error) {
	norm := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(s))
	for i, l := range statusLabels {
		if strings.EqualFold(norm, l) {
			return Status(i), nil
		}
	}
	return 0, fmt.Errorf("%w: status %q", ErrUnknownClass, s)
}

func (s Status) String() string { return label(statusLabels[:], int(s), "Status") }

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Statuses returns every status from best to worst.
func Statuses() []Status {
	return []Status{StatusExcellent, StatusGood, StatusModerate, StatusPoor, StatusVeryPoor}
}

// WaterClasses returns every class from best to worst.
func WaterClasses() []WaterClass {
	return []WaterClass{ClassA, ClassB, ClassC, ClassD, ClassE, ClassUnfit}
}

func label(labels []string, i int, kind string) string {
	if i < 0 || i >= len(labels) {
		return fmt.Sprintf("%s(%d)", kind, i)
	}
	return labels[i]
}
