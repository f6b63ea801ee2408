package values

import (
	"fmt"
	"strings"
)

// Slider is the state of a numeric slider: a current value inside a domain.
type Slider struct {
	Value float64
	Min   float64
	Max   float64
}

// FormatSlider renders s as "current<min~max>".
func FormatSlider(s Slider) (string, error) {
	if err := checkSlider(s); err != nil {
		return "", err
	}
	cur, err := FormatNumber(s.Value)
	if err != nil {
		return "", err
	}
	lo, err := FormatNumber(s.Min)
	if err != nil {
		return "", err
	}
	hi, err := FormatNumber(s.Max)
	if err != nil {
		return "", err
	}
	return cur + "<" + lo + "~" + hi + ">", nil
}

// ParseSlider parses "current<min~max>".
func ParseSlider(s string) (Slider, error) {
	body, ok := strings.CutSuffix(s, ">")
	if !ok {
		return Slider{}, fmt.Errorf("slider %q: missing closing '>'", s)
	}
	cur, domain, ok := strings.Cut(body, "<")
	if !ok {
		return Slider{}, fmt.Errorf("slider %q: missing '<'", s)
	}
	lo, hi, ok := strings.Cut(domain, "~")
	if !ok || strings.Contains(hi, "~") {
		return Slider{}, fmt.Errorf("slider %q: expected min~max", s)
	}
	var out Slider
	var err error
	if out.Value, err = ParseNumber(cur); err != nil {
		return Slider{}, fmt.Errorf("slider value: %w", err)
	}
	if out.Min, err = ParseNumber(lo); err != nil {
		return Slider{}, fmt.Errorf("slider min: %w", err)
	}
	if out.Max, err = ParseNumber(hi); err != nil {
		return Slider{}, fmt.Errorf("slider max: %w", err)
	}
	if err := checkSlider(out); err != nil {
		return Slider{}, err
	}
	return out, nil
}

func checkSlider(s Slider) error {
	if s.Min > s.Max {
		return fmt.Errorf("slider domain inverted: %v > %v", s.Min, s.Max)
	}
	if s.Value < s.Min || s.Value > s.Max {
		return fmt.Errorf("slider value %v outside [%v, %v]", s.Value, s.Min, s.Max)
	}
	return nil
}
