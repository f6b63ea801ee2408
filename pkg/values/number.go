package values

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errNonFinite = errors.New("non-finite number")

// FormatNumber renders f as a culture-invariant decimal literal: "." as the
// decimal point, no grouping and no exponent. Parsing the result with
// ParseNumber yields exactly f.
func FormatNumber(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", errNonFinite
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// isDecimal reports whether s matches -?digits(.digits)?. Exponents, hex,
// underscores and a leading '+' are rejected.
func isDecimal(s string, fraction bool) bool {
	s = strings.TrimPrefix(s, "-")
	intPart, frac, hasDot := strings.Cut(s, ".")
	if hasDot && (!fraction || frac == "") {
		return false
	}
	return allDigits(intPart) && (!hasDot || allDigits(frac))
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ParseNumber parses a culture-invariant decimal literal.
func ParseNumber(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty number")
	}
	if !isDecimal(s, true) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNonFinite
	}
	return f, nil
}

func formatTuple(fs ...float64) (string, error) {
	parts := make([]string, len(fs))
	for i, f := range fs {
		s, err := FormatNumber(f)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ","), nil
}

func parseTuple(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := ParseNumber(p)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func splitFields(s string, n int) ([]string, error) {
	fields := strings.Split(s, ";")
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d fields, got %d", n, len(fields))
	}
	return fields, nil
}

func formatPoint(p Point3) (string, error) {
	return formatTuple(p.X, p.Y, p.Z)
}

func parsePoint(s string) (Point3, error) {
	t, err := parseTuple(s, 3)
	if err != nil {
		return Point3{}, err
	}
	return Point3{X: t[0], Y: t[1], Z: t[2]}, nil
}

func formatVector(v Vector3) (string, error) {
	return formatTuple(v.X, v.Y, v.Z)
}

func parseVector(s string) (Vector3, error) {
	t, err := parseTuple(s, 3)
	if err != nil {
		return Vector3{}, err
	}
	return Vector3{X: t[0], Y: t[1], Z: t[2]}, nil
}

func joinFields(fields ...string) string {
	return strings.Join(fields, ";")
}

// formatAll renders each field with its formatter, stopping at the first error.
func formatAll(fns ...func() (string, error)) (string, error) {
	out := make([]string, len(fns))
	for i, fn := range fns {
		s, err := fn()
		if err != nil {
			return "", err
		}
		out[i] = s
	}
	return joinFields(out...), nil
}
