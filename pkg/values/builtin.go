package values

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind names of the built-in kinds.
const (
	KindBool      = "bool"
	KindInteger   = "integer"
	KindNumber    = "number"
	KindPoint     = "point"
	KindVector    = "vector"
	KindLine      = "line"
	KindPlane     = "plane"
	KindCircle    = "circle"
	KindArc       = "arc"
	KindBox       = "box"
	KindRectangle = "rectangle"
	KindInterval  = "interval"
	KindColor     = "color"
	KindSize      = "size"
	KindText      = "text"
)

// EmptyText is the encoded form of an empty text value.
const EmptyText = "text:"

// Builtins returns the built-in kinds in their canonical order.
func Builtins() []Kind {
	return []Kind{
		Define(KindBool, "bool", formatBool, parseBool),
		Define(KindInteger, "int", formatInt, parseInt),
		Define(KindNumber, "number", FormatNumber, ParseNumber),
		Define(KindPoint, "pointXYZ", formatPoint, parsePoint),
		Define(KindVector, "vectorXYZ", formatVector, parseVector),
		Define(KindLine, "line2P", formatLine, parseLine),
		Define(KindPlane, "planeOXY", formatPlane, parsePlane),
		Define(KindCircle, "circleCNRS", formatCircle, parseCircle),
		Define(KindArc, "arc3P", formatArc, parseArc),
		Define(KindBox, "boxOXY", formatBox, parseBox),
		Define(KindRectangle, "rectangleCXY", formatRectangle, parseRectangle),
		Define(KindInterval, "interval", formatInterval, parseInterval),
		Define(KindColor, "argb", formatColor, parseColor),
		Define(KindSize, "bounds", formatSize, parseSize),
		Define(KindText, "text", formatText, parseText),
	}
}

// --- scalars ---

func formatBool(b bool) (string, error) {
	return strconv.FormatBool(b), nil
}

func parseBool(s string) (bool, error) {
	switch {
	case strings.EqualFold(s, "true"):
		return true, nil
	case strings.EqualFold(s, "false"):
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}

func formatInt(i int64) (string, error) {
	return strconv.FormatInt(i, 10), nil
}

func parseInt(s string) (int64, error) {
	if !isDecimal(s, false) {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return i, nil
}

func formatText(s string) (string, error) { return s, nil }
func parseText(s string) (string, error)  { return s, nil }

// --- curves ---

func formatLine(l Line) (string, error) {
	return formatAll(
		func() (string, error) { return formatPoint(l.From) },
		func() (string, error) { return formatPoint(l.To) },
	)
}

func parseLine(s string) (Line, error) {
	f, err := splitFields(s, 2)
	if err != nil {
		return Line{}, err
	}
	from, err := parsePoint(f[0])
	if err != nil {
		return Line{}, fmt.Errorf("from: %w", err)
	}
	to, err := parsePoint(f[1])
	if err != nil {
		return Line{}, fmt.Errorf("to: %w", err)
	}
	return Line{From: from, To: to}, nil
}

func formatArc(a Arc) (string, error) {
	return formatAll(
		func() (string, error) { return formatPoint(a.Start) },
		func() (string, error) { return formatPoint(a.Mid) },
		func() (string, error) { return formatPoint(a.End) },
	)
}

func parseArc(s string) (Arc, error) {
	f, err := splitFields(s, 3)
	if err != nil {
		return Arc{}, err
	}
	var pts [3]Point3
	for i, field := range f {
		if pts[i], err = parsePoint(field); err != nil {
			return Arc{}, fmt.Errorf("point %d: %w", i, err)
		}
	}
	return Arc{Start: pts[0], Mid: pts[1], End: pts[2]}, nil
}

func formatCircle(c Circle) (string, error) {
	if err := checkCircle(c); err != nil {
		return "", err
	}
	return formatAll(
		func() (string, error) { return formatPoint(c.Center) },
		func() (string, error) { return formatVector(c.Normal) },
		func() (string, error) { return FormatNumber(c.Radius) },
		func() (string, error) { return formatPoint(c.Start) },
	)
}

func parseCircle(s string) (Circle, error) {
	f, err := splitFields(s, 4)
	if err != nil {
		return Circle{}, err
	}
	var c Circle
	if c.Center, err = parsePoint(f[0]); err != nil {
		return Circle{}, fmt.Errorf("center: %w", err)
	}
	if c.Normal, err = parseVector(f[1]); err != nil {
		return Circle{}, fmt.Errorf("normal: %w", err)
	}
	if c.Radius, err = ParseNumber(f[2]); err != nil {
		return Circle{}, fmt.Errorf("radius: %w", err)
	}
	if c.Start, err = parsePoint(f[3]); err != nil {
		return Circle{}, fmt.Errorf("start: %w", err)
	}
	if err := checkCircle(c); err != nil {
		return Circle{}, err
	}
	return c, nil
}

func checkCircle(c Circle) error {
	if !(c.Radius > 0) {
		return fmt.Errorf("radius must be positive, got %v", c.Radius)
	}
	if c.Normal.IsZero() {
		return errors.New("normal must be non-zero")
	}
	return nil
}

// --- planar ---

func formatPlane(p Plane) (string, error) {
	if err := checkAxes(p); err != nil {
		return "", err
	}
	return formatAll(
		func() (string, error) { return formatPoint(p.Origin) },
		func() (string, error) { return formatVector(p.XAxis) },
		func() (string, error) { return formatVector(p.YAxis) },
	)
}

func parsePlane(s string) (Plane, error) {
	f, err := splitFields(s, 3)
	if err != nil {
		return Plane{}, err
	}
	return parsePlaneFields(f)
}

func parsePlaneFields(f []string) (Plane, error) {
	var p Plane
	var err error
	if p.Origin, err = parsePoint(f[0]); err != nil {
		return Plane{}, fmt.Errorf("origin: %w", err)
	}
	if p.XAxis, err = parseVector(f[1]); err != nil {
		return Plane{}, fmt.Errorf("x axis: %w", err)
	}
	if p.YAxis, err = parseVector(f[2]); err != nil {
		return Plane{}, fmt.Errorf("y axis: %w", err)
	}
	if err := checkAxes(p); err != nil {
		return Plane{}, err
	}
	return p, nil
}

func checkAxes(p Plane) error {
	if p.XAxis.IsZero() {
		return errors.New("x axis must be non-zero")
	}
	if p.YAxis.IsZero() {
		return errors.New("y axis must be non-zero")
	}
	return nil
}

// unitizeAxes absorbs floating drift in stored basis vectors.
func unitizeAxes(p Plane) (Plane, error) {
	x, ok := p.XAxis.Unitize()
	if !ok {
		return Plane{}, errors.New("x axis cannot be unitized")
	}
	y, ok := p.YAxis.Unitize()
	if !ok {
		return Plane{}, errors.New("y axis cannot be unitized")
	}
	p.XAxis, p.YAxis = x, y
	return p, nil
}

func formatBox(b Box) (string, error) {
	if err := checkAxes(b.Plane); err != nil {
		return "", err
	}
	for _, iv := range []Interval{b.X, b.Y, b.Z} {
		if err := checkInterval(iv); err != nil {
			return "", err
		}
	}
	return formatAll(
		func() (string, error) { return formatPoint(b.Plane.Origin) },
		func() (string, error) { return formatVector(b.Plane.XAxis) },
		func() (string, error) { return formatVector(b.Plane.YAxis) },
		func() (string, error) { return formatTuple(b.X.Min, b.X.Max) },
		func() (string, error) { return formatTuple(b.Y.Min, b.Y.Max) },
		func() (string, error) { return formatTuple(b.Z.Min, b.Z.Max) },
	)
}

func parseBox(s string) (Box, error) {
	f, err := splitFields(s, 6)
	if err != nil {
		return Box{}, err
	}
	plane, err := parsePlaneFields(f[:3])
	if err != nil {
		return Box{}, err
	}
	if plane, err = unitizeAxes(plane); err != nil {
		return Box{}, err
	}
	b := Box{Plane: plane}
	dims := []*Interval{&b.X, &b.Y, &b.Z}
	for i, field := range f[3:] {
		t, err := parseTuple(field, 2)
		if err != nil {
			return Box{}, fmt.Errorf("interval %d: %w", i, err)
		}
		iv := Interval{Min: t[0], Max: t[1]}
		if err := checkInterval(iv); err != nil {
			return Box{}, fmt.Errorf("interval %d: %w", i, err)
		}
		*dims[i] = iv
	}
	return b, nil
}

func formatRectangle(r Rectangle) (string, error) {
	if err := checkAxes(r.Plane); err != nil {
		return "", err
	}
	size := Size{Width: r.Width, Height: r.Height}
	return formatAll(
		func() (string, error) { return formatPoint(r.Plane.Origin) },
		func() (string, error) { return formatVector(r.Plane.XAxis) },
		func() (string, error) { return formatVector(r.Plane.YAxis) },
		func() (string, error) { return formatSize(size) },
	)
}

func parseRectangle(s string) (Rectangle, error) {
	f, err := splitFields(s, 4)
	if err != nil {
		return Rectangle{}, err
	}
	plane, err := parsePlaneFields(f[:3])
	if err != nil {
		return Rectangle{}, err
	}
	if plane, err = unitizeAxes(plane); err != nil {
		return Rectangle{}, err
	}
	size, err := parseSize(f[3])
	if err != nil {
		return Rectangle{}, err
	}
	return Rectangle{Plane: plane, Width: size.Width, Height: size.Height}, nil
}

// --- domains ---

func formatInterval(iv Interval) (string, error) {
	if err := checkInterval(iv); err != nil {
		return "", err
	}
	lo, err := FormatNumber(iv.Min)
	if err != nil {
		return "", err
	}
	hi, err := FormatNumber(iv.Max)
	if err != nil {
		return "", err
	}
	return lo + "<" + hi, nil
}

func parseInterval(s string) (Interval, error) {
	parts := strings.Split(s, "<")
	if len(parts) != 2 {
		return Interval{}, fmt.Errorf("expected min<max, got %q", s)
	}
	lo, err := ParseNumber(parts[0])
	if err != nil {
		return Interval{}, fmt.Errorf("min: %w", err)
	}
	hi, err := ParseNumber(parts[1])
	if err != nil {
		return Interval{}, fmt.Errorf("max: %w", err)
	}
	iv := Interval{Min: lo, Max: hi}
	if err := checkInterval(iv); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

func checkInterval(iv Interval) error {
	if iv.Min > iv.Max {
		return fmt.Errorf("inverted interval %v > %v", iv.Min, iv.Max)
	}
	return nil
}

func formatSize(sz Size) (string, error) {
	if sz.Width < 0 || sz.Height < 0 {
		return "", fmt.Errorf("negative size %vx%v", sz.Width, sz.Height)
	}
	w, err := FormatNumber(sz.Width)
	if err != nil {
		return "", err
	}
	h, err := FormatNumber(sz.Height)
	if err != nil {
		return "", err
	}
	return w + "x" + h, nil
}

func parseSize(s string) (Size, error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return Size{}, fmt.Errorf("expected WxH, got %q", s)
	}
	w, err := ParseNumber(parts[0])
	if err != nil {
		return Size{}, fmt.Errorf("width: %w", err)
	}
	h, err := ParseNumber(parts[1])
	if err != nil {
		return Size{}, fmt.Errorf("height: %w", err)
	}
	if w < 0 || h < 0 {
		return Size{}, fmt.Errorf("negative size %vx%v", w, h)
	}
	return Size{Width: w, Height: h}, nil
}

// --- color ---

func formatColor(c Color) (string, error) {
	return fmt.Sprintf("%d,%d,%d,%d", c.A, c.R, c.G, c.B), nil
}

func parseColor(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Color{}, fmt.Errorf("expected 4 channels, got %d", len(parts))
	}
	var ch [4]uint8
	for i, p := range parts {
		if !isDecimal(p, false) {
			return Color{}, fmt.Errorf("channel %d: invalid integer %q", i, p)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Color{}, fmt.Errorf("channel %d: invalid integer %q", i, p)
		}
		if n < 0 || n > 255 {
			return Color{}, fmt.Errorf("channel %d: %d out of range [0,255]", i, n)
		}
		ch[i] = uint8(n)
	}
	return Color{A: ch[0], R: ch[1], G: ch[2], B: ch[3]}, nil
}
