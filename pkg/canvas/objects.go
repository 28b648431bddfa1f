package canvas

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// NeutralHex is the tint that leaves a sprite's texture colors unchanged.
	NeutralHex = "ffffff"
	// recordFieldCount is the number of semicolon-delimited fields in a
	// serialized object record.
	recordFieldCount = 13
)

// Color is the tint applied to one layer of a placed object.
type Color struct {
	Hex      string
	Blending bool
	Opacity  float64
}

// PlacedObject is one user-placed object on the canvas. Objects are
// immutable once placed; edits are modeled as delete followed by place.
type PlacedObject struct {
	TypeID      int
	X           float64
	Y           float64
	Rotation    int
	Flip        bool
	Scale       float64
	ZOrder      int
	MainColor   Color
	DetailColor Color
}

// Serialize encodes the object as the canonical semicolon-delimited wire
// record, e.g. "1;150;450;0;0;1.0;5;ffffff;0;1;ffffff;0;1". The record
// must round-trip exactly through ParseObject.
func (o *PlacedObject) Serialize() string {
	fields := []string{
		strconv.Itoa(o.TypeID),
		formatCoord(o.X),
		formatCoord(o.Y),
		strconv.Itoa(o.Rotation),
		formatBool(o.Flip),
		formatScale(o.Scale),
		strconv.Itoa(o.ZOrder),
		o.MainColor.Hex,
		formatBool(o.MainColor.Blending),
		formatCoord(o.MainColor.Opacity),
		o.DetailColor.Hex,
		formatBool(o.DetailColor.Blending),
		formatCoord(o.DetailColor.Opacity),
	}
	return strings.Join(fields, ";")
}

// ParseObject decodes a wire record produced by Serialize. Parsing is
// strict: a wrong field count or a malformed field is an error, so that
// the command pipeline can reject garbage before it reaches a chunk.
func ParseObject(record string) (*PlacedObject, error) {
	fields := strings.Split(record, ";")
	if len(fields) != recordFieldCount {
		return nil, fmt.Errorf("expected %d fields, got %d", recordFieldCount, len(fields))
	}

	typeID, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("failed to parse type id %q: %v", fields[0], err)
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse x %q: %v", fields[1], err)
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse y %q: %v", fields[2], err)
	}
	rotation, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("failed to parse rotation %q: %v", fields[3], err)
	}
	flip, err := parseBool(fields[4])
	if err != nil {
		return nil, fmt.Errorf("failed to parse flip: %v", err)
	}
	scale, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scale %q: %v", fields[5], err)
	}
	zOrder, err := strconv.Atoi(fields[6])
	if err != nil {
		return nil, fmt.Errorf("failed to parse z order %q: %v", fields[6], err)
	}
	mainColor, err := parseColor(fields[7], fields[8], fields[9])
	if err != nil {
		return nil, fmt.Errorf("failed to parse main color: %v", err)
	}
	detailColor, err := parseColor(fields[10], fields[11], fields[12])
	if err != nil {
		return nil, fmt.Errorf("failed to parse detail color: %v", err)
	}

	return &PlacedObject{
		TypeID:      typeID,
		X:           x,
		Y:           y,
		Rotation:    rotation,
		Flip:        flip,
		Scale:       scale,
		ZOrder:      zOrder,
		MainColor:   mainColor,
		DetailColor: detailColor,
	}, nil
}

func parseColor(hex, blending, opacity string) (Color, error) {
	b, err := parseBool(blending)
	if err != nil {
		return Color{}, fmt.Errorf("failed to parse blending: %v", err)
	}
	o, err := strconv.ParseFloat(opacity, 64)
	if err != nil {
		return Color{}, fmt.Errorf("failed to parse opacity %q: %v", opacity, err)
	}
	return Color{Hex: hex, Blending: b, Opacity: o}, nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("flag field must be 0 or 1, got %q", s)
	}
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatScale always carries a decimal point so that a scale of 1 is
// written "1.0", matching the canonical record layout.
func formatScale(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
