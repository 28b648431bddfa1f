package placement

import (
	"regexp"

	"github.com/cbodonnell/worldcanvas/pkg/canvas"
	"github.com/cbodonnell/worldcanvas/pkg/canvas/grid"
	"github.com/cbodonnell/worldcanvas/pkg/canvas/registry"
)

const (
	minScale   = 0.5
	maxScale   = 2.0
	minOpacity = 0.2
	maxOpacity = 1.0
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]{6}$`)

// validateObject checks a parsed candidate against the field rules. The
// checks are order-independent for correctness; they short-circuit on the
// first violation for clarity of the returned reason.
func validateObject(obj *canvas.PlacedObject, state *EditorState) *CommandError {
	meta, ok := registry.Lookup(obj.TypeID)
	if !ok {
		return newError(KindInvalidArgument, "unknown object type %d", obj.TypeID)
	}

	if !grid.InWorld(obj.X, obj.Y) {
		return newError(KindInvalidArgument, "position (%v,%v) is outside the world", obj.X, obj.Y)
	}

	if meta.Solid && obj.Rotation%90 != 0 {
		return newError(KindInvalidArgument, "solid type %d requires right-angle rotation, got %d", obj.TypeID, obj.Rotation)
	}

	if obj.Scale < minScale || obj.Scale > maxScale {
		return newError(KindInvalidArgument, "scale %v is outside [%v,%v]", obj.Scale, minScale, maxScale)
	}

	if obj.ZOrder < state.MinZOrder || obj.ZOrder > state.MaxZOrder {
		return newError(KindInvalidArgument, "z order %d is outside [%d,%d]", obj.ZOrder, state.MinZOrder, state.MaxZOrder)
	}

	if cmdErr := validateColor("main", obj.MainColor, meta); cmdErr != nil {
		return cmdErr
	}
	if cmdErr := validateColor("detail", obj.DetailColor, meta); cmdErr != nil {
		return cmdErr
	}

	return nil
}

func validateColor(layer string, color canvas.Color, meta registry.TypeMeta) *CommandError {
	if !hexPattern.MatchString(color.Hex) {
		return newError(KindInvalidArgument, "%s color %q is not a 6-digit lowercase hex value", layer, color.Hex)
	}

	if !meta.Tintable {
		if color.Hex != canvas.NeutralHex {
			return newError(KindInvalidArgument, "type %d is not tintable, %s color must be %s", meta.ID, layer, canvas.NeutralHex)
		}
		if color.Blending {
			return newError(KindInvalidArgument, "type %d is not tintable, %s blending must be off", meta.ID, layer)
		}
		if color.Opacity != 1 {
			return newError(KindInvalidArgument, "type %d is not tintable, %s opacity must be 1", meta.ID, layer)
		}
	}

	// A blended pure-black layer contributes nothing and renders the
	// object invisible, so the combination is rejected outright.
	if color.Blending && color.Hex == "000000" {
		return newError(KindInvalidArgument, "%s color cannot blend pure black", layer)
	}

	if color.Opacity < minOpacity || color.Opacity > maxOpacity {
		return newError(KindInvalidArgument, "%s opacity %v is outside [%v,%v]", layer, color.Opacity, minOpacity, maxOpacity)
	}

	return nil
}
