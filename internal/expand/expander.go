package expand

import "github.com/sourceplane/flowci/internal/model"

// Coordinates computes the cross-product of a template's matrix axes.
//
// The order is deterministic: axes vary in declaration order with the last
// axis varying fastest, and values keep their declared order. Identical
// documents therefore always produce the same coordinate sequence, which
// stable instance naming depends on.
//
// A template without a matrix yields exactly one coordinate (the empty
// coordinate). An axis declared with zero values makes the whole template
// yield zero coordinates; this is deliberate policy, not an error, and the
// scheduler reports it as a warning.
func Coordinates(template *model.JobTemplate) []model.Coordinate {
	axes := template.Matrix.Axes

	total := 1
	for _, axis := range axes {
		total *= len(axis.Values)
	}
	if total == 0 {
		return nil
	}

	coords := make([]model.Coordinate, 0, total)
	indices := make([]int, len(axes))

	for {
		coord := make(model.Coordinate, len(axes))
		for i, axis := range axes {
			coord[i] = model.AxisValue{Axis: axis.Name, Value: axis.Values[indices[i]]}
		}
		coords = append(coords, coord)

		// Advance odometer-style, last axis fastest
		pos := len(axes) - 1
		for pos >= 0 {
			indices[pos]++
			if indices[pos] < len(axes[pos].Values) {
				break
			}
			indices[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}

	return coords
}
