package expand

import (
	"testing"

	"github.com/sourceplane/flowci/internal/model"
	"github.com/stretchr/testify/require"
)

func matrix(axes ...model.Axis) model.Matrix {
	return model.Matrix{Axes: axes}
}

func TestCoordinates_CrossProductOrder(t *testing.T) {
	tmpl := &model.JobTemplate{
		Name: "build",
		Matrix: matrix(
			model.Axis{Name: "os", Values: []string{"linux", "macos"}},
			model.Axis{Name: "mode", Values: []string{"release", "debug"}},
		),
	}

	coords := Coordinates(tmpl)
	require.Len(t, coords, 4)

	// Axes expand in declaration order, last axis varying fastest
	expected := []string{
		"os=linux,mode=release",
		"os=linux,mode=debug",
		"os=macos,mode=release",
		"os=macos,mode=debug",
	}
	for i, want := range expected {
		require.Equal(t, want, coords[i].String())
	}
}

func TestCoordinates_CardinalityAndDistinctness(t *testing.T) {
	tmpl := &model.JobTemplate{
		Name: "test",
		Matrix: matrix(
			model.Axis{Name: "a", Values: []string{"1", "2"}},
			model.Axis{Name: "b", Values: []string{"x", "y", "z"}},
			model.Axis{Name: "c", Values: []string{"on", "off"}},
		),
	}

	coords := Coordinates(tmpl)
	require.Len(t, coords, 2*3*2)

	seen := make(map[string]bool)
	for _, coord := range coords {
		key := coord.String()
		require.False(t, seen[key], "duplicate coordinate %s", key)
		seen[key] = true
	}
}

func TestCoordinates_Deterministic(t *testing.T) {
	tmpl := &model.JobTemplate{
		Name: "test",
		Matrix: matrix(
			model.Axis{Name: "mode", Values: []string{"release", "debug"}},
			model.Axis{Name: "toolchain", Values: []string{"stable", "beta", "nightly"}},
		),
	}

	first := Coordinates(tmpl)
	second := Coordinates(tmpl)
	require.Equal(t, first, second)
}

func TestCoordinates_NoMatrixYieldsOneEmptyCoordinate(t *testing.T) {
	tmpl := &model.JobTemplate{Name: "fmt"}

	coords := Coordinates(tmpl)
	require.Len(t, coords, 1)
	require.Empty(t, coords[0])
	require.Equal(t, "", coords[0].String())
}

// An axis declared with zero values yields zero instances for the whole
// template. This is documented policy, not an error.
func TestCoordinates_EmptyAxisYieldsZeroInstances(t *testing.T) {
	tmpl := &model.JobTemplate{
		Name: "build",
		Matrix: matrix(
			model.Axis{Name: "os", Values: []string{"linux", "macos"}},
			model.Axis{Name: "mode", Values: nil},
		),
	}

	coords := Coordinates(tmpl)
	require.Empty(t, coords)
}
