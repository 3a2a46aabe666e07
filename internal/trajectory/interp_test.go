package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterp(t *testing.T) {
	testCases := []struct {
		name     string
		t        []float64
		arr      []float64
		tInter   []float64
		expected []float64
	}{
		{
			"linear_midpoints",
			[]float64{0, 3},
			[]float64{0, 3},
			[]float64{0, 1, 2, 3},
			[]float64{0, 1, 2, 3},
		},
		{
			"clamp_outside_range",
			[]float64{1, 2},
			[]float64{10, 20},
			[]float64{0, 1.5, 5},
			[]float64{10, 15, 20},
		},
		{
			"single_point_constant",
			[]float64{2},
			[]float64{7},
			[]float64{0, 2, 10},
			[]float64{7, 7, 7},
		},
		{
			"piecewise",
			[]float64{0, 1, 3},
			[]float64{0, 2, 0},
			[]float64{0.5, 2},
			[]float64{1, 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Interp(tc.t, tc.arr, tc.tInter)
			require.NoError(t, err)
			require.Len(t, got, len(tc.expected))
			for i := range got {
				assert.InDelta(t, tc.expected[i], got[i], 1e-12)
			}
		})
	}
}

func TestInterpErrors(t *testing.T) {
	_, err := Interp(nil, nil, []float64{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = Interp([]float64{1, 2}, []float64{1}, []float64{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestSynchronize(t *testing.T) {
	truth := Trajectory{
		Tmsp: []float64{0, 1, 2, 3},
		X:    []float64{0, 0, 0, 0},
		Y:    []float64{0, 1, 2, 3},
	}
	pred := Trajectory{
		Tmsp: []float64{0, 3},
		X:    []float64{0, 3},
		Y:    []float64{0, 3},
	}

	gotTruth, gotPred, err := Synchronize(truth, pred)
	require.NoError(t, err)

	// Эталон возвращается без изменений
	assert.Equal(t, truth, gotTruth)

	// Предсказание получает метки эталона и линейно интерполированные координаты
	assert.Equal(t, truth.Tmsp, gotPred.Tmsp)
	require.Equal(t, 4, gotPred.Len())
	for i, expected := range []float64{0, 1, 2, 3} {
		assert.InDelta(t, expected, gotPred.X[i], 1e-12)
		assert.InDelta(t, expected, gotPred.Y[i], 1e-12)
	}
}

func TestSynchronizeInvalid(t *testing.T) {
	valid := Trajectory{Tmsp: []float64{0, 1}, X: []float64{0, 1}, Y: []float64{0, 1}}

	t.Run("empty_pred", func(t *testing.T) {
		_, _, err := Synchronize(valid, Trajectory{})
		assert.Error(t, err)
	})

	t.Run("non_monotonic_truth", func(t *testing.T) {
		bad := Trajectory{Tmsp: []float64{1, 0}, X: []float64{0, 1}, Y: []float64{0, 1}}
		_, _, err := Synchronize(bad, valid)
		assert.Error(t, err)
	})
}
