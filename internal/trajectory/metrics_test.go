package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// line строит траекторию вдоль оси X с постоянным смещением по Y
func line(tmsp []float64, offsetY float64) Trajectory {
	tr := Trajectory{
		Tmsp: append([]float64(nil), tmsp...),
		X:    make([]float64, len(tmsp)),
		Y:    make([]float64, len(tmsp)),
	}
	for i, ts := range tmsp {
		tr.X[i] = ts
		tr.Y[i] = offsetY
	}
	return tr
}

func TestStraighten(t *testing.T) {
	truth := Trajectory{
		Tmsp: []float64{0, 1, 2},
		X:    []float64{0, 3, 3},
		Y:    []float64{0, 4, 8},
	}
	pred := Trajectory{
		Tmsp: []float64{0, 1, 2},
		X:    []float64{0, 3, 6},
		Y:    []float64{0, 0, 8},
	}

	arc, dist, err := Straighten(truth, pred)
	require.NoError(t, err)

	// Длина пути: 0, 5 (катеты 3 и 4), 5+4=9
	require.Len(t, arc, 3)
	assert.InDelta(t, 0.0, arc[0], 1e-12)
	assert.InDelta(t, 5.0, arc[1], 1e-12)
	assert.InDelta(t, 9.0, arc[2], 1e-12)

	// Попарные расстояния: 0, 4, 3
	require.Len(t, dist, 3)
	assert.InDelta(t, 0.0, dist[0], 1e-12)
	assert.InDelta(t, 4.0, dist[1], 1e-12)
	assert.InDelta(t, 3.0, dist[2], 1e-12)
}

func TestStraightenShapeMismatch(t *testing.T) {
	truth := line([]float64{0, 1, 2}, 0)
	pred := line([]float64{0, 1}, 0)

	_, _, err := Straighten(truth, pred)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestRMSE(t *testing.T) {
	t.Run("identical_is_zero", func(t *testing.T) {
		truth := line([]float64{0, 1, 2, 3}, 0)

		rmse, err := RMSE(truth, truth)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, rmse, 1e-12)
	})

	t.Run("constant_offset", func(t *testing.T) {
		truth := line([]float64{0, 1, 2, 3}, 0)
		pred := line([]float64{0, 1, 2, 3}, 1)

		rmse, err := RMSE(truth, pred)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, rmse, 1e-12)
	})

	t.Run("resamples_pred_onto_truth", func(t *testing.T) {
		truth := line([]float64{0, 1, 2, 3}, 0)
		// Предсказание задано всего двумя точками того же пути
		pred := line([]float64{0, 3}, 0)

		rmse, err := RMSE(truth, pred)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, rmse, 1e-12)
	})
}

func TestMIE(t *testing.T) {
	t.Run("identical_is_zero", func(t *testing.T) {
		truth := line([]float64{0, 1, 2, 3}, 0)

		mie, err := MIE(truth, truth)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, mie, 1e-12)
	})

	t.Run("constant_offset_is_offset", func(t *testing.T) {
		truth := line([]float64{0, 1, 2, 3}, 0)
		pred := line([]float64{0, 1, 2, 3}, 2)

		// Отклонение постоянно, интеграл по пути дает его же
		mie, err := MIE(truth, pred)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, mie, 1e-12)
	})

	t.Run("invariant_to_sampling_density", func(t *testing.T) {
		pred := line([]float64{0, 10}, 1)

		coarse := line([]float64{0, 5, 10}, 0)
		fine := line([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0)

		mieCoarse, err := MIE(coarse, pred)
		require.NoError(t, err)
		mieFine, err := MIE(fine, pred)
		require.NoError(t, err)

		// Плотность точек вдоль того же пути не меняет метрику
		assert.InDelta(t, mieCoarse, mieFine, 1e-9)
	})
}

func TestMetricsDegenerate(t *testing.T) {
	t.Run("single_sample_truth", func(t *testing.T) {
		truth := line([]float64{1}, 0)
		pred := line([]float64{0, 1}, 0)

		_, err := RMSE(truth, pred)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDegenerate)

		_, err = MIE(truth, pred)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDegenerate)
	})

	t.Run("zero_arc_length", func(t *testing.T) {
		// Точки различаются только временем, путь нулевой
		truth := Trajectory{
			Tmsp: []float64{0, 1, 2},
			X:    []float64{5, 5, 5},
			Y:    []float64{5, 5, 5},
		}
		pred := line([]float64{0, 2}, 0)

		_, err := MIE(truth, pred)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDegenerate)
	})
}

func TestScores(t *testing.T) {
	truth := line([]float64{0, 1, 2, 3}, 0)
	pred := line([]float64{0, 3}, 1)

	scores, err := Scores(truth, pred)
	require.NoError(t, err)

	require.Contains(t, scores, MetricRMSE)
	require.Contains(t, scores, MetricMIE)
	assert.InDelta(t, 1.0, scores[MetricRMSE], 1e-12)
	assert.InDelta(t, 1.0, scores[MetricMIE], 1e-12)
}
