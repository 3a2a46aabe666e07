package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDice(t *testing.T) {
	blob, err := FromRows([][]uint8{
		{0, 255, 255, 0},
		{0, 255, 255, 0},
		{0, 0, 0, 0},
	})
	require.NoError(t, err)

	empty, err := New(3, 4)
	require.NoError(t, err)

	t.Run("self_is_one", func(t *testing.T) {
		score, err := Dice(blob, blob)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("against_empty_is_zero", func(t *testing.T) {
		score, err := Dice(blob, empty)
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("both_empty_is_zero", func(t *testing.T) {
		score, err := Dice(empty, empty)
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("partial_overlap", func(t *testing.T) {
		shifted, err := FromRows([][]uint8{
			{0, 0, 255, 255},
			{0, 0, 255, 255},
			{0, 0, 0, 0},
		})
		require.NoError(t, err)

		// Пересечение 2 пикселя, по 4 пикселя в каждой: 2*2/(4+4) = 0.5
		score, err := Dice(blob, shifted)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, score, 1e-9)
	})

	t.Run("foreground_value_irrelevant", func(t *testing.T) {
		ones, err := FromRows([][]uint8{
			{0, 1, 1, 0},
			{0, 1, 1, 0},
			{0, 0, 0, 0},
		})
		require.NoError(t, err)

		score, err := Dice(blob, ones)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("shape_mismatch", func(t *testing.T) {
		other, err := New(2, 2)
		require.NoError(t, err)

		_, err = Dice(blob, other)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})
}

func TestMeanDice(t *testing.T) {
	masks := func(rows ...[][]uint8) []Mask {
		out := make([]Mask, len(rows))
		for i, r := range rows {
			m, err := FromRows(r)
			require.NoError(t, err)
			out[i] = m
		}
		return out
	}

	truth := masks(
		[][]uint8{{255, 255}, {0, 0}},
		[][]uint8{{255, 0}, {0, 255}},
		[][]uint8{{0, 255}, {255, 255}},
	)
	pred := masks(
		[][]uint8{{255, 0}, {0, 0}},
		[][]uint8{{255, 0}, {0, 255}},
		[][]uint8{{0, 255}, {255, 0}},
	)

	t.Run("mean_equals_average_of_pairs", func(t *testing.T) {
		sum := 0.0
		for i := range truth {
			score, err := Dice(truth[i], pred[i])
			require.NoError(t, err)
			sum += score
		}

		mean, err := MeanDice(truth, pred)
		require.NoError(t, err)
		assert.InDelta(t, sum/3, mean, 1e-9)
	})

	t.Run("length_mismatch", func(t *testing.T) {
		_, err := MeanDice(truth, pred[:2])
		assert.Error(t, err)
	})

	t.Run("empty_lists", func(t *testing.T) {
		_, err := MeanDice(nil, nil)
		assert.Error(t, err)
	})
}
