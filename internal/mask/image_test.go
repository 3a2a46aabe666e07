package mask

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageRoundTrip(t *testing.T) {
	m, err := FromRows([][]uint8{
		{0, 255, 0},
		{255, 255, 255},
		{0, 255, 0},
	})
	require.NoError(t, err)

	restored := FromImage(ToImage(m), DefaultThreshold)
	assert.True(t, m.Equal(restored))
}

func TestDecodeImagePNG(t *testing.T) {
	m, err := FromRows([][]uint8{
		{0, 0, 255, 255},
		{0, 0, 255, 255},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, ToImage(m)))

	decoded, err := DecodeImage(&buf, DefaultThreshold)
	require.NoError(t, err)
	assert.True(t, m.Equal(decoded))
}

func TestDecodeImageGarbage(t *testing.T) {
	_, err := DecodeImage(bytes.NewReader([]byte("not an image")), DefaultThreshold)
	assert.Error(t, err)
}

func TestResize(t *testing.T) {
	m, err := FromRows([][]uint8{
		{255, 0},
		{0, 255},
	})
	require.NoError(t, err)

	t.Run("same_shape_noop", func(t *testing.T) {
		resized, err := Resize(m, 2, 2)
		require.NoError(t, err)
		assert.True(t, m.Equal(resized))
	})

	t.Run("upscale_stays_binary", func(t *testing.T) {
		resized, err := Resize(m, 4, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, resized.Height)
		assert.Equal(t, 4, resized.Width)
		for _, p := range resized.Pix {
			assert.Contains(t, []uint8{0, Foreground}, p)
		}
	})

	t.Run("invalid_shape", func(t *testing.T) {
		_, err := Resize(m, 0, 4)
		assert.Error(t, err)
	})
}
