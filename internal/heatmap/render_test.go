package heatmap

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_ProducesValidPNG(t *testing.T) {
	r := NewRenderer(64, 48)

	points := []Point{{X: 10, Y: 10}, {X: 10, Y: 10}, {X: 30, Y: 20}}
	var buf bytes.Buffer
	require.NoError(t, r.Render(points, &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestRenderer_IgnoresOutOfBoundsPoints(t *testing.T) {
	r := NewRenderer(32, 32)

	var buf bytes.Buffer
	err := r.Render([]Point{{X: -5, Y: 10}, {X: 10, Y: 500}}, &buf)
	require.NoError(t, err)

	_, err = png.Decode(&buf)
	assert.NoError(t, err)
}

func TestRenderer_EmptyInput(t *testing.T) {
	r := NewRenderer(16, 16)

	var buf bytes.Buffer
	require.NoError(t, r.Render(nil, &buf))

	_, err := png.Decode(&buf)
	assert.NoError(t, err)
}

func TestRenderer_DefaultsDimensions(t *testing.T) {
	r := NewRenderer(0, 0)
	assert.Equal(t, 1920, r.width)
	assert.Equal(t, 1080, r.height)
}
