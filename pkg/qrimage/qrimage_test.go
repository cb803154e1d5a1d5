package qrimage

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNG_ProducesDecodableImage(t *testing.T) {
	data, err := PNG("thalachira,owner@x.com,card123", 256)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestPNG_EmptyContent(t *testing.T) {
	_, err := PNG("", 256)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestClampSize(t *testing.T) {
	assert.Equal(t, DefaultSize, ClampSize(0))
	assert.Equal(t, MinSize, ClampSize(10))
	assert.Equal(t, MaxSize, ClampSize(5000))
	assert.Equal(t, 300, ClampSize(300))
}
