package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconMask_AllIconsPaintSomething(t *testing.T) {
	for _, name := range IconNames() {
		t.Run(name, func(t *testing.T) {
			m, ok := IconMask(name)
			require.True(t, ok)

			on := 0
			for _, a := range m.Pix {
				switch a {
				case 0:
				case 0xFF:
					on++
				default:
					t.Fatalf("pixel value %#x is not 1-bit", a)
				}
			}
			assert.Greater(t, on, 0)
			assert.Less(t, on, len(m.Pix))
		})
	}
}

func TestIconMask_Sizes(t *testing.T) {
	m, ok := IconMask(IconRain)
	require.True(t, ok)
	assert.Equal(t, WeatherIconSize, m.Bounds().Dx())
	assert.Equal(t, WeatherIconSize, m.Bounds().Dy())

	bt, ok := IconMask(IconBluetoothDisconnected)
	require.True(t, ok)
	assert.Equal(t, 9, bt.Bounds().Dx())
	assert.Equal(t, 10, bt.Bounds().Dy())
}

func TestIconMask_Unknown(t *testing.T) {
	_, ok := IconMask("tornado")
	assert.False(t, ok)
}

func TestIconMask_DistinctShapes(t *testing.T) {
	seen := map[string]string{}
	for _, name := range IconNames() {
		m, _ := IconMask(name)
		key := string(m.Pix)
		if other, dup := seen[key]; dup {
			t.Errorf("%s and %s paint identical masks", name, other)
		}
		seen[key] = name
	}
}

func TestFonts(t *testing.T) {
	assert.NotEmpty(t, ClockFontTTF)
	assert.NotEmpty(t, WordFontTTF)
	_, err := WebUI.Open("index.html")
	assert.NoError(t, err)
}
