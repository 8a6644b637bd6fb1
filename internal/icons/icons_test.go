package icons

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_KnownVocabulary(t *testing.T) {
	bank := NewAssetBank()
	for _, code := range Vocabulary() {
		t.Run(code, func(t *testing.T) {
			black, ok := Resolve(code, false)
			require.True(t, ok)
			white, ok := Resolve(code, true)
			require.True(t, ok)

			assert.False(t, black.IsNone())
			assert.False(t, white.IsNone())
			assert.NotEqual(t, black, white)
			assert.Equal(t, Black, black.Variant)
			assert.Equal(t, White, white.Variant)

			for _, id := range []AssetID{black, white} {
				bm, err := bank.Acquire(id)
				require.NoError(t, err)
				assert.NotNil(t, bm.Image)
				bank.Release(bm)
			}
		})
	}
	assert.Equal(t, 0, bank.Live())
}

func TestResolve_ProviderSynonyms(t *testing.T) {
	tests := []struct {
		code string
		want Condition
	}{
		{"clear-day", ClearDay},
		{"01d", ClearDay},
		{"01n", ClearNight},
		{"11n", Rain},
		{"10d", Rain},
		{"50d", MistDay},
		{"50n", MistNight},
		{"13n", Snow},
		{"sleet", Sleet},
		{"wind", Wind},
		{"fog", Fog},
		{"cloudy", Cloudy},
		{"03d", PartlyCloudyDay},
		{"04n", PartlyCloudyNight},
		{" 01d ", ClearDay},
	}
	for _, tt := range tests {
		c, ok := ParseCode(tt.code)
		assert.True(t, ok, tt.code)
		assert.Equal(t, tt.want, c, tt.code)
	}
}

func TestResolve_UnknownCode(t *testing.T) {
	for _, code := range []string{"", "tornado", "01x", "CLEAR-DAY"} {
		id, ok := Resolve(code, false)
		assert.False(t, ok, code)
		assert.True(t, id.IsNone(), code)
	}
}

func TestVocabularyCoversEveryCondition(t *testing.T) {
	seen := map[Condition]bool{}
	for _, code := range Vocabulary() {
		c, _ := ParseCode(code)
		seen[c] = true
	}
	for c := ClearDay; c <= PartlyCloudyNight; c++ {
		assert.True(t, seen[c], c.String())
	}
}

func TestAssetID_String(t *testing.T) {
	id, _ := Resolve("01d", false)
	assert.Equal(t, "CLEAR_SKY_DAY_BLACK_ICON", id.String())
	assert.Equal(t, "NONE", AssetNone.String())
	assert.Equal(t, "BLUETOOTH_DISCONNECTED_WHITE_ICON", BluetoothAsset(true).String())
}

type recordingBank struct {
	*AssetBank
	log []string
}

func (r *recordingBank) Acquire(id AssetID) (*Bitmap, error) {
	r.log = append(r.log, "acquire "+id.String())
	return r.AssetBank.Acquire(id)
}

func (r *recordingBank) Release(b *Bitmap) {
	r.log = append(r.log, "release "+b.ID.String())
	r.AssetBank.Release(b)
}

func TestSlot_SwapReleasesBeforeAcquire(t *testing.T) {
	bank := &recordingBank{AssetBank: NewAssetBank()}
	slot := NewSlot(bank)

	rain, _ := Resolve("rain", false)
	snow, _ := Resolve("snow", false)

	_, err := slot.Swap(rain)
	require.NoError(t, err)
	_, err = slot.Swap(snow)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"acquire RAIN_BLACK_ICON",
		"release RAIN_BLACK_ICON",
		"acquire SNOW_BLACK_ICON",
	}, bank.log)
	assert.Equal(t, 1, bank.Live())
	assert.Equal(t, snow, slot.Current().ID)
}

func TestSlot_SameAssetKeepsHandle(t *testing.T) {
	bank := NewAssetBank()
	slot := NewSlot(bank)
	rain, _ := Resolve("rain", true)

	first, err := slot.Swap(rain)
	require.NoError(t, err)
	second, err := slot.Swap(rain)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, bank.Live())
}

func TestSlot_NoneClearsAndCloseReleases(t *testing.T) {
	bank := NewAssetBank()
	slot := NewSlot(bank)
	fog, _ := Resolve("fog", false)

	_, err := slot.Swap(fog)
	require.NoError(t, err)
	bm, err := slot.Swap(AssetNone)
	require.NoError(t, err)
	assert.Nil(t, bm)
	assert.Nil(t, slot.Current())
	assert.Equal(t, 0, bank.Live())

	_, err = slot.Swap(fog)
	require.NoError(t, err)
	slot.Close()
	assert.Equal(t, 0, bank.Live())
}

type failingBank struct{ released int }

func (f *failingBank) Acquire(AssetID) (*Bitmap, error) { return nil, errors.New("out of memory") }
func (f *failingBank) Release(*Bitmap)                  { f.released++ }

func TestSlot_AcquireFailureLeavesSlotEmpty(t *testing.T) {
	slot := NewSlot(&failingBank{})
	_, err := slot.Swap(BluetoothAsset(false))
	assert.Error(t, err)
	assert.Nil(t, slot.Current())
}

func TestAssetBank_DoubleReleaseIsIgnored(t *testing.T) {
	bank := NewAssetBank()
	bm, err := bank.Acquire(BluetoothAsset(false))
	require.NoError(t, err)
	bank.Release(bm)
	bank.Release(bm)
	assert.Equal(t, 0, bank.Live())
}

func TestAssetBank_VariantsDifferInColor(t *testing.T) {
	bank := NewAssetBank()
	black, err := bank.Acquire(AssetFor(ClearDay, false))
	require.NoError(t, err)
	white, err := bank.Acquire(AssetFor(ClearDay, true))
	require.NoError(t, err)

	// the sun's center pixel is always inked
	r, _, _, a := black.Image.At(12, 12).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0xFFFF), a)
	r, _, _, a = white.Image.At(12, 12).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0xFFFF), a)
}
