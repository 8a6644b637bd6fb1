package icons

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rook-computer/wristface/internal/assets"
)

// Condition is a weather category shared by the Dark Sky and OpenWeatherMap vocabularies.
type Condition int

const (
	ConditionUnknown Condition = iota
	ClearDay
	ClearNight
	Rain
	MistDay
	MistNight
	Snow
	Sleet
	Wind
	Fog
	Cloudy
	PartlyCloudyDay
	PartlyCloudyNight
)

var conditionNames = map[Condition]string{
	ConditionUnknown:  "unknown",
	ClearDay:          "clear-day",
	ClearNight:        "clear-night",
	Rain:              "rain",
	MistDay:           "mist-day",
	MistNight:         "mist-night",
	Snow:              "snow",
	Sleet:             "sleet",
	Wind:              "wind",
	Fog:               "fog",
	Cloudy:            "cloudy",
	PartlyCloudyDay:   "partly-cloudy-day",
	PartlyCloudyNight: "partly-cloudy-night",
}

func (c Condition) String() string {
	if name, ok := conditionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("condition(%d)", int(c))
}

// vocabulary maps provider codes to conditions.
// Dark Sky: https://darksky.net/dev/docs/response#data-point
// OpenWeatherMap: https://openweathermap.org/weather-conditions
var vocabulary = map[string]Condition{
	"clear-day": ClearDay,
	"01d":       ClearDay,

	"clear-night": ClearNight,
	"01n":         ClearNight,

	// shower rain, rain and thunderstorm share one icon
	"rain": Rain,
	"09d":  Rain,
	"09n":  Rain,
	"10d":  Rain,
	"10n":  Rain,
	"11d":  Rain,
	"11n":  Rain,

	"50d": MistDay,
	"50n": MistNight,

	"snow": Snow,
	"13d":  Snow,
	"13n":  Snow,

	"sleet":  Sleet,
	"wind":   Wind,
	"fog":    Fog,
	"cloudy": Cloudy,

	"partly-cloudy-day": PartlyCloudyDay,
	"02d":               PartlyCloudyDay,
	"03d":               PartlyCloudyDay,
	"04d":               PartlyCloudyDay,

	"partly-cloudy-night": PartlyCloudyNight,
	"02n":                 PartlyCloudyNight,
	"03n":                 PartlyCloudyNight,
	"04n":                 PartlyCloudyNight,
}

// ParseCode maps a provider icon code to a Condition.
func ParseCode(code string) (Condition, bool) {
	c, ok := vocabulary[strings.TrimSpace(code)]
	return c, ok
}

// Vocabulary returns every recognized code, sorted.
func Vocabulary() []string {
	codes := make([]string, 0, len(vocabulary))
	for code := range vocabulary {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Variant selects the color an icon is drawn in.
type Variant int

const (
	Black Variant = iota
	White
)

func (v Variant) String() string {
	if v == White {
		return "WHITE"
	}
	return "BLACK"
}

// VariantFor returns the icon color used for the given invert setting:
// black icons on the default white background, white icons when inverted.
func VariantFor(invert bool) Variant {
	if invert {
		return White
	}
	return Black
}

// AssetID identifies one pre-rendered bitmap. The zero value is AssetNone.
type AssetID struct {
	Name    string
	Variant Variant
}

// AssetNone means no icon is displayed.
var AssetNone = AssetID{}

func (id AssetID) IsNone() bool { return id.Name == "" }

func (id AssetID) String() string {
	if id.IsNone() {
		return "NONE"
	}
	return strings.ToUpper(id.Name) + "_" + id.Variant.String() + "_ICON"
}

var conditionAssets = map[Condition]string{
	ClearDay:          assets.IconClearSkyDay,
	ClearNight:        assets.IconClearSkyNight,
	Rain:              assets.IconRain,
	MistDay:           assets.IconMistDay,
	MistNight:         assets.IconMistNight,
	Snow:              assets.IconSnow,
	Sleet:             assets.IconSleet,
	Wind:              assets.IconWind,
	Fog:               assets.IconFog,
	Cloudy:            assets.IconCloudy,
	PartlyCloudyDay:   assets.IconPartlyCloudyDay,
	PartlyCloudyNight: assets.IconPartlyCloudyNight,
}

// AssetFor returns the bitmap for a condition in the variant matching invert.
func AssetFor(c Condition, invert bool) AssetID {
	name, ok := conditionAssets[c]
	if !ok {
		return AssetNone
	}
	return AssetID{Name: name, Variant: VariantFor(invert)}
}

// Resolve maps an icon code straight to its asset.
// Unknown codes resolve to AssetNone and false.
func Resolve(code string, invert bool) (AssetID, bool) {
	c, ok := ParseCode(code)
	if !ok {
		return AssetNone, false
	}
	return AssetFor(c, invert), true
}

// BluetoothAsset returns the disconnected indicator for the invert setting.
func BluetoothAsset(invert bool) AssetID {
	return AssetID{Name: assets.IconBluetoothDisconnected, Variant: VariantFor(invert)}
}
