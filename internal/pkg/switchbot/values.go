package switchbot

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	minBrightness = 1
	maxBrightness = 100

	minColorTemperature = 2700
	maxColorTemperature = 6500
)

// BrightnessValue is a brightness level in percent, 1-100
type BrightnessValue struct {
	level uint8
}

func NewBrightnessValue(level int) (BrightnessValue, error) {
	if level < minBrightness || level > maxBrightness {
		return BrightnessValue{}, newValidationError("brightness", level, "must be between %d and %d", minBrightness, maxBrightness)
	}

	return BrightnessValue{level: uint8(level)}, nil
}

func (v BrightnessValue) Get() uint8 {
	return v.level
}

func (v BrightnessValue) String() string {
	return strconv.Itoa(int(v.level))
}

// ColorValues is an RGB triple
type ColorValues struct {
	r, g, b uint8
}

func NewColorValues(r, g, b int) (ColorValues, error) {
	for i, c := range []int{r, g, b} {
		if c < 0 || c > math.MaxUint8 {
			return ColorValues{}, newValidationError("color", fmt.Sprintf("%d:%d:%d", r, g, b),
				"channel %s must be between 0 and 255", "rgb"[i:i+1])
		}
	}

	return ColorValues{r: uint8(r), g: uint8(g), b: uint8(b)}, nil
}

func (v ColorValues) Get() (uint8, uint8, uint8) {
	return v.r, v.g, v.b
}

func (v ColorValues) R() uint8 { return v.r }
func (v ColorValues) G() uint8 { return v.g }
func (v ColorValues) B() uint8 { return v.b }

// String renders the wire form r:g:b
func (v ColorValues) String() string {
	return fmt.Sprintf("%d:%d:%d", v.r, v.g, v.b)
}

// ColorTemperatureValue is a white color temperature in Kelvin, 2700-6500
type ColorTemperatureValue struct {
	kelvin uint16
}

func NewColorTemperatureValue(kelvin int) (ColorTemperatureValue, error) {
	if kelvin < minColorTemperature || kelvin > maxColorTemperature {
		return ColorTemperatureValue{}, newValidationError("color temperature", kelvin, "must be between %d and %d", minColorTemperature, maxColorTemperature)
	}

	return ColorTemperatureValue{kelvin: uint16(kelvin)}, nil
}

func (v ColorTemperatureValue) Get() uint16 {
	return v.kelvin
}

func (v ColorTemperatureValue) String() string {
	return strconv.Itoa(int(v.kelvin))
}

/*
 *  Air conditioner settings.  The numeric values of the enumerations are the
 *  codes the API expects in the setAll parameter.
 */

type AcMode uint8

const (
	AcModeAuto AcMode = iota + 1
	AcModeCool
	AcModeDry
	AcModeFan
	AcModeHeat
)

var acModeNames = []string{"auto", "cool", "dry", "fan", "heat"}

type AcFanSpeed uint8

const (
	AcFanSpeedAuto AcFanSpeed = iota + 1
	AcFanSpeedLow
	AcFanSpeedMedium
	AcFanSpeedHigh
)

var acFanSpeedNames = []string{"auto", "low", "medium", "high"}

type AcPowerState uint8

const (
	AcPowerOff AcPowerState = iota
	AcPowerOn
)

var acPowerStateNames = []string{"off", "on"}

// parse an enumeration token as either a mnemonic or its numeric code
func parseEnum(field string, token string, names []string, firstCode int) (int, error) {
	t := strings.ToLower(strings.TrimSpace(token))

	for i, name := range names {
		if t == name {
			return i + firstCode, nil
		}
	}

	if code, err := strconv.Atoi(t); err == nil {
		if code >= firstCode && code < firstCode+len(names) {
			return code, nil
		}
	}

	return 0, newValidationError(field, token, "expected one of %s", strings.Join(names, ", "))
}

func enumName(names []string, firstCode int, code int) string {
	i := code - firstCode
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("unknown(%d)", code)
	}

	return names[i]
}

func ParseAcMode(s string) (AcMode, error) {
	code, err := parseEnum("ac mode", s, acModeNames, int(AcModeAuto))
	return AcMode(code), err
}

func (m AcMode) Code() int {
	return int(m)
}

func (m AcMode) String() string {
	return enumName(acModeNames, int(AcModeAuto), int(m))
}

func (m AcMode) valid() bool {
	return m >= AcModeAuto && m <= AcModeHeat
}

func ParseAcFanSpeed(s string) (AcFanSpeed, error) {
	code, err := parseEnum("ac fan speed", s, acFanSpeedNames, int(AcFanSpeedAuto))
	return AcFanSpeed(code), err
}

func (f AcFanSpeed) Code() int {
	return int(f)
}

func (f AcFanSpeed) String() string {
	return enumName(acFanSpeedNames, int(AcFanSpeedAuto), int(f))
}

func (f AcFanSpeed) valid() bool {
	return f >= AcFanSpeedAuto && f <= AcFanSpeedHigh
}

// ParseAcPowerState accepts on/off and 1/0
func ParseAcPowerState(s string) (AcPowerState, error) {
	code, err := parseEnum("ac power state", s, acPowerStateNames, int(AcPowerOff))
	return AcPowerState(code), err
}

func (p AcPowerState) String() string {
	return enumName(acPowerStateNames, int(AcPowerOff), int(p))
}

func (p AcPowerState) valid() bool {
	return p == AcPowerOff || p == AcPowerOn
}

// AcValues is the composite setting sent with the setAll command
type AcValues struct {
	temperature uint8
	mode        AcMode
	fanSpeed    AcFanSpeed
	powerState  AcPowerState
}

func NewAcValues(temperature int, mode AcMode, fanSpeed AcFanSpeed, powerState AcPowerState) (AcValues, error) {
	if temperature < 0 || temperature > math.MaxUint8 {
		return AcValues{}, newValidationError("ac temperature", temperature, "must be between 0 and 255")
	}
	if !mode.valid() {
		return AcValues{}, newValidationError("ac mode", int(mode), "unknown mode code")
	}
	if !fanSpeed.valid() {
		return AcValues{}, newValidationError("ac fan speed", int(fanSpeed), "unknown fan speed code")
	}
	if !powerState.valid() {
		return AcValues{}, newValidationError("ac power state", int(powerState), "unknown power state")
	}

	return AcValues{
		temperature: uint8(temperature),
		mode:        mode,
		fanSpeed:    fanSpeed,
		powerState:  powerState,
	}, nil
}

// ParseAcValues builds AcValues from four user supplied tokens
func ParseAcValues(temperature, mode, fanSpeed, powerState string) (AcValues, error) {
	temp, err := strconv.Atoi(strings.TrimSpace(temperature))
	if err != nil {
		return AcValues{}, newValidationError("ac temperature", temperature, "not a number")
	}

	m, err := ParseAcMode(mode)
	if err != nil {
		return AcValues{}, err
	}

	f, err := ParseAcFanSpeed(fanSpeed)
	if err != nil {
		return AcValues{}, err
	}

	p, err := ParseAcPowerState(powerState)
	if err != nil {
		return AcValues{}, err
	}

	return NewAcValues(temp, m, f, p)
}

func (v AcValues) Temperature() uint8 { return v.temperature }
func (v AcValues) Mode() AcMode { return v.mode }
func (v AcValues) FanSpeed() AcFanSpeed { return v.fanSpeed }
func (v AcValues) PowerState() AcPowerState { return v.powerState }

// String renders the setAll parameter: temperature,modeCode,fanSpeedCode,on|off
func (v AcValues) String() string {
	return fmt.Sprintf("%d,%d,%d,%s", v.temperature, v.mode.Code(), v.fanSpeed.Code(), v.powerState)
}
