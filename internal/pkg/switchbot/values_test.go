package switchbot

import (
	"testing"

	"github.com/pkg/errors"
)

func TestBrightnessValue(t *testing.T) {
	for level := -5; level <= 300; level++ {
		v, err := NewBrightnessValue(level)

		if level < 1 || level > 100 {
			if err == nil {
				t.Errorf("brightness %d: expected error", level)
			}
			continue
		}

		if err != nil {
			t.Errorf("brightness %d: unexpected error %v", level, err)
			continue
		}
		if int(v.Get()) != level {
			t.Errorf("brightness %d: got %d", level, v.Get())
		}
	}
}

func TestBrightnessValue_ValidationError(t *testing.T) {
	_, err := NewBrightnessValue(101)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Field != "brightness" || verr.Value != "101" {
		t.Errorf("unexpected validation error: %+v", verr)
	}
}

func TestColorTemperatureValue(t *testing.T) {
	tests := []struct {
		kelvin int
		ok     bool
	}{
		{0, false},
		{2699, false},
		{2700, true},
		{4000, true},
		{6500, true},
		{6501, false},
		{65535, false},
	}

	for _, tt := range tests {
		v, err := NewColorTemperatureValue(tt.kelvin)
		if tt.ok != (err == nil) {
			t.Errorf("color temperature %d: ok=%v, err=%v", tt.kelvin, tt.ok, err)
			continue
		}
		if tt.ok && int(v.Get()) != tt.kelvin {
			t.Errorf("color temperature %d: got %d", tt.kelvin, v.Get())
		}
	}
}

func TestColorValues(t *testing.T) {
	for _, c := range [][3]int{{0, 0, 0}, {255, 255, 255}, {12, 128, 250}} {
		v, err := NewColorValues(c[0], c[1], c[2])
		if err != nil {
			t.Fatalf("color %v: %v", c, err)
		}

		r, g, b := v.Get()
		if int(r) != c[0] || int(g) != c[1] || int(b) != c[2] {
			t.Errorf("color %v: got %d,%d,%d", c, r, g, b)
		}
	}

	for _, c := range [][3]int{{-1, 0, 0}, {0, 256, 0}, {0, 0, 1000}} {
		if _, err := NewColorValues(c[0], c[1], c[2]); err == nil {
			t.Errorf("color %v: expected error", c)
		}
	}
}

func TestColorValues_String(t *testing.T) {
	v, _ := NewColorValues(255, 0, 17)
	if v.String() != "255:0:17" {
		t.Errorf("got %s", v)
	}
}

func TestAcEnumRoundTrip(t *testing.T) {
	for _, name := range acModeNames {
		m, err := ParseAcMode(name)
		if err != nil {
			t.Fatalf("ac mode %s: %v", name, err)
		}
		if m.String() != name {
			t.Errorf("ac mode %s rendered as %s", name, m)
		}
	}

	for _, name := range acFanSpeedNames {
		f, err := ParseAcFanSpeed(name)
		if err != nil {
			t.Fatalf("fan speed %s: %v", name, err)
		}
		if f.String() != name {
			t.Errorf("fan speed %s rendered as %s", name, f)
		}
	}

	for _, name := range acPowerStateNames {
		p, err := ParseAcPowerState(name)
		if err != nil {
			t.Fatalf("power state %s: %v", name, err)
		}
		if p.String() != name {
			t.Errorf("power state %s rendered as %s", name, p)
		}
	}
}

func TestAcEnumParse(t *testing.T) {
	if m, err := ParseAcMode("COOL"); err != nil || m != AcModeCool {
		t.Errorf("COOL: got %v, %v", m, err)
	}
	if m, err := ParseAcMode("5"); err != nil || m != AcModeHeat {
		t.Errorf("5: got %v, %v", m, err)
	}
	if f, err := ParseAcFanSpeed("Medium"); err != nil || f != AcFanSpeedMedium {
		t.Errorf("Medium: got %v, %v", f, err)
	}
	if p, err := ParseAcPowerState("1"); err != nil || p != AcPowerOn {
		t.Errorf("1: got %v, %v", p, err)
	}
	if p, err := ParseAcPowerState("0"); err != nil || p != AcPowerOff {
		t.Errorf("0: got %v, %v", p, err)
	}

	for _, bad := range []string{"", "cold", "0", "6"} {
		if _, err := ParseAcMode(bad); err == nil {
			t.Errorf("ac mode %q: expected error", bad)
		}
	}
	for _, bad := range []string{"turbo", "5"} {
		if _, err := ParseAcFanSpeed(bad); err == nil {
			t.Errorf("fan speed %q: expected error", bad)
		}
	}
	for _, bad := range []string{"yes", "2"} {
		if _, err := ParseAcPowerState(bad); err == nil {
			t.Errorf("power state %q: expected error", bad)
		}
	}
}

func TestAcValues(t *testing.T) {
	v, err := ParseAcValues("26", "cool", "high", "on")
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "26,2,4,on" {
		t.Errorf("got %s", v)
	}

	if _, err := NewAcValues(300, AcModeAuto, AcFanSpeedAuto, AcPowerOn); err == nil {
		t.Error("temperature 300: expected error")
	}
	if _, err := NewAcValues(25, AcMode(0), AcFanSpeedAuto, AcPowerOn); err == nil {
		t.Error("mode 0: expected error")
	}
	if _, err := NewAcValues(25, AcModeDry, AcFanSpeed(9), AcPowerOn); err == nil {
		t.Error("fan speed 9: expected error")
	}
	if _, err := NewAcValues(25, AcModeDry, AcFanSpeedLow, AcPowerState(2)); err == nil {
		t.Error("power state 2: expected error")
	}
	if _, err := ParseAcValues("hot", "cool", "high", "on"); err == nil {
		t.Error("temperature hot: expected error")
	}
}
