package switchbot

import "testing"

func mustBrightness(t *testing.T, level int) BrightnessValue {
	v, err := NewBrightnessValue(level)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestCommandWireBody(t *testing.T) {
	color, _ := NewColorValues(10, 20, 30)
	temp, _ := NewColorTemperatureValue(3000)
	ac, _ := NewAcValues(22, AcModeHeat, AcFanSpeedLow, AcPowerOff)

	tests := []struct {
		command Command
		want    commandBody
	}{
		{NewTurnOnCommand(), commandBody{"command", "turnOn", "default"}},
		{NewTurnOffCommand(), commandBody{"command", "turnOff", "default"}},
		{NewSetBrightnessCommand(mustBrightness(t, 55)), commandBody{"command", "setBrightness", "55"}},
		{NewSetColorCommand(color), commandBody{"command", "setColor", "10:20:30"}},
		{NewSetColorTemperatureCommand(temp), commandBody{"command", "setColorTemperature", "3000"}},
		{NewAcSetAllCommand(ac), commandBody{"command", "setAll", "22,5,2,off"}},
		{NewCustomCommand("customize", "Volume Up", "default"), commandBody{"customize", "Volume Up", "default"}},
		{NewCustomCommand("command", "setPosition", "0,ff,80"), commandBody{"command", "setPosition", "0,ff,80"}},
	}

	for _, tt := range tests {
		if got := tt.command.wireBody(); got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.command, got, tt.want)
		}
	}
}
