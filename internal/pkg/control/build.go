package control

import (
	"strconv"
	"strings"

	"github.com/jake-scott/switchbot-cli/internal/pkg/switchbot"
)

func wrongValues(command string, values []string, want string) error {
	return &switchbot.ValidationError{
		Field:  command + " values",
		Value:  strings.Join(values, " "),
		Reason: "expected " + want,
	}
}

func atoi(field string, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &switchbot.ValidationError{Field: field, Value: s, Reason: "not a number"}
	}
	return n, nil
}

// BuildCommand turns a command name and its arguments, as typed on the
// command line, into a validated Command.  Unknown names become custom
// commands whose parameter is the values joined with ':' or "default";
// customize selects the "customize" command type for them.
func BuildCommand(name string, values []string, customize bool) (switchbot.Command, error) {
	switch name {
	case "on":
		return switchbot.NewTurnOnCommand(), nil

	case "off":
		return switchbot.NewTurnOffCommand(), nil

	case "brightness":
		if len(values) != 1 {
			return nil, wrongValues(name, values, "1 value: level 1-100")
		}
		level, err := atoi("brightness", values[0])
		if err != nil {
			return nil, err
		}
		v, err := switchbot.NewBrightnessValue(level)
		if err != nil {
			return nil, err
		}
		return switchbot.NewSetBrightnessCommand(v), nil

	case "color":
		if len(values) != 3 {
			return nil, wrongValues(name, values, "3 values: r g b")
		}
		var rgb [3]int
		for i, s := range values {
			c, err := atoi("color", s)
			if err != nil {
				return nil, err
			}
			rgb[i] = c
		}
		v, err := switchbot.NewColorValues(rgb[0], rgb[1], rgb[2])
		if err != nil {
			return nil, err
		}
		return switchbot.NewSetColorCommand(v), nil

	case "color_temp":
		if len(values) != 1 {
			return nil, wrongValues(name, values, "1 value: kelvin 2700-6500")
		}
		kelvin, err := atoi("color temperature", values[0])
		if err != nil {
			return nil, err
		}
		v, err := switchbot.NewColorTemperatureValue(kelvin)
		if err != nil {
			return nil, err
		}
		return switchbot.NewSetColorTemperatureCommand(v), nil

	case "ac":
		if len(values) != 4 {
			return nil, wrongValues(name, values, "4 values: temperature mode fan power")
		}
		v, err := switchbot.ParseAcValues(values[0], values[1], values[2], values[3])
		if err != nil {
			return nil, err
		}
		return switchbot.NewAcSetAllCommand(v), nil
	}

	if customize {
		return customCommand(switchbot.CommandTypeCustomize, name, values), nil
	}

	return customCommand(switchbot.CommandTypeCommand, name, values), nil
}

func customCommand(commandType string, name string, values []string) switchbot.Command {
	parameter := switchbot.DefaultParameter
	if len(values) > 0 {
		parameter = strings.Join(values, ":")
	}

	return switchbot.NewCustomCommand(commandType, name, parameter)
}
