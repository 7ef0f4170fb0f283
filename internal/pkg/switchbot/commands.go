package switchbot

import "fmt"

const (
	CommandTypeCommand   = "command"
	CommandTypeCustomize = "customize"
	DefaultParameter     = "default"
)

// wire body of POST /devices/{id}/commands
type commandBody struct {
	CommandType string `json:"commandType"`
	Command     string `json:"command"`
	Parameter   string `json:"parameter"`
}

func newCommandBody(command string, parameter string) commandBody {
	return commandBody{
		CommandType: CommandTypeCommand,
		Command:     command,
		Parameter:   parameter,
	}
}

// Command is a device action.  The set of implementations is closed: each
// one renders its own wire body, so a new command cannot be added without
// giving it a wire mapping.
type Command interface {
	fmt.Stringer
	wireBody() commandBody
}

type turnOnCommand struct{}

func NewTurnOnCommand() Command {
	return turnOnCommand{}
}

func (turnOnCommand) wireBody() commandBody {
	return newCommandBody("turnOn", DefaultParameter)
}

func (turnOnCommand) String() string {
	return "TurnOn"
}

type turnOffCommand struct{}

func NewTurnOffCommand() Command {
	return turnOffCommand{}
}

func (turnOffCommand) wireBody() commandBody {
	return newCommandBody("turnOff", DefaultParameter)
}

func (turnOffCommand) String() string {
	return "TurnOff"
}

type setBrightnessCommand struct {
	value BrightnessValue
}

func NewSetBrightnessCommand(v BrightnessValue) Command {
	return setBrightnessCommand{value: v}
}

func (c setBrightnessCommand) wireBody() commandBody {
	return newCommandBody("setBrightness", c.value.String())
}

func (c setBrightnessCommand) String() string {
	return fmt.Sprintf("SetBrightness(%s)", c.value)
}

type setColorCommand struct {
	value ColorValues
}

func NewSetColorCommand(v ColorValues) Command {
	return setColorCommand{value: v}
}

func (c setColorCommand) wireBody() commandBody {
	return newCommandBody("setColor", c.value.String())
}

func (c setColorCommand) String() string {
	return fmt.Sprintf("SetColor(%s)", c.value)
}

type setColorTemperatureCommand struct {
	value ColorTemperatureValue
}

func NewSetColorTemperatureCommand(v ColorTemperatureValue) Command {
	return setColorTemperatureCommand{value: v}
}

func (c setColorTemperatureCommand) wireBody() commandBody {
	return newCommandBody("setColorTemperature", c.value.String())
}

func (c setColorTemperatureCommand) String() string {
	return fmt.Sprintf("SetColorTemperature(%s)", c.value)
}

type acSetAllCommand struct {
	value AcValues
}

func NewAcSetAllCommand(v AcValues) Command {
	return acSetAllCommand{value: v}
}

func (c acSetAllCommand) wireBody() commandBody {
	return newCommandBody("setAll", c.value.String())
}

func (c acSetAllCommand) String() string {
	return fmt.Sprintf("AcSetAll(%s)", c.value)
}

// customCommand passes vendor commands through unchecked
type customCommand struct {
	commandType string
	command     string
	parameter   string
}

// NewCustomCommand sends the three wire fields verbatim.  commandType is
// usually "command", or "customize" for user-defined infrared buttons.
func NewCustomCommand(commandType, command, parameter string) Command {
	return customCommand{
		commandType: commandType,
		command:     command,
		parameter:   parameter,
	}
}

func (c customCommand) wireBody() commandBody {
	return commandBody{
		CommandType: c.commandType,
		Command:     c.command,
		Parameter:   c.parameter,
	}
}

func (c customCommand) String() string {
	return fmt.Sprintf("Custom(%s, %s, %s)", c.commandType, c.command, c.parameter)
}
