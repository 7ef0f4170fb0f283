package switchbot

import "context"

// DeviceRepository is what the rest of the program needs from the API
type DeviceRepository interface {
	GetDevice(ctx context.Context, id DeviceID) (*Device, error)
	Devices(ctx context.Context) ([]Device, error)
	SendCommand(ctx context.Context, id DeviceID, command Command) error
}
