package switchbot

// DeviceID identifies a device or infrared remote, comparable by value
type DeviceID string

func NewDeviceID(id string) DeviceID {
	return DeviceID(id)
}

func (id DeviceID) String() string {
	return string(id)
}

// Device is an entry of the device listing.  Infrared remotes share the id
// and command space of physical devices; IsInfrared tells them apart.
type Device struct {
	ID          DeviceID `json:"id"`
	Name        string   `json:"name"`
	DeviceType  string   `json:"deviceType"`
	IsInfrared  bool     `json:"isInfrared"`
	HubDeviceID string   `json:"hubDeviceId"`
}
