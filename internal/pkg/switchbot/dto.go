package switchbot

import "encoding/json"

// statusCode of a successful response envelope
const statusSuccess = 100

/*
  GET /devices response:

{
	"statusCode": 100,
	"message": "success",
	"body": {
		"deviceList": [
			{"deviceId": "500291B269BE", "deviceName": "Living Room Humidifier",
			 "deviceType": "Humidifier", "hubDeviceId": "000000000000"}
		],
		"infraredRemoteList": [
			{"deviceId": "02-202008110034-13", "deviceName": "Living Room TV",
			 "remoteType": "TV", "hubDeviceId": "FA7310762361"}
		]
	}
}
*/

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Body       json.RawMessage `json:"body"`
}

type deviceListBody struct {
	DeviceList         []deviceDTO   `json:"deviceList"`
	InfraredRemoteList []irRemoteDTO `json:"infraredRemoteList,omitempty"`
}

type deviceDTO struct {
	DeviceID    string `json:"deviceId"`
	DeviceName  string `json:"deviceName"`
	DeviceType  string `json:"deviceType"`
	HubDeviceID string `json:"hubDeviceId"`
}

func (d deviceDTO) toDevice() Device {
	return Device{
		ID:          NewDeviceID(d.DeviceID),
		Name:        d.DeviceName,
		DeviceType:  d.DeviceType,
		IsInfrared:  false,
		HubDeviceID: d.HubDeviceID,
	}
}

type irRemoteDTO struct {
	DeviceID    string `json:"deviceId"`
	DeviceName  string `json:"deviceName"`
	RemoteType  string `json:"remoteType"`
	HubDeviceID string `json:"hubDeviceId"`
}

func (d irRemoteDTO) toDevice() Device {
	return Device{
		ID:          NewDeviceID(d.DeviceID),
		Name:        d.DeviceName,
		DeviceType:  d.RemoteType,
		IsInfrared:  true,
		HubDeviceID: d.HubDeviceID,
	}
}

// physical devices first, then infrared remotes, each in listing order
func (b deviceListBody) toDevices() []Device {
	devices := make([]Device, 0, len(b.DeviceList)+len(b.InfraredRemoteList))

	for _, d := range b.DeviceList {
		devices = append(devices, d.toDevice())
	}
	for _, d := range b.InfraredRemoteList {
		devices = append(devices, d.toDevice())
	}

	return devices
}
