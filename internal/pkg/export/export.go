package export

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/jake-scott/switchbot-cli/internal/pkg/switchbot"
)

// WriteDevices saves the device list as indented JSON, creating the
// parent directory if needed
func WriteDevices(devices []switchbot.Device, fileName string) error {
	if dir := filepath.Dir(fileName); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return errors.Wrapf(err, "creating directory %s", dir)
		}
	}

	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0640)
	if err != nil {
		return errors.Wrapf(err, "opening device file %s for write", fileName)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(devices); err != nil {
		return errors.Wrapf(err, "writing devices to %s", fileName)
	}

	return nil
}
