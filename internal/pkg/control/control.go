package control

import (
	"context"

	"github.com/korovkin/limiter"
	"github.com/pkg/errors"

	"github.com/jake-scott/switchbot-cli/internal/pkg/export"
	"github.com/jake-scott/switchbot-cli/internal/pkg/logging"
	"github.com/jake-scott/switchbot-cli/internal/pkg/switchbot"
)

// Resolver turns a user supplied device name into a device ID
type Resolver interface {
	Resolve(name string) string
}

type identity struct{}

func (identity) Resolve(name string) string { return name }

// Service holds the device use cases shared by the CLI and the HTTP bridge
type Service struct {
	repo       switchbot.DeviceRepository
	resolver   Resolver
	exportFile string
	parallel   int
}

func NewService(repo switchbot.DeviceRepository) *Service {
	return &Service{
		repo:     repo,
		resolver: identity{},
		parallel: 1,
	}
}

func (s *Service) WithResolver(r Resolver) *Service {
	ns := *s
	ns.resolver = r
	return &ns
}

// WithExportFile makes FetchDevices save each listing to fileName
func (s *Service) WithExportFile(fileName string) *Service {
	ns := *s
	ns.exportFile = fileName
	return &ns
}

// WithParallel bounds the number of concurrent requests of ExecuteMany
func (s *Service) WithParallel(n int) *Service {
	ns := *s
	if n < 1 {
		n = 1
	}
	ns.parallel = n
	return &ns
}

func (s *Service) resolve(device string) switchbot.DeviceID {
	return switchbot.NewDeviceID(s.resolver.Resolve(device))
}

// Execute sends command to a device given by ID or alias
func (s *Service) Execute(ctx context.Context, device string, command switchbot.Command) error {
	id := s.resolve(device)
	logging.Logger(ctx).Debugf("executing %s on %s (%s)", command, device, id)

	return s.repo.SendCommand(ctx, id, command)
}

// ExecuteMany sends the same command to several devices, each as its own
// request.  Every device is attempted; the first error in device order is
// returned.
func (s *Service) ExecuteMany(ctx context.Context, devices []string, command switchbot.Command) error {
	errs := make([]error, len(devices))
	limit := limiter.NewConcurrencyLimiter(s.parallel)

	for i, device := range devices {
		i, device := i, device
		limit.ExecuteWithTicket(func(ticket int) {
			logging.Logger(ctx).Debugf("exec-worker %d: %s", ticket, device)
			if err := s.Execute(ctx, device, command); err != nil {
				errs[i] = errors.Wrapf(err, "device %s", device)
			}
		})
	}
	limit.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

// FetchDevices lists devices and, if configured, exports them to a file.
// Export failures are logged and otherwise ignored.
func (s *Service) FetchDevices(ctx context.Context) ([]switchbot.Device, error) {
	devices, err := s.repo.Devices(ctx)
	if err != nil {
		return nil, err
	}

	if s.exportFile != "" {
		if err := export.WriteDevices(devices, s.exportFile); err != nil {
			logging.Logger(ctx).WithError(err).Warn("exporting device list")
		} else {
			logging.Logger(ctx).Debugf("exported %d devices to %s", len(devices), s.exportFile)
		}
	}

	return devices, nil
}

// Device looks up a single device by ID or alias
func (s *Service) Device(ctx context.Context, device string) (*switchbot.Device, error) {
	return s.repo.GetDevice(ctx, s.resolve(device))
}
