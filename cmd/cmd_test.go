package cmd

import (
	"bytes"
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/jake-scott/switchbot-cli/internal/pkg/control"
	"github.com/jake-scott/switchbot-cli/internal/pkg/handlers"
	"github.com/jake-scott/switchbot-cli/internal/pkg/switchbot"
)

const listBody = `{"statusCode":100,"message":"success","body":{
	"deviceList":[{"deviceId":"A1","deviceName":"Desk Lamp","deviceType":"Color Bulb","hubDeviceId":"H1"}],
	"infraredRemoteList":[]}}`

func TestPrintDevices(t *testing.T) {
	var buf bytes.Buffer
	devices := []switchbot.Device{
		{ID: "A1", Name: "Desk Lamp", DeviceType: "Color Bulb", HubDeviceID: "H1"},
		{ID: "02-1", Name: "TV", DeviceType: "TV", IsInfrared: true, HubDeviceID: "H2"},
	}

	if err := printDevices(&buf, devices); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[2], "true") {
		t.Errorf("unexpected table:\n%s", buf.String())
	}
}

func TestCheckRequiredFlags(t *testing.T) {
	viper.Set("test.present", "x")
	defer viper.Set("test.present", nil)

	if err := checkRequiredFlags("test.present"); err != nil {
		t.Errorf("present: %v", err)
	}

	err := checkRequiredFlags("test.present", "test.missing-a", "test.missing-b")
	if err == nil || !strings.Contains(err.Error(), "items `test.missing-a`, `test.missing-b`") {
		t.Errorf("missing: got %v", err)
	}
}

func TestRouter(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listBody))
	}))
	defer api.Close()

	svc := control.NewService(switchbot.NewLiveClient(api.URL, "token", "secret"))
	dh := handlers.NewDeviceHandler(svc)
	r := newRouter(&dh, false, []string{"http://dashboard.local"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/devices/A1", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Desk Lamp") {
		t.Fatalf("device: %d %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "switchbot_api_requests_total") {
		t.Errorf("metrics: %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodOptions, "/devices", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://dashboard.local" {
		t.Errorf("preflight: allow origin %q", got)
	}
}

func TestExecFlagsKeepCommas(t *testing.T) {
	defer func() {
		_execCmdOpts.devices, _execCmdOpts.values, _execCmdOpts.command = nil, nil, ""
	}()

	args := []string{"-d", "A1", "-d", "lamp,desk", "-c", "setPosition", "-v", "0,ff,80"}
	if err := execCmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}

	if len(_execCmdOpts.devices) != 2 || _execCmdOpts.devices[1] != "lamp,desk" {
		t.Errorf("devices: got %q", _execCmdOpts.devices)
	}

	command, err := execCommand(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := command.String(); got != "Custom(command, setPosition, 0,ff,80)" {
		t.Errorf("command: got %s", got)
	}

	command, err = execCommand([]string{"1"})
	if err != nil {
		t.Fatal(err)
	}
	if got := command.String(); got != "Custom(command, setPosition, 0,ff,80:1)" {
		t.Errorf("command with positional value: got %s", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	fileName := filepath.Join(dir, ".env")
	content := "SWITCHBOT_TOKEN=token-from-file\nSWITCHBOT_SECRET=secret-from-file\n"
	if err := ioutil.WriteFile(fileName, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SWITCHBOT_TOKEN", "")
	os.Unsetenv("SWITCHBOT_TOKEN")
	t.Setenv("SWITCHBOT_SECRET", "secret-from-env")

	if err := loadDotEnv(fileName); err != nil {
		t.Fatal(err)
	}

	if got := viper.GetString("switchbot.token"); got != "token-from-file" {
		t.Errorf("token: got %q", got)
	}
	if got := viper.GetString("switchbot.secret"); got != "secret-from-env" {
		t.Errorf("environment should win over the file, got %q", got)
	}

	if err := loadDotEnv(filepath.Join(dir, "absent.env")); err != nil {
		t.Errorf("missing file: %v", err)
	}
}

func TestBridgeServiceNeverExports(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listBody))
	}))
	defer api.Close()

	exportFile := filepath.Join(t.TempDir(), "devices.json")
	settings := map[string]interface{}{
		"switchbot.host":   api.URL,
		"switchbot.token":  "token",
		"switchbot.secret": "secret",
		"export.file":      exportFile,
	}
	for k, v := range settings {
		viper.Set(k, v)
	}
	defer func() {
		for k := range settings {
			viper.Set(k, nil)
		}
	}()

	bridge, err := newBridgeService()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := bridge.FetchDevices(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(exportFile); !os.IsNotExist(err) {
		t.Fatalf("bridge wrote %s", exportFile)
	}

	cli, err := newService()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cli.FetchDevices(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(exportFile); err != nil {
		t.Errorf("list export: %v", err)
	}
}

func TestWaitForShutdown(t *testing.T) {
	signals := make(chan os.Signal, 1)
	serveErrs := make(chan error, 1)

	serveErrs <- errors.New("listen tcp :8080: bind: address already in use")
	if err := waitForShutdown(signals, serveErrs); err == nil || !strings.Contains(err.Error(), "address already in use") {
		t.Errorf("listener failure: got %v", err)
	}

	serveErrs <- http.ErrServerClosed
	if err := waitForShutdown(signals, serveErrs); err != nil {
		t.Errorf("closed server: got %v", err)
	}

	signals <- syscall.SIGINT
	if err := waitForShutdown(signals, serveErrs); err != nil {
		t.Errorf("signal: got %v", err)
	}
}
