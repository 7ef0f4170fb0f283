package switchbot

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/jake-scott/switchbot-cli/internal/pkg/logging"
)

const DefaultHost = "https://api.switch-bot.com/v1.1"

var _ DeviceRepository = (*Live)(nil)

type Live struct {
	host       string
	token      string
	secret     string
	timeout    time.Duration
	httpClient *http.Client
	signer     Signer
}

// NewLiveClient returns a client owning one http.Client for its lifetime
func NewLiveClient(host string, token string, secret string) *Live {
	return &Live{
		host:       strings.TrimSuffix(host, "/"),
		token:      token,
		secret:     secret,
		httpClient: &http.Client{},
		signer:     NewSigner(),
	}
}

func (c *Live) WithTimeout(d time.Duration) *Live {
	nc := *c
	nc.timeout = d
	return &nc
}

func (c *Live) WithHTTPClient(hc *http.Client) *Live {
	nc := *c
	nc.httpClient = hc
	return &nc
}

func (c *Live) WithSigner(s Signer) *Live {
	nc := *c
	nc.signer = s
	return &nc
}

func (c *Live) MakeContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if c.timeout > 0 {
		return context.WithTimeout(parent, c.timeout)
	}

	return parent, func() {}
}

// Devices lists physical devices followed by infrared remotes
func (c *Live) Devices(ctx context.Context) (devices []Device, err error) {
	defer func(start time.Time) { observe(endpointDevices, start, err) }(time.Now())

	env, err := c.do(ctx, http.MethodGet, "/devices", nil)
	if err != nil {
		return nil, errors.Wrap(err, "listing devices")
	}

	// json.Unmarshal accepts null as an empty listing
	if len(bytes.TrimSpace(env.Body)) == 0 || string(bytes.TrimSpace(env.Body)) == "null" {
		return nil, errors.Wrap(&DeserializationError{Payload: env.Body, Err: errors.New("missing device list body")}, "listing devices")
	}

	var body deviceListBody
	if err := json.Unmarshal(env.Body, &body); err != nil {
		return nil, errors.Wrap(&DeserializationError{Payload: env.Body, Err: err}, "listing devices")
	}

	devices = body.toDevices()
	logging.Logger(ctx).Debugf("listed %d devices (%d infrared remotes)", len(devices), len(body.InfraredRemoteList))

	return devices, nil
}

// GetDevice looks the id up in the device listing; the API has no
// single-device endpoint
func (c *Live) GetDevice(ctx context.Context, id DeviceID) (*Device, error) {
	devices, err := c.Devices(ctx)
	if err != nil {
		return nil, err
	}

	for i := range devices {
		if devices[i].ID == id {
			return &devices[i], nil
		}
	}

	return nil, errors.Wrapf(ErrDeviceNotFound, "looking up device %s", id)
}

func (c *Live) SendCommand(ctx context.Context, id DeviceID, command Command) (err error) {
	defer func(start time.Time) { observe(endpointCommands, start, err) }(time.Now())

	path := "/devices/" + url.PathEscape(id.String()) + "/commands"
	if _, err := c.do(ctx, http.MethodPost, path, command.wireBody()); err != nil {
		return errors.Wrapf(err, "sending command %s to device %s", command, id)
	}

	return nil
}

func (c *Live) authHeaders(h http.Header) error {
	sig, err := c.signer.Sign(c.token, c.secret)
	if err != nil {
		return err
	}

	h.Set("Authorization", c.token)
	h.Set("sign", sig.Sign)
	h.Set("t", sig.Timestamp)
	h.Set("nonce", sig.Nonce)
	h.Set("Content-Type", "application/json")

	return nil
}

// one signed round trip; the envelope is returned only for a 2xx status
// with a success statusCode
func (c *Live) do(ctx context.Context, method string, path string, payload interface{}) (*envelope, error) {
	ctx, cancel := c.MakeContext(ctx)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "encoding request body")
		}
		logging.Logger(ctx).Debugf("request body: %s", b)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.host+path, reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}

	if err := c.authHeaders(req.Header); err != nil {
		return nil, err
	}

	logging.Logger(ctx).Debugf("%s %s (token %s)", method, req.URL, hashOf(c.token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Status: resp.Status, Err: errors.Wrap(err, "reading response body")}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Status: resp.Status, Body: bodyBytes}
	}

	logging.Logger(ctx).Debugf("response: %s", bodyBytes)

	env := envelope{}
	if err := json.Unmarshal(bodyBytes, &env); err != nil {
		return nil, &DeserializationError{Payload: bodyBytes, Err: err}
	}

	if env.StatusCode != statusSuccess {
		return nil, &APIError{StatusCode: env.StatusCode, Message: env.Message}
	}

	return &env, nil
}

// obfuscate credentials in logs
func hashOf(s string) string {
	sum := sha1.Sum([]byte(s))
	return base64.StdEncoding.EncodeToString(sum[:])
}
