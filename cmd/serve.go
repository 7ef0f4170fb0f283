package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jake-scott/switchbot-cli/internal/pkg/control"
	"github.com/jake-scott/switchbot-cli/internal/pkg/handlers"
	"github.com/jake-scott/switchbot-cli/internal/pkg/logging"
	"github.com/jake-scott/switchbot-cli/pkg/middlewares"
)

var _serveCmdOpts struct {
	port            uint16
	tlsCertPath     string
	tlsKeyPath      string
	corsOrigins     []string
	gracefulTimeout time.Duration
	readTimeout     time.Duration
	writeTimeout    time.Duration
	logRequests     bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local HTTP bridge to the SwitchBot API",

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := doServe(); err != nil {
			return err
		}

		return nil
	},

	PreRunE: checkCredentials,
}

func init() {
	serveCmd.Flags().Uint16Var(&_serveCmdOpts.port, "port", 8080, "HTTP port number")
	serveCmd.Flags().StringVar(&_serveCmdOpts.tlsCertPath, "tls-cert", "", "TLS certificate file, enables HTTPS with --tls-key")
	serveCmd.Flags().StringVar(&_serveCmdOpts.tlsKeyPath, "tls-key", "", "TLS key file")
	serveCmd.Flags().StringSliceVar(&_serveCmdOpts.corsOrigins, "cors-origin", nil, "browser origin allowed to call the bridge, may be repeated")
	serveCmd.Flags().DurationVar(&_serveCmdOpts.gracefulTimeout, "graceful-timeout", time.Second*15, "duration to wait for server to finish, eg. 1m or 10s")
	serveCmd.Flags().DurationVar(&_serveCmdOpts.readTimeout, "read-timeout", time.Second*15, "duration to wait for request read, eg. 1m or 10s")
	serveCmd.Flags().DurationVar(&_serveCmdOpts.writeTimeout, "write-timeout", time.Second*60, "duration to wait for request write, eg. 1m or 10s")
	serveCmd.Flags().BoolVar(&_serveCmdOpts.logRequests, "log-requests", false, "log requests and responses (only in debug mode)")

	errPanic(viper.GetViper().BindPFlag("http.port", serveCmd.Flags().Lookup("port")))
	errPanic(viper.GetViper().BindPFlag("http.cert", serveCmd.Flags().Lookup("tls-cert")))
	errPanic(viper.GetViper().BindPFlag("http.key", serveCmd.Flags().Lookup("tls-key")))
	errPanic(viper.GetViper().BindPFlag("http.cors-origins", serveCmd.Flags().Lookup("cors-origin")))
	errPanic(viper.GetViper().BindPFlag("http.graceful-timeout", serveCmd.Flags().Lookup("graceful-timeout")))
	errPanic(viper.GetViper().BindPFlag("http.read-timeout", serveCmd.Flags().Lookup("read-timeout")))
	errPanic(viper.GetViper().BindPFlag("http.write-timeout", serveCmd.Flags().Lookup("write-timeout")))
	errPanic(viper.GetViper().BindPFlag("logging.log-requests", serveCmd.Flags().Lookup("log-requests")))

	rootCmd.AddCommand(serveCmd)
}

// CORS wraps the router so preflight requests never reach route matching
func newRouter(h *handlers.DeviceHandler, logRequests bool, corsOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.Use(middlewares.NewLoggingMw(logRequests))
	r.Use(middlewares.NewRecoveryMw())
	r.Use(middlewares.NewCorrelationMw("X-Correlation-ID"))
	r.Use(middlewares.NewMetricsMw())

	h.Register(r)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	if len(corsOrigins) > 0 {
		return middlewares.NewCorsMw(corsOrigins)(r)
	}

	return r
}

// the bridge serves live listings only, it never rewrites the export file
func newBridgeService() (*control.Service, error) {
	svc, err := newService()
	if err != nil {
		return nil, err
	}

	return svc.WithExportFile(""), nil
}

// waitForShutdown blocks until a signal arrives or the listener stops; a
// listener failure is returned
func waitForShutdown(signals <-chan os.Signal, serveErrs <-chan error) error {
	select {
	case sig := <-signals:
		logging.Logger(nil).Infof("received %s", sig)
		return nil
	case err := <-serveErrs:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "running server")
		}
		return nil
	}
}

func doServe() error {
	wait := viper.GetDuration("http.graceful-timeout")
	port := viper.GetUint("http.port")
	certFile := viper.GetString("http.cert")
	keyFile := viper.GetString("http.key")

	if (certFile == "") != (keyFile == "") {
		return fmt.Errorf("--tls-cert and --tls-key must be given together")
	}

	var logRequests bool
	if viper.GetBool("logging.log-requests") {
		if logrus.IsLevelEnabled(logrus.DebugLevel) {
			logRequests = true
		} else {
			logging.Logger(nil).Warn("log-requests ignored when not in debug mode")
		}
	}

	svc, err := newBridgeService()
	if err != nil {
		return err
	}

	dh := handlers.NewDeviceHandler(svc)

	s := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		ReadTimeout:  viper.GetDuration("http.read-timeout"),
		WriteTimeout: viper.GetDuration("http.write-timeout"),
		IdleTimeout:  time.Second * 60,
		Handler:      newRouter(&dh, logRequests, viper.GetStringSlice("http.cors-origins")),
	}

	logging.Logger(nil).Infof("Serving on port %d (TLS: %t)", port, certFile != "")
	errc := make(chan error, 1)
	go func() {
		if certFile != "" {
			errc <- s.ListenAndServeTLS(certFile, keyFile)
		} else {
			errc <- s.ListenAndServe()
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	defer signal.Stop(c)

	if err := waitForShutdown(c, errc); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	logging.Logger(nil).Info("shutting down")
	if err := s.Shutdown(ctx); err != nil {
		logging.Logger(nil).WithError(err).Errorf("shutting down")
	}
	logging.Logger(nil).Info("exiting")
	return nil
}
