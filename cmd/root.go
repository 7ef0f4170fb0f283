package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jake-scott/switchbot-cli/internal/pkg/alias"
	"github.com/jake-scott/switchbot-cli/internal/pkg/control"
	"github.com/jake-scott/switchbot-cli/internal/pkg/logging"
	"github.com/jake-scott/switchbot-cli/internal/pkg/switchbot"
)

const defaultConfigName = ".switchbot-cli"

var _rootCmdOpts struct {
	configFile string
	envFile    string
	debug      bool
	host       string
	token      string
	secret     string
	timeout    time.Duration
	aliasFile  string
	logLevel   string
	logFormat  string
	logFile    string
}

var rootCmd = &cobra.Command{
	Use:   "switchbot-cli",
	Short: "Control SwitchBot devices through the SwitchBot cloud API",

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Configure(viper.GetViper())
	},
}

// Execute runs the root command, exiting non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func errPanic(err error) {
	if err != nil {
		panic(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	viper.SetDefault("switchbot.host", switchbot.DefaultHost)
	viper.SetDefault("switchbot.timeout", time.Second*15)
	viper.SetDefault("export.file", "output/devices.json")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&_rootCmdOpts.configFile, "config", "", "config file (default is $HOME/"+defaultConfigName+".yaml)")
	pf.StringVar(&_rootCmdOpts.envFile, "env-file", ".env", "dotenv file with SWITCHBOT_* variables, ignored when missing")
	pf.BoolVar(&_rootCmdOpts.debug, "debug", false, "enable debug logging")
	pf.StringVar(&_rootCmdOpts.host, "host", switchbot.DefaultHost, "SwitchBot API base URL")
	pf.StringVar(&_rootCmdOpts.token, "token", "", "SwitchBot API token")
	pf.StringVar(&_rootCmdOpts.secret, "secret", "", "SwitchBot API secret")
	pf.DurationVar(&_rootCmdOpts.timeout, "timeout", time.Second*15, "maximum duration of a SwitchBot API call, eg. 1m or 10s")
	pf.StringVar(&_rootCmdOpts.aliasFile, "aliases", "", "JSON or YAML file mapping device names to IDs")
	pf.StringVar(&_rootCmdOpts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&_rootCmdOpts.logFormat, "log-format", "text", "log format (text or json)")
	pf.StringVar(&_rootCmdOpts.logFile, "log-file", "stderr", "log destination: stdout, stderr or a file name")

	errPanic(viper.GetViper().BindPFlag("logging.debug", pf.Lookup("debug")))
	errPanic(viper.GetViper().BindPFlag("switchbot.host", pf.Lookup("host")))
	errPanic(viper.GetViper().BindPFlag("switchbot.token", pf.Lookup("token")))
	errPanic(viper.GetViper().BindPFlag("switchbot.secret", pf.Lookup("secret")))
	errPanic(viper.GetViper().BindPFlag("switchbot.timeout", pf.Lookup("timeout")))
	errPanic(viper.GetViper().BindPFlag("aliases.file", pf.Lookup("aliases")))
	errPanic(viper.GetViper().BindPFlag("logging.level", pf.Lookup("log-level")))
	errPanic(viper.GetViper().BindPFlag("logging.format", pf.Lookup("log-format")))
	errPanic(viper.GetViper().BindPFlag("logging.location", pf.Lookup("log-file")))

	// the names used by the SwitchBot tooling, ahead of the SWITCHBOT_ prefixed keys
	errPanic(viper.BindEnv("switchbot.host", "SWITCHBOT_API_HOST"))
	errPanic(viper.BindEnv("switchbot.token", "SWITCHBOT_TOKEN"))
	errPanic(viper.BindEnv("switchbot.secret", "SWITCHBOT_SECRET"))
}

func initConfig() {
	if err := loadDotEnv(_rootCmdOpts.envFile); err != nil {
		fmt.Fprintf(os.Stderr, "reading env file: %s\n", err)
		os.Exit(1)
	}

	viper.SetEnvPrefix("SWITCHBOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if _rootCmdOpts.configFile != "" {
		viper.SetConfigFile(_rootCmdOpts.configFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(defaultConfigName)
	}

	if err := viper.ReadInConfig(); err != nil {
		// only an explicitly named config file has to exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || _rootCmdOpts.configFile != "" {
			fmt.Fprintf(os.Stderr, "reading config: %s\n", err)
			os.Exit(1)
		}
	}
}

// loadDotEnv exports the variables of a dotenv file into the process
// environment.  Variables already set win over the file.
func loadDotEnv(fileName string) error {
	if fileName == "" {
		return nil
	}
	if _, err := os.Stat(fileName); os.IsNotExist(err) {
		return nil
	}

	env := viper.New()
	env.SetConfigFile(fileName)
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "parsing %s", fileName)
	}

	// viper lower-cases keys, environment names are upper case
	for _, key := range env.AllKeys() {
		name := strings.ToUpper(key)
		if _, ok := os.LookupEnv(name); ok {
			continue
		}
		if err := os.Setenv(name, env.GetString(key)); err != nil {
			return errors.Wrapf(err, "setting %s", name)
		}
	}

	return nil
}

func checkRequiredFlags(needFlags ...string) error {
	missingFlags := []string{}

	for _, f := range needFlags {
		if !viper.IsSet(f) || viper.GetString(f) == "" {
			missingFlags = append(missingFlags, f)
		}
	}

	if len(missingFlags) > 0 {
		itemPlural := "item"
		if len(missingFlags) > 1 {
			itemPlural = "items"
		}
		return fmt.Errorf("required config %s `%s` not set", itemPlural, strings.Join(missingFlags, "`, `"))
	}

	return nil
}

func checkCredentials(cmd *cobra.Command, args []string) error {
	return checkRequiredFlags("switchbot.token", "switchbot.secret")
}

func newLiveClient() *switchbot.Live {
	return switchbot.NewLiveClient(
		viper.GetString("switchbot.host"),
		viper.GetString("switchbot.token"),
		viper.GetString("switchbot.secret"),
	).WithTimeout(viper.GetDuration("switchbot.timeout"))
}

// newService wires the live client, the alias file and the export file together
func newService() (*control.Service, error) {
	aliases, err := alias.Load(viper.GetString("aliases.file"))
	if err != nil {
		return nil, errors.Wrap(err, "loading aliases")
	}

	logging.Logger(nil).Debugf("loaded %d device aliases", aliases.Len())

	return control.NewService(newLiveClient()).
		WithResolver(aliases).
		WithExportFile(viper.GetString("export.file")), nil
}

// every CLI invocation logs under its own transaction ID
func newCommandContext() context.Context {
	return logging.WithTxnID(context.Background(), uuid.New().String())
}
