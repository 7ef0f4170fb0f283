package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jake-scott/switchbot-cli/version"
)

var (
	_versionAsJSON bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version number of the tool",

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := doVersion(); err != nil {
			return err
		}

		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&_versionAsJSON, "json", false, "Return version as JSON")
	errPanic(viper.GetViper().BindPFlag("version.json", versionCmd.Flags().Lookup("json")))

	rootCmd.AddCommand(versionCmd)
}

type versionResult struct {
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
	APIHost   string `json:"apiHost"`
}

func doVersion() error {
	if viper.GetBool("version.json") {
		v := versionResult{
			Version:   version.Version,
			GoVersion: runtime.Version(),
			APIHost:   viper.GetString("switchbot.host"),
		}

		b, err := json.MarshalIndent(v, "", "    ")
		if err != nil {
			return err
		}

		fmt.Println(string(b))
	} else {
		fmt.Printf("switchbot-cli version %s (%s)\n", version.Version, runtime.Version())
	}

	return nil
}
