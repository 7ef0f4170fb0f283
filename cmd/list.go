package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jake-scott/switchbot-cli/internal/pkg/switchbot"
)

var _listCmdOpts struct {
	asJSON     bool
	exportFile string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the devices and infrared remotes of the account",

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := doList(); err != nil {
			return err
		}

		return nil
	},

	PreRunE: checkCredentials,
}

func init() {
	listCmd.Flags().BoolVar(&_listCmdOpts.asJSON, "json", false, "print the device list as JSON")
	listCmd.Flags().StringVar(&_listCmdOpts.exportFile, "export", "output/devices.json", "file to save the device list to, empty to disable")

	errPanic(viper.GetViper().BindPFlag("list.json", listCmd.Flags().Lookup("json")))
	errPanic(viper.GetViper().BindPFlag("export.file", listCmd.Flags().Lookup("export")))

	rootCmd.AddCommand(listCmd)
}

func doList() error {
	svc, err := newService()
	if err != nil {
		return err
	}

	devices, err := svc.FetchDevices(newCommandContext())
	if err != nil {
		return err
	}

	if viper.GetBool("list.json") {
		b, err := json.MarshalIndent(devices, "", "    ")
		if err != nil {
			return err
		}

		fmt.Println(string(b))
		return nil
	}

	return printDevices(os.Stdout, devices)
}

func printDevices(w io.Writer, devices []switchbot.Device) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tINFRARED\tHUB")

	for _, d := range devices {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", d.ID, d.Name, d.DeviceType, d.IsInfrared, d.HubDeviceID)
	}

	return tw.Flush()
}
