package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jake-scott/switchbot-cli/internal/pkg/control"
	"github.com/jake-scott/switchbot-cli/internal/pkg/switchbot"
)

var _execCmdOpts struct {
	devices   []string
	command   string
	values    []string
	customize bool
	parallel  int
}

var execCmd = &cobra.Command{
	Use:   "exec -d DEVICE -c COMMAND [-v VALUE...] [VALUE...]",
	Short: "Send a command to one or more devices",
	Long: `Send a command to one or more devices, given by ID or alias.

Known commands: on, off, brightness <1-100>, color <r> <g> <b>,
color_temp <2700-6500>, ac <temp> <mode> <fan> <on|off>.  Any other
name is sent as is, with the values joined by ':' as its parameter;
--customize sends it as a customize (infrared button) command.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := doExec(args); err != nil {
			return err
		}

		return nil
	},

	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(_execCmdOpts.devices) == 0 || _execCmdOpts.command == "" {
			return fmt.Errorf("--device and --command are required")
		}

		return checkCredentials(cmd, args)
	},
}

func init() {
	// arrays, not slices: values are never split on commas
	execCmd.Flags().StringArrayVarP(&_execCmdOpts.devices, "device", "d", nil, "device ID or alias, may be repeated")
	execCmd.Flags().StringVarP(&_execCmdOpts.command, "command", "c", "", "command name")
	execCmd.Flags().StringArrayVarP(&_execCmdOpts.values, "values", "v", nil, "command values, may be repeated")
	execCmd.Flags().BoolVarP(&_execCmdOpts.customize, "customize", "C", false, "send an unknown command as a customize command")
	execCmd.Flags().IntVar(&_execCmdOpts.parallel, "parallel", 4, "maximum number of devices commanded at once")

	errPanic(viper.GetViper().BindPFlag("exec.parallel", execCmd.Flags().Lookup("parallel")))

	rootCmd.AddCommand(execCmd)
}

// execCommand builds the command from the parsed flags, with positional
// arguments appended to the --values
func execCommand(args []string) (switchbot.Command, error) {
	values := append(append([]string{}, _execCmdOpts.values...), args...)

	return control.BuildCommand(_execCmdOpts.command, values, _execCmdOpts.customize)
}

func doExec(args []string) error {
	command, err := execCommand(args)
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	devices := _execCmdOpts.devices
	if err := svc.WithParallel(viper.GetInt("exec.parallel")).ExecuteMany(newCommandContext(), devices, command); err != nil {
		return err
	}

	fmt.Printf("%s sent to %s\n", command, strings.Join(devices, ", "))
	return nil
}
