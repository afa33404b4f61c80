package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <apk>",
		Short: "Print the cached or freshly extracted metadata of an apk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := newAppService()
			if err != nil {
				return err
			}
			info, err := service.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(info)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
	return cmd
}
