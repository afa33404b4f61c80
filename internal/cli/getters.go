package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGettersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "getters",
		Short: "List the registered sources in probe order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := newAppService()
			if err != nil {
				return err
			}
			sources, err := service.ListSources(cmd.Context())
			if err != nil {
				return err
			}
			for _, source := range sources {
				fmt.Printf("%-10s %3d  %s\n", source.Priority, int(source.Priority), source.Name)
			}
			return nil
		},
	}
	return cmd
}
