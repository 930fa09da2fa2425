package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/conductor-go/pkg/catalog"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Discover and print the configured agent roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := catalog.NewRegistry()
		registry.Discover(cmd.Context(), viper.GetStringSlice("agents.endpoints"))

		if registry.Len() == 0 {
			fmt.Println("no agents discovered")
			return nil
		}

		fmt.Println(registry.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(agentsCmd)
}
