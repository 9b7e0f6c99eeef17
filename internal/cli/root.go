package cli

import (
	"github.com/spf13/cobra"
)

func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bakeryd",
		Short: "Park Ave Bakery ordering service",
	}
	cmd.AddCommand(NewServerCmd())
	cmd.AddCommand(NewStaffCmd())
	cmd.AddCommand(NewKeysCmd())
	cmd.AddCommand(NewRulesCmd())
	return cmd
}
