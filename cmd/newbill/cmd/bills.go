package cmd

import (
	"github.com/spf13/cobra"
)

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Mes notes de frais",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := authorized()
		if err != nil {
			return err
		}
		bills, err := client.List(cmd.Context())
		if err != nil {
			return err
		}
		printBills(cmd.OutOrStdout(), bills)
		return nil
	},
}
