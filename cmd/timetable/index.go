package main

import (
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(&IndexCommand)
}

var IndexCommand = cobra.Command{
	Use:   "index",
	Short: "Rebuild the index",
	Long:  "Index again every paper of the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.service().Reindex()
		if err != nil {
			return err
		}
		cmd.Printf("%d sessions indexed\n", n)
		return nil
	},
}
