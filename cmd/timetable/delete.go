package main

import (
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(&DeleteCommand)
}

var DeleteCommand = cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete papers",
	Long:  "Remove papers from the store and from the index, by id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		service := s.service()
		for _, id := range args {
			if err := service.Delete(id); err != nil {
				return err
			}
			cmd.Printf("%s deleted\n", id)
		}
		return nil
	},
}
