package main

import (
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(&ImportCommand)
}

var ImportCommand = cobra.Command{
	Use:   "import <file>...",
	Short: "Import program pages",
	Long:  "Extract program pages, store their papers and rooms, and index their sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		service := s.service()
		for _, source := range args {
			program, err := extractSource(source, cmd.InOrStdin())
			if err != nil {
				return err
			}

			sessions, err := service.Import(program)
			if err != nil {
				return err
			}
			cmd.Printf("%s: %d sessions imported\n", source, len(sessions))
		}
		return nil
	},
}
