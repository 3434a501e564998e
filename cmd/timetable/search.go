package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andy2804/iros22-timetable/export"
)

func init() {
	SearchCommand.Flags().StringSlice("day", nil, "days to search, as dates or weekday names")
	SearchCommand.Flags().Int("limit", 20, "maximum number of results")
	SearchCommand.Flags().Int("offset", 0, "number of results to skip")

	RootCmd.AddCommand(&SearchCommand)
	RootCmd.AddCommand(&TagsCommand)
}

var SearchCommand = cobra.Command{
	Use:   "search <q>...",
	Short: "Search the sessions",
	Long:  "Search the titles, keywords and abstracts of the stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetStringSlice("day")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		res, err := s.service().Search(strings.Join(args, " "), days, offset, limit)
		if err != nil {
			return err
		}

		if err := export.WriteJSON(cmd.OutOrStdout(), res); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout())
		return err
	},
}

var TagsCommand = cobra.Command{
	Use:   "tags",
	Short: "List the keywords",
	Long:  "List the keywords of the stored sessions, most used first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		tags, err := s.service().Tags()
		if err != nil {
			return err
		}

		for _, tag := range tags {
			fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", tag.Count, tag.Tag)
		}
		return nil
	},
}
