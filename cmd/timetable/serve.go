package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/andy2804/iros22-timetable/endpoints"
	"github.com/andy2804/iros22-timetable/etl"
	timetablehttp "github.com/andy2804/iros22-timetable/http"
)

func init() {
	ServeCommand.Flags().String("addr", "", "address to listen on, overrides the configuration")

	RootCmd.AddCommand(&ServeCommand)
}

var ServeCommand = cobra.Command{
	Use:   "serve [file]...",
	Short: "Serve the timetable",
	Long:  "Serve the timetable over http, after importing the program pages given as arguments",
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
			if _, err := service.Import(program); err != nil {
				return err
			}
		}

		scraper, err := etl.NewProgramScraper(cfg.Conventions, logger)
		if err != nil {
			return err
		}

		srv := timetablehttp.NewGinServer(env)
		timetablehttp.RegisterTimetableEndpoints(srv, endpoints.NewTimetableEndpoint(service, scraper), logger)

		addr := cfg.Server.Addr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		logger.Printf("server started, listening on %s", addr)
		return http.ListenAndServe(addr, srv)
	},
}
