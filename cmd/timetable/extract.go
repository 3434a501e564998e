package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/andy2804/iros22-timetable"
	"github.com/andy2804/iros22-timetable/errors"
	"github.com/andy2804/iros22-timetable/etl"
	"github.com/andy2804/iros22-timetable/export"
)

func init() {
	ExtractCommand.Flags().String("out", "", "directory to write papers.json and rooms.json into")
	ExtractCommand.Flags().Bool("page", false, "write an html page holding both files")

	RootCmd.AddCommand(&ExtractCommand)
}

var ExtractCommand = cobra.Command{
	Use:   "extract [file|-]",
	Short: "Extract papers and rooms from a program page",
	Long:  "Extract the papers and the rooms of a saved program page, read from a file or from stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := "-"
		if len(args) == 1 {
			source = args[0]
		}

		program, err := extractSource(source, cmd.InOrStdin())
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		page, _ := cmd.Flags().GetBool("page")
		return writeProgram(cmd.OutOrStdout(), program, out, page)
	},
}

// extractSource runs the extractor on the file at source, or on stdin when
// source is "-".
func extractSource(source string, stdin io.Reader) (timetable.Program, error) {
	scraper, err := etl.NewProgramScraper(cfg.Conventions, logger)
	if err != nil {
		return timetable.Program{}, err
	}

	var r io.Reader = stdin
	if source != "-" {
		f, err := os.Open(source)
		if err != nil {
			return timetable.Program{}, errors.New("could not open "+source, errors.NotFound(), errors.WithCause(err))
		}
		defer f.Close()
		r = f
	}

	program, err := scraper.ScrapReader(r)
	if err != nil {
		return timetable.Program{}, errors.New("could not extract "+source, errors.WithCause(err))
	}

	logger.Printf("extracted %d papers and %d rooms from %s", len(program.Papers), len(program.Rooms), source)
	return program, nil
}

// writeProgram writes the files into dir when set, the html page to w when
// page is set, and both files to w when neither is.
func writeProgram(w io.Writer, program timetable.Program, dir string, page bool) error {
	if dir != "" {
		if err := export.WriteFiles(dir, program); err != nil {
			return err
		}
		logger.Printf("wrote %s and %s into %s", export.PapersFile, export.RoomsFile, dir)
	}

	if page {
		return export.WritePage(w, program)
	}

	if dir == "" {
		if err := export.WriteJSON(w, program); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
