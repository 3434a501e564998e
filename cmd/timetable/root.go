package main

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/andy2804/iros22-timetable/log"
)

var (
	// flags
	env        string
	configFile string

	// logger
	logger log.Logger

	// configuration
	cfg Configuration
)

func init() {
	RootCmd.PersistentFlags().StringVar(&env, "env", "dev", "environment")
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration file")
}

var RootCmd = cobra.Command{
	Use:          "timetable",
	Short:        "Extract and browse a conference technical program",
	Long:         "Extract the papers and rooms of a conference technical program page, store them and serve them as a timetable",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = log.New(env)

		required := configFile != ""
		if configFile == "" {
			configFile = path.Join("configuration", fmt.Sprintf("config.%s.toml", env))
		}

		var err error
		cfg, err = loadConfiguration(configFile, required)
		if err != nil {
			logger.Fatal("could not load configuration:", err)
		}
	},
}
