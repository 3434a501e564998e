package main

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/andy2804/iros22-timetable/errors"
	"github.com/andy2804/iros22-timetable/etl"
	"github.com/andy2804/iros22-timetable/services"
)

type Configuration struct {
	Bolt struct {
		Store string `toml:"store"`
	} `toml:"bolt"`
	Bleve struct {
		Store string `toml:"store"`
	} `toml:"bleve"`
	Server struct {
		Addr string `toml:"addr"`
	} `toml:"server"`
	Timetable struct {
		LiveWindow duration `toml:"live_window"`
	} `toml:"timetable"`
	Conventions etl.Conventions `toml:"conventions"`
}

// duration reads "1h30m" like strings.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func defaultConfiguration() Configuration {
	var cfg Configuration
	cfg.Server.Addr = ":8081"
	cfg.Timetable.LiveWindow = duration{services.DefaultLiveWindow}
	cfg.Conventions = etl.DefaultConventions()
	return cfg
}

// loadConfiguration reads the file at path over the defaults. A missing file
// is only an error when required is set.
func loadConfiguration(path string, required bool) (Configuration, error) {
	cfg := defaultConfiguration()

	if _, err := os.Stat(path); os.IsNotExist(err) && !required {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.New("could not read configuration file "+path, errors.WithCause(err))
	}

	if err := cfg.Conventions.Validate(); err != nil {
		return cfg, errors.New("invalid conventions", errors.WithCause(err))
	}
	return cfg, nil
}
