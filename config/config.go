package config

// This file contains all the code that directly uses the viper
// package. Everything read here lands in the settings globals, so the
// rest of the tree never deals with config files itself.

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/rsilicon/rsdspemu/settings"
)

// SimConfig mirrors the layout of the YAML/TOML simulation config:
//
//   dsp:
//     variant: MULTACC
//     coefficients: [0x00004, 0x00008, 0x0000c, 0x00010]
//     output_select: 1
//     register_inputs: false
//   axis:
//     lanes: 4
//   files:
//     vectors: vectors.txt
//     trace: trace.csv
//     input_wav: in.wav
//     output_wav: out.wav
type SimConfig struct {
	DSP struct {
		Variant        string   `mapstructure:"variant"`
		Coefficients   []uint32 `mapstructure:"coefficients"`
		OutputSelect   int      `mapstructure:"output_select"`
		RegisterInputs bool     `mapstructure:"register_inputs"`
	} `mapstructure:"dsp"`
	Axis struct {
		Lanes int `mapstructure:"lanes"`
	} `mapstructure:"axis"`
	Files struct {
		Vectors   string `mapstructure:"vectors"`
		Trace     string `mapstructure:"trace"`
		InputWav  string `mapstructure:"input_wav"`
		OutputWav string `mapstructure:"output_wav"`
	} `mapstructure:"files"`
}

// Load reads the config file named in settings.ConfigFile (or
// "rsdspemu.{yaml,toml}" in the working directory when unset) and
// copies its values into the settings globals. Flags parsed after
// this still win.
func Load() error {
	if settings.ConfigFile != "" {
		viper.SetConfigFile(settings.ConfigFile)
	} else {
		viper.SetConfigName("rsdspemu")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		if settings.ConfigFile == "" {
			return nil // No config file is fine; flags carry everything
		}
		return errors.Wrapf(err, "reading config '%s'", settings.ConfigFile)
	}

	var cfg SimConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return errors.Wrap(err, "unmarshalling config")
	}

	if len(cfg.DSP.Coefficients) > 4 {
		return errors.Errorf("config lists %d coefficients, the bank holds 4",
			len(cfg.DSP.Coefficients))
	}
	for i, c := range cfg.DSP.Coefficients {
		settings.Coefficients[i] = c
	}
	// Command line flags win over config file values
	if cfg.DSP.Variant != "" && settings.Variant == "" {
		settings.Variant = cfg.DSP.Variant
	}
	settings.OutputSelect = cfg.DSP.OutputSelect
	settings.RegisterInputs = cfg.DSP.RegisterInputs

	if cfg.Axis.Lanes > 0 {
		settings.AxisLanes = cfg.Axis.Lanes
	}
	if cfg.Files.Vectors != "" && settings.VectorFilename == "" {
		settings.VectorFilename = cfg.Files.Vectors
	}
	if cfg.Files.Trace != "" && settings.TraceFilename == "" {
		settings.TraceFilename = cfg.Files.Trace
	}
	if cfg.Files.InputWav != "" && settings.InputWav == "" {
		settings.InputWav = cfg.Files.InputWav
	}
	if cfg.Files.OutputWav != "" && settings.OutputWav == "output.wav" {
		settings.OutputWav = cfg.Files.OutputWav
	}

	return nil
}
