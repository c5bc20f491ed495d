// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dhmm

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the parameters of a dhmm run. Command line flags take
// precedence over config values.
type Config struct {
	// Model is the basename of the .trans and .emit files.
	Model string `yaml:"model" json:"model"`

	// ResultsFile receives one JSON record per operation when set.
	ResultsFile string `yaml:"results_file,omitempty" json:"results_file,omitempty"`

	HMM HMM `yaml:"hmm" json:"hmm"`
}

type HMM struct {
	StartSymbol   string `yaml:"start_symbol,omitempty" json:"start_symbol,omitempty"`
	GeneratorSeed int64  `yaml:"generator_seed,omitempty" json:"generator_seed,omitempty"`
}

// ReadConfig reads a YAML config file.
func ReadConfig(fn string) (*Config, error) {

	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	config := &Config{}
	if err = yaml.Unmarshal(b, config); err != nil {
		return nil, err
	}
	return config, nil
}
