// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dhmm runs a discrete hidden Markov model: it generates random
// sequences, computes forward probabilities and finds Viterbi paths.
//
//	$ dhmm --model partofspeech.browntags.trained --generate 20
//	$ dhmm --forward ambiguous_sents.obs
//	$ dhmm --viterbi ambiguous_sents.obs
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/akualab/dhmm"
	"github.com/akualab/dhmm/model"
	"github.com/akualab/dhmm/model/hmm"
	"github.com/golang/glog"
	"github.com/urfave/cli/v3"
)

const (
	appName      = "dhmm"
	appVersion   = "0.1"
	defaultModel = "partofspeech.browntags.trained"
)

var props *Properties

func main() {

	err := newApp(os.Stdout).Run(context.Background(), os.Args)
	glog.Flush()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp creates the command. Operation output is written to w.
func newApp(w io.Writer) *cli.Command {

	// -v is the log level, as in glog.
	cli.VersionFlag = &cli.BoolFlag{Name: "version", Usage: "print the version"}

	return &cli.Command{
		Name:    appName,
		Usage:   "discrete hidden Markov model toolkit",
		Version: appVersion,
		Description: `Loads a model from <model>.trans and <model>.emit and runs one operation.

A sample config file will look like this:

model: partofspeech.browntags.trained
results_file: results.json
hmm:
  start_symbol: "#"
  generator_seed: 33
`,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "generate", Usage: "generate a random sequence of length `N`"},
			&cli.StringFlag{Name: "forward", Usage: "run the forward algorithm on observation `FILE`"},
			&cli.StringFlag{Name: "viterbi", Usage: "run the viterbi algorithm on observation `FILE`"},

			&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Value: defaultModel, Usage: "model `BASENAME`, reads BASENAME.trans and BASENAME.emit"},
			&cli.StringFlag{Name: "start-symbol", Value: hmm.DefaultStartSymbol, Usage: "name of the start state in the transition file"},
			&cli.Int64Flag{Name: "seed", Usage: "seed for the random number generator, random when not set"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config `FILE`"},
			&cli.StringFlag{Name: "results-file", Aliases: []string{"r"}, Usage: "append JSON results to `FILE`"},

			&cli.BoolFlag{Name: "log-stderr", Value: true, Usage: "logs are written to standard error instead of files"},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"v"}, Value: "0", Usage: "enable V-leveled logging at the specified level"},
			&cli.StringFlag{Name: "log-dir", Usage: "log output dir"},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			props = readProperties()
			return ctx, initGlog(c)
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runAction(c, w)
		},
	}
}

func runAction(c *cli.Command, w io.Writer) error {

	var ops []string
	for _, name := range []string{"generate", "forward", "viterbi"} {
		if c.IsSet(name) {
			ops = append(ops, name)
		}
	}
	switch len(ops) {
	case 0:
		glog.V(1).Info("no operation requested")
		return nil
	case 1:
	default:
		return fmt.Errorf("only one of --generate, --forward, --viterbi may be set, got %v", ops)
	}

	config, err := loadConfig(c)
	if err != nil {
		return err
	}
	glog.V(1).Infof("config: %+v", config)

	seed := config.HMM.GeneratorSeed
	if seed == 0 && !c.IsSet("seed") {
		seed = time.Now().UnixNano()
	}
	m, warnings, err := hmm.Load(config.Model,
		hmm.Name(filepath.Base(config.Model)),
		hmm.StartSymbol(config.HMM.StartSymbol),
		hmm.Seed(seed))
	if err != nil {
		return err
	}
	for _, warn := range warnings {
		fmt.Fprintln(os.Stderr, warn)
	}

	r := &runner{w: w}
	if config.ResultsFile != "" {
		fn := config.ResultsFile
		if props.Workspace != "" && !filepath.IsAbs(fn) {
			fn = filepath.Join(props.Workspace, fn)
		}
		f, err := os.OpenFile(fn, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		r.results = dhmm.NewResultWriter(f)
	}

	switch ops[0] {
	case "generate":
		return r.generate(hmm.NewGenerator(m), c.Int("generate"))
	case "forward":
		obs, err := model.ReadObservationFile(c.String("forward"))
		if err != nil {
			return err
		}
		return r.forward(m, obs)
	default:
		obs, err := model.ReadObservationFile(c.String("viterbi"))
		if err != nil {
			return err
		}
		return r.viterbi(m, obs)
	}
}

// loadConfig reads the config file, if any, and applies flags that were set
// on the command line.
func loadConfig(c *cli.Command) (*dhmm.Config, error) {

	config := &dhmm.Config{}
	if fn := c.String("config"); fn != "" {
		var err error
		if config, err = dhmm.ReadConfig(fn); err != nil {
			return nil, err
		}
	}
	if config.Model == "" || c.IsSet("model") {
		config.Model = c.String("model")
	}
	if config.HMM.StartSymbol == "" || c.IsSet("start-symbol") {
		config.HMM.StartSymbol = c.String("start-symbol")
	}
	if c.IsSet("seed") {
		config.HMM.GeneratorSeed = c.Int64("seed")
	}
	if c.IsSet("results-file") {
		config.ResultsFile = c.String("results-file")
	}
	return config, nil
}

func initGlog(c *cli.Command) error {

	logDir := c.String("log-dir")
	if logDir == "" && props.LogDir != "" {
		logDir = props.LogDir
	}
	if c.Bool("log-stderr") {
		flag.Set("logtostderr", "true")
	} else {
		if logDir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			logDir = filepath.Join(cwd, "log")
		}
		if err := checkDir(logDir); err != nil {
			return err
		}
		flag.Set("log_dir", logDir)
	}
	flag.Set("v", c.String("log-level"))
	return flag.CommandLine.Parse(nil)
}
