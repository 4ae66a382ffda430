/*
Copyright 2025 Handover Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mkyung/handover"
	"github.com/mkyung/handover/config"
	"github.com/mkyung/handover/database"
	"github.com/mkyung/handover/internal/notification"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CLI encapsulates the root Cobra command.
type CLI struct {
	cmd *cobra.Command
}

// handoverInstance holds the engine instance and its configuration for use
// by the subcommands.
type handoverInstance struct {
	engine *handover.Handover
	cnf    *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads the configuration and initializes the engine before running
// any command.
func preRun(app *handoverInstance, configFile *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig(*configFile)
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		engine, err := setupHandover(cnf)
		if err != nil {
			notification.NotifyError(err)
			log.Fatal(err)
		}

		app.engine = engine
		app.cnf = cnf

		return nil
	}
}

// setupHandover creates the engine, connecting a datasource only when one is
// configured; otherwise the run stays in-memory.
func setupHandover(cfg *config.Configuration) (*handover.Handover, error) {
	var db database.IDataSource
	if cfg.DataSource.Dns != "" {
		var err error
		db, err = database.NewDataSource(cfg)
		if err != nil {
			return nil, fmt.Errorf("error getting datasource: %v", err)
		}
	}

	engine, err := handover.NewHandover(db)
	if err != nil {
		return nil, fmt.Errorf("error creating handover engine: %v", err)
	}
	return engine, nil
}

// NewCLI creates the command-line interface for the handover application.
func NewCLI() *CLI {
	var configFile string
	h := &handoverInstance{}

	var rootCmd = &cobra.Command{
		Use:   "handover",
		Short: "Bookkeeping reconciliation and handover summary engine",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./handover.json", "Configuration file for the engine")

	rootCmd.PersistentPreRunE = preRun(h, &configFile)

	rootCmd.AddCommand(analyzeCommands(h))
	rootCmd.AddCommand(runsCommands(h))

	return &CLI{cmd: rootCmd}
}

// executeCLI runs the root command, handling any errors that occur during execution.
func (c CLI) executeCLI() {
	if err := c.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
