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

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"

	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_WORKERS = 10
	DEFAULT_TOP_N   = 10
)

var ConfigStore atomic.Value

type DataSourceConfig struct {
	Dns string `json:"dns" envconfig:"HANDOVER_DATA_SOURCE_DNS"`
}

type MatchingConfig struct {
	Workers           int `json:"workers" envconfig:"HANDOVER_MATCHING_WORKERS"`
	TopCounterparties int `json:"top_counterparties" envconfig:"HANDOVER_TOP_COUNTERPARTIES"`
}

type SlackWebhook struct {
	WebhookUrl string `json:"webhook_url"`
}

type Notification struct {
	Slack SlackWebhook `json:"slack"`
}

type Configuration struct {
	ProjectName  string           `json:"project_name" envconfig:"HANDOVER_PROJECT_NAME"`
	CompanyName  string           `json:"company_name" envconfig:"HANDOVER_COMPANY_NAME"`
	Year         int              `json:"year" envconfig:"HANDOVER_YEAR"`
	OutputDir    string           `json:"output_dir" envconfig:"HANDOVER_OUTPUT_DIR"`
	DataSource   DataSourceConfig `json:"data_source"`
	Matching     MatchingConfig   `json:"matching"`
	Notification Notification     `json:"notification"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}

	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("handover", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called handover.json with your config")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		log.Println("Warning: Project name is empty. Setting a default name.")
		cnf.ProjectName = "Handover"
	}

	if cnf.Year == 0 {
		log.Println("Error: Year is empty. It's a required field.")
		return errors.New("year is required")
	}

	// Trim white spaces from fields
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.CompanyName = strings.TrimSpace(cnf.CompanyName)
	cnf.OutputDir = strings.TrimSpace(cnf.OutputDir)
	cnf.DataSource.Dns = strings.TrimSpace(cnf.DataSource.Dns)

	if cnf.OutputDir == "" {
		cnf.OutputDir = "./output"
	}

	// The datasource is optional: with no DNS configured the engine runs
	// in-memory only.
	if cnf.DataSource.Dns == "" {
		log.Println("Warning: Data source DNS is empty. Run results will not be persisted.")
	}

	if cnf.Matching.Workers <= 0 {
		cnf.Matching.Workers = DEFAULT_WORKERS
		log.Printf("Warning: Matching workers not specified. Setting default value: %d", DEFAULT_WORKERS)
	}
	if cnf.Matching.TopCounterparties <= 0 {
		cnf.Matching.TopCounterparties = DEFAULT_TOP_N
	}

	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
