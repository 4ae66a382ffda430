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

package handover

import (
	"github.com/mkyung/handover/config"
	"github.com/mkyung/handover/database"
	"github.com/mkyung/handover/model"
)

// Handover is the reconciliation engine for one company-year of bookkeeping
// records. The lookup tables are fixed at construction so a run is
// referentially transparent; the datasource is optional and only used to
// persist run results.
type Handover struct {
	datasource database.IDataSource
	tables     model.Tables
	workers    int
	topN       int
}

// NewHandover initializes the engine from the loaded configuration.
//
// Parameters:
// - db database.IDataSource: datasource for run persistence, may be nil for in-memory runs.
//
// Returns:
// - *Handover: the engine instance.
// - error: an error if the configuration has not been loaded.
func NewHandover(db database.IDataSource) (*Handover, error) {
	configuration, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	return &Handover{
		datasource: db,
		tables:     model.DefaultTables(),
		workers:    configuration.Matching.Workers,
		topN:       configuration.Matching.TopCounterparties,
	}, nil
}

// Tables exposes the lookup tables the engine was constructed with.
func (h *Handover) Tables() model.Tables {
	return h.tables
}

// Datasource exposes the configured datasource, nil when the engine runs
// in-memory only.
func (h *Handover) Datasource() database.IDataSource {
	return h.datasource
}
