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
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mkyung/handover"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// readInput loads the five raw per-company collections from a directory of
// JSON files.
func readInput(dir string) (handover.RawInput, error) {
	var raw handover.RawInput

	files := []struct {
		name string
		dest *[]byte
	}{
		{"company.json", &raw.Company},
		{"ledger.json", &raw.Ledger},
		{"income.json", &raw.Income},
		{"cards.json", &raw.Cards},
		{"slips.json", &raw.Slips},
	}

	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(dir, f.name))
		if err != nil {
			return raw, fmt.Errorf("error reading %s: %v", f.name, err)
		}
		*f.dest = data
	}

	return raw, nil
}

// writeSummary serializes the run summary into the output directory, named
// by its run ID.
func writeSummary(outputDir string, summary interface{}, runID string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(outputDir, fmt.Sprintf("%s.json", runID))
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func analyzeCommands(h *handoverInstance) *cobra.Command {
	var inputDir string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the reconciliation engine over a directory of input files",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(inputDir)
			if err != nil {
				return err
			}

			summary, err := h.engine.Analyze(context.Background(), raw)
			if err != nil {
				return fmt.Errorf("analysis failed: %v", err)
			}

			path, err := writeSummary(h.cnf.OutputDir, summary, summary.RunID)
			if err != nil {
				return fmt.Errorf("error writing summary: %v", err)
			}

			logrus.Infof("run %s completed: %d matched, %d unmatched, %d audit events. Summary written to %s",
				summary.RunID, summary.MatchedCount, summary.UnmatchedCount, len(summary.Audit.Events), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputDir, "input", "./input", "Directory holding company.json, ledger.json, income.json, cards.json and slips.json")

	return cmd
}
