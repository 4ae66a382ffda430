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
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func runsCommands(h *handoverInstance) *cobra.Command {
	var company string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List persisted runs for a company",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := h.engine.Datasource()
			if ds == nil {
				return errors.New("no datasource configured; runs are not persisted")
			}

			if company == "" {
				company = h.cnf.CompanyName
			}
			if company == "" {
				return errors.New("company is required, pass --company or set it in the config")
			}

			runs, err := ds.GetRunsByCompany(context.Background(), company)
			if err != nil {
				return fmt.Errorf("error fetching runs: %v", err)
			}

			if len(runs) == 0 {
				fmt.Printf("no runs found for %s\n", company)
				return nil
			}

			for _, run := range runs {
				completed := "-"
				if run.CompletedAt != nil {
					completed = run.CompletedAt.Format("2006-01-02 15:04:05")
				}
				fmt.Printf("%s\t%d\t%s\tmatched=%d\tunmatched=%d\tcompleted=%s\n",
					run.RunID, run.Year, run.Status, run.MatchedCount, run.UnmatchedCount, completed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company name to list runs for")

	return cmd
}
