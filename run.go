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
	"context"
	"time"

	"github.com/mkyung/handover/internal/notification"
	"github.com/mkyung/handover/model"
	"github.com/sirupsen/logrus"
)

// Run lifecycle statuses, persisted on the run record.
const (
	StatusStarted    = "started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// RawInput holds the five raw per-company JSON collections before
// normalization.
type RawInput struct {
	Company []byte
	Ledger  []byte
	Income  []byte
	Cards   []byte
	Slips   []byte
}

// Analyze normalizes the raw collections and runs the engine over them.
// Malformed individual records are excluded into the audit trail; a
// collection that cannot be parsed at all fails here, before the engine
// runs.
func (h *Handover) Analyze(ctx context.Context, raw RawInput) (*model.Summary, error) {
	audit := &model.AuditTrail{}

	company, err := NormalizeCompany(raw.Company)
	if err != nil {
		return nil, err
	}
	ledger, err := NormalizeLedger(raw.Ledger, audit)
	if err != nil {
		return nil, err
	}
	income, err := NormalizeIncome(raw.Income)
	if err != nil {
		return nil, err
	}
	cards, err := NormalizeCards(raw.Cards, audit)
	if err != nil {
		return nil, err
	}
	slips, err := NormalizeSlips(raw.Slips, audit)
	if err != nil {
		return nil, err
	}

	input := &model.Input{
		Company: company,
		Ledger:  ledger,
		Income:  income,
		Cards:   cards,
		Slips:   slips,
	}
	return h.run(ctx, input, audit)
}

// Run executes the engine over already-normalized input.
func (h *Handover) Run(ctx context.Context, input *model.Input) (*model.Summary, error) {
	return h.run(ctx, input, &model.AuditTrail{})
}

func (h *Handover) run(ctx context.Context, input *model.Input, audit *model.AuditTrail) (*model.Summary, error) {
	runID := model.GenerateUUIDWithSuffix("run")
	run := &model.Run{
		RunID:     runID,
		Company:   input.Company.Name,
		Year:      input.Company.Year,
		Status:    StatusStarted,
		StartedAt: time.Now(),
	}
	if h.datasource != nil {
		if err := h.datasource.RecordRun(ctx, run); err != nil {
			return nil, err
		}
		if err := h.datasource.UpdateRunStatus(ctx, runID, StatusInProgress, 0, 0); err != nil {
			logrus.Errorf("error updating run status: %v", err)
		}
	}

	summary, err := h.compute(ctx, runID, input, audit)
	if err != nil {
		notification.NotifyError(err)
		if h.datasource != nil {
			if updateErr := h.datasource.UpdateRunStatus(ctx, runID, StatusFailed, 0, 0); updateErr != nil {
				logrus.Errorf("error updating run status: %v", updateErr)
			}
		}
		return nil, err
	}

	if h.datasource != nil {
		if err := h.persist(ctx, runID, summary); err != nil {
			notification.NotifyError(err)
			return nil, err
		}
	}
	return summary, nil
}

// compute is the pure engine pass: filter, remap, classify, match,
// aggregate. No I/O happens here; all inputs are fully materialized before
// it starts.
func (h *Handover) compute(ctx context.Context, runID string, input *model.Input, audit *model.AuditTrail) (*model.Summary, error) {
	operational := h.FilterOperational(input.Ledger, audit)
	remapped := h.RemapInventory(operational)
	classified := h.Classify(remapped, audit)
	matches := h.MatchRecords(ctx, remapped, input.Cards, input.Slips, audit)

	summary := &model.Summary{
		RunID:              runID,
		GeneratedAt:        time.Now(),
		CompanyProfile:     h.ClassifyCompanyType(input.Company, remapped),
		IncomeVerification: h.VerifyIncome(classified, input.Income, audit),
		MonthlyPL:          h.BuildMonthlyPL(classified),
		Counterparties:     h.BuildCounterpartyTable(matches, remapped),
		TopCounterparties:  h.TopCounterparties(classified),
		EvidenceRatios:     h.EvidenceRatios(classified),
		CardUnreflected:    h.CardUnreflected(input.Cards),
		Matches:            matches,
		Audit:              audit,
	}
	for i := range matches {
		if matches[i].Matched() {
			summary.MatchedCount++
		} else {
			summary.UnmatchedCount++
		}
	}
	return summary, nil
}

// persist writes the run outcome, its match results and the audit trail to
// the datasource.
func (h *Handover) persist(ctx context.Context, runID string, summary *model.Summary) error {
	for i := range summary.Matches {
		summary.Matches[i].RunID = runID
		if err := h.datasource.RecordMatch(ctx, &summary.Matches[i]); err != nil {
			return err
		}
	}
	for _, event := range summary.Audit.Events {
		if err := h.datasource.RecordAuditEvent(ctx, runID, event); err != nil {
			return err
		}
	}
	return h.datasource.UpdateRunStatus(ctx, runID, StatusCompleted, summary.MatchedCount, summary.UnmatchedCount)
}
