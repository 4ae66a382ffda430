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
package model

import "time"

// MonthlyPL is the monthly profit-and-loss table: for each month 1-12, the
// summed net amount per bucket. Months with no activity report zero, not
// absence.
type MonthlyPL map[int]map[Bucket]int64

// NewMonthlyPL returns a fully zero-filled table.
func NewMonthlyPL() MonthlyPL {
	pl := make(MonthlyPL, 12)
	for m := 1; m <= 12; m++ {
		row := make(map[Bucket]int64, len(PLBuckets))
		for _, b := range PLBuckets {
			row[b] = 0
		}
		pl[m] = row
	}
	return pl
}

// BucketTotal sums one bucket across all twelve months.
func (pl MonthlyPL) BucketTotal(b Bucket) int64 {
	var total int64
	for m := 1; m <= 12; m++ {
		total += pl[m][b]
	}
	return total
}

// MonthlyAverage is the bucket total divided over twelve months, rounded
// toward zero.
func (pl MonthlyPL) MonthlyAverage(b Bucket) int64 {
	return pl.BucketTotal(b) / 12
}

// CounterpartyEvidence is one row of the per-counterparty evidence-type
// table: count and summed amount of matched records for the pair.
type CounterpartyEvidence struct {
	Counterparty string `json:"counterparty"`
	EvidenceType int    `json:"evidence_type"`
	EvidenceName string `json:"evidence_name"`
	Count        int    `json:"count"`
	Amount       int64  `json:"amount"`
}

// CounterpartyTotal is one row of the SG&A counterparty ranking.
type CounterpartyTotal struct {
	Counterparty string `json:"counterparty"`
	Amount       int64  `json:"amount"`
	Count        int    `json:"count"`
}

// BucketVerification cross-checks the ledger-derived total for one bucket
// against the income-statement-derived total. Tolerance is zero; a
// discrepancy is reported, never fatal.
type BucketVerification struct {
	Bucket         Bucket `json:"bucket"`
	LedgerTotal    int64  `json:"ledger_total"`
	StatementTotal int64  `json:"statement_total"`
	Discrepancy    int64  `json:"discrepancy"`
	HasDiscrepancy bool   `json:"has_discrepancy"`
}

// EvidenceRatio is the VAT-documented share of one bucket's volume.
type EvidenceRatio struct {
	Bucket          Bucket  `json:"bucket"`
	Total           int64   `json:"total"`
	EvidencedAmount int64   `json:"evidenced_amount"`
	Ratio           float64 `json:"ratio"`
}

// CompanyProfile labels the company's dominant bookkeeping pattern by
// payment-channel share of total transaction volume.
type CompanyProfile struct {
	Company         CompanyInfo `json:"company"`
	Type            string      `json:"type"`
	BankShare       float64     `json:"bank_share"`
	CardShare       float64     `json:"card_share"`
	TaxInvoiceShare float64     `json:"tax_invoice_share"`
	TotalVolume     int64       `json:"total_volume"`
}

// Summary is the engine's sole contract with the external serialization
// layer. Built once per run, immutable after construction.
type Summary struct {
	RunID              string                 `json:"run_id"`
	GeneratedAt        time.Time              `json:"generated_at"`
	CompanyProfile     CompanyProfile         `json:"company_profile"`
	IncomeVerification []BucketVerification   `json:"income_verification"`
	MonthlyPL          MonthlyPL              `json:"monthly_pl"`
	Counterparties     []CounterpartyEvidence `json:"counterparties"`
	TopCounterparties  []CounterpartyTotal    `json:"top_counterparties"`
	EvidenceRatios     []EvidenceRatio        `json:"evidence_ratios"`
	CardUnreflected    []*CardAutoLine        `json:"card_unreflected"`
	Matches            []MatchResult          `json:"matches"`
	Audit              *AuditTrail            `json:"audit"`
	MatchedCount       int                    `json:"matched_count"`
	UnmatchedCount     int                    `json:"unmatched_count"`
}

// Run is the persisted record of one engine invocation.
type Run struct {
	ID             int64      `json:"-"`
	RunID          string     `json:"run_id"`
	Company        string     `json:"company"`
	Year           int        `json:"year"`
	Status         string     `json:"status"`
	MatchedCount   int        `json:"matched_count"`
	UnmatchedCount int        `json:"unmatched_count"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
}
