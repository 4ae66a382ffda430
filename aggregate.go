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
	"fmt"
	"sort"
	"strings"

	"github.com/mkyung/handover/model"
	"github.com/sirupsen/logrus"
)

const defaultTopCounterparties = 10

// BuildMonthlyPL rolls classified records into the monthly P&L table. Every
// month reports all five buckets, zero-filled when idle. The table is fed
// only by ledger-native classification; matched source records never add to
// it, so a claimed ledger line contributes exactly once.
func (h *Handover) BuildMonthlyPL(classified []model.ClassifiedRecord) model.MonthlyPL {
	pl := model.NewMonthlyPL()
	for _, record := range classified {
		month := record.Line.Month()
		pl[month][record.Bucket] += record.Net
	}
	return pl
}

// BuildCounterpartyTable produces the per-counterparty evidence-type
// breakdown: count and summed amount of matched records per
// (counterparty, evidence type) pair. Rows are sorted by counterparty then
// evidence code so repeated runs serialize identically.
func (h *Handover) BuildCounterpartyTable(matches []model.MatchResult, ledger []*model.LedgerLine) []model.CounterpartyEvidence {
	index := make(map[string]*model.LedgerLine, len(ledger))
	for _, line := range ledger {
		index[line.Key()] = line
	}

	type pairKey struct {
		counterparty string
		evidence     int
	}
	rows := make(map[pairKey]*model.CounterpartyEvidence)
	for i := range matches {
		match := &matches[i]
		if !match.Matched() {
			continue
		}
		line, ok := index[match.LedgerKey]
		if !ok {
			continue
		}
		key := pairKey{counterparty: line.CounterpartyName, evidence: line.EvidenceType}
		row, ok := rows[key]
		if !ok {
			row = &model.CounterpartyEvidence{
				Counterparty: key.counterparty,
				EvidenceType: key.evidence,
				EvidenceName: h.tables.EvidenceName(key.evidence),
			}
			rows[key] = row
		}
		row.Count++
		row.Amount += match.Amount
	}

	out := make([]model.CounterpartyEvidence, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Counterparty != out[b].Counterparty {
			return out[a].Counterparty < out[b].Counterparty
		}
		return out[a].EvidenceType < out[b].EvidenceType
	})
	return out
}

// TopCounterparties ranks SG&A counterparties by summed net amount, largest
// first. Ties break on name so the ranking is stable.
func (h *Handover) TopCounterparties(classified []model.ClassifiedRecord) []model.CounterpartyTotal {
	limit := h.topN
	if limit <= 0 {
		limit = defaultTopCounterparties
	}

	totals := make(map[string]*model.CounterpartyTotal)
	for _, record := range classified {
		if record.Bucket != model.BucketSGA {
			continue
		}
		name := record.Line.CounterpartyName
		if name == "" {
			continue
		}
		row, ok := totals[name]
		if !ok {
			row = &model.CounterpartyTotal{Counterparty: name}
			totals[name] = row
		}
		row.Amount += record.Net
		row.Count++
	}

	ranked := make([]model.CounterpartyTotal, 0, len(totals))
	for _, row := range totals {
		ranked = append(ranked, *row)
	}
	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].Amount != ranked[b].Amount {
			return ranked[a].Amount > ranked[b].Amount
		}
		return ranked[a].Counterparty < ranked[b].Counterparty
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// VerifyIncome cross-checks ledger-derived bucket totals against the income
// statement with zero tolerance. A discrepancy is reported for human
// judgment, never fatal.
func (h *Handover) VerifyIncome(classified []model.ClassifiedRecord, statement []model.IncomeStatementRow, audit *model.AuditTrail) []model.BucketVerification {
	ledgerTotals := make(map[model.Bucket]int64)
	for _, record := range classified {
		ledgerTotals[record.Bucket] += record.Net
	}

	statementTotals := make(map[model.Bucket]int64)
	for _, row := range statement {
		bucket, ok := h.statementBucket(row)
		if !ok {
			continue
		}
		statementTotals[bucket] += row.Amount
	}

	verifications := make([]model.BucketVerification, 0, len(model.PLBuckets))
	for _, bucket := range model.PLBuckets {
		v := model.BucketVerification{
			Bucket:         bucket,
			LedgerTotal:    ledgerTotals[bucket],
			StatementTotal: statementTotals[bucket],
		}
		v.Discrepancy = v.LedgerTotal - v.StatementTotal
		if v.Discrepancy != 0 {
			v.HasDiscrepancy = true
			audit.Add(model.AuditCrossCheck, string(bucket),
				fmt.Sprintf("ledger %d vs statement %d", v.LedgerTotal, v.StatementTotal))
			logrus.WithFields(logrus.Fields{
				"bucket":    bucket,
				"ledger":    v.LedgerTotal,
				"statement": v.StatementTotal,
			}).Warn("income cross-check mismatch")
		}
		verifications = append(verifications, v)
	}
	return verifications
}

// statementBucket resolves an income-statement row to a bucket: the COGS
// account family by code prefix, everything else by category code.
func (h *Handover) statementBucket(row model.IncomeStatementRow) (model.Bucket, bool) {
	for _, prefix := range h.tables.CostOfSalesPrefixes {
		if strings.HasPrefix(row.AccountCode, prefix) {
			return model.BucketCostOfSales, true
		}
	}
	bucket, ok := h.tables.CategoryBuckets[row.CategoryCode]
	return bucket, ok
}

// EvidenceRatios computes the VAT-documented share of each bucket's volume
// (tax invoice + card + cash receipt over total, on absolute amounts).
func (h *Handover) EvidenceRatios(classified []model.ClassifiedRecord) []model.EvidenceRatio {
	ratios := make([]model.EvidenceRatio, 0, len(model.PLBuckets))
	for _, bucket := range model.PLBuckets {
		ratio := model.EvidenceRatio{Bucket: bucket}
		for _, record := range classified {
			if record.Bucket != bucket {
				continue
			}
			amount := absInt64(record.Net)
			ratio.Total += amount
			if h.tables.VATEvidence[record.EvidenceType] {
				ratio.EvidencedAmount += amount
			}
		}
		if ratio.Total > 0 {
			ratio.Ratio = float64(ratio.EvidencedAmount) / float64(ratio.Total)
		}
		ratios = append(ratios, ratio)
	}
	return ratios
}

// CardUnreflected lists the card auto-journal lines that ended the run with
// no ledger counterpart, date-ordered for manual follow-up.
func (h *Handover) CardUnreflected(cards []*model.CardAutoLine) []*model.CardAutoLine {
	unreflected := make([]*model.CardAutoLine, 0)
	for _, card := range cards {
		if card.State == model.StatusNotRecommended {
			unreflected = append(unreflected, card)
		}
	}
	sort.Slice(unreflected, func(a, b int) bool {
		if !unreflected[a].Date.Equal(unreflected[b].Date) {
			return unreflected[a].Date.Before(unreflected[b].Date)
		}
		return unreflected[a].Row < unreflected[b].Row
	})
	return unreflected
}
