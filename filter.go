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
	"github.com/mkyung/handover/model"
	"github.com/sirupsen/logrus"
)

// FilterOperational returns the subset of ledger lines eligible for
// classification. Retained-earnings transfers, P&L reversals and
// closing-period inventory credit lines are structurally non-operational;
// each excluded line lands in the audit trail with its reason, never
// silently dropped. Filtered lines are dropped, not mutated.
func (h *Handover) FilterOperational(lines []*model.LedgerLine, audit *model.AuditTrail) []*model.LedgerLine {
	operational := make([]*model.LedgerLine, 0, len(lines))
	for _, line := range lines {
		if reason, excluded := exclusionReason(line); excluded {
			audit.Add(model.AuditExcludedLine, line.Key(), reason)
			logrus.WithFields(logrus.Fields{
				"line":   line.Key(),
				"reason": reason,
			}).Debug("excluded ledger line")
			continue
		}
		operational = append(operational, line)
	}
	logrus.Infof("preprocessing filter: %d of %d ledger lines operational", len(operational), len(lines))
	return operational
}

// exclusionReason applies the exclusion rules independently; any match
// removes the line. The closing-entry rule only removes the credit side so
// the matching debit line survives.
func exclusionReason(line *model.LedgerLine) (string, bool) {
	switch {
	case line.EvidenceType == model.EvidenceRetainedEarnings:
		return "retained_earnings_transfer", true
	case line.EvidenceType == model.EvidencePLReversal:
		return "pl_reversal", true
	case line.EvidenceType == model.EvidenceClosingEntry && line.Credit > 0:
		return "closing_inventory_credit", true
	}
	return "", false
}
