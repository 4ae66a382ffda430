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
	"strings"

	"github.com/mkyung/handover/model"
	"github.com/sirupsen/logrus"
)

// Classify assigns each remapped ledger line to exactly one P&L bucket and
// computes its signed net amount under the bucket's convention. A line with
// both debit and credit populated is classified on its net; it is never split
// into two records. Lines matching no bucket are balance-sheet-only: they
// produce no ClassifiedRecord, are excluded from P&L totals, and are recorded
// in the audit trail as classification gaps.
func (h *Handover) Classify(lines []*model.LedgerLine, audit *model.AuditTrail) []model.ClassifiedRecord {
	records := make([]model.ClassifiedRecord, 0, len(lines))
	for _, line := range lines {
		bucket, ok := h.bucketFor(line)
		if !ok {
			audit.Add(model.AuditClassificationGap, line.Key(),
				fmt.Sprintf("account %s (category %d) matches no P&L bucket", line.AccountCode, line.CategoryCode))
			logrus.WithFields(logrus.Fields{
				"line":    line.Key(),
				"account": line.AccountCode,
			}).Debug("balance-sheet-only ledger line")
			continue
		}
		records = append(records, model.ClassifiedRecord{
			Line:         line,
			Bucket:       bucket,
			Net:          line.Net(bucket),
			EvidenceType: line.EvidenceType,
		})
	}
	return records
}

// bucketFor resolves the P&L bucket for a line. Cost of sales is recognized
// by the destination account code produced by the inventory remap, not by
// the original category code; everything else resolves through the category
// table.
func (h *Handover) bucketFor(line *model.LedgerLine) (model.Bucket, bool) {
	for _, prefix := range h.tables.CostOfSalesPrefixes {
		if strings.HasPrefix(line.AccountCode, prefix) {
			return model.BucketCostOfSales, true
		}
	}
	if bucket, ok := h.tables.CategoryBuckets[line.CategoryCode]; ok {
		return bucket, true
	}
	return model.BucketBalanceSheet, false
}
