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

// Evidence-type codes emitted by the bookkeeping platform.
const (
	EvidenceManual           = 0
	EvidenceCashAdjustment   = 1
	EvidenceClosingEntry     = 5
	EvidenceRetainedEarnings = 7
	EvidencePLReversal       = 27
	EvidenceWithholdingTax   = 40
	EvidenceTaxInvoice       = 86
	EvidenceZeroRated        = 87
	EvidenceCreditCard       = 88
	EvidenceCashReceipt      = 89
	EvidenceBankAuto         = 90
)

// Bucket is a profit-and-loss category. BucketBalanceSheet marks lines that
// belong to no P&L category and are excluded from P&L totals.
type Bucket string

const (
	BucketRevenue      Bucket = "revenue"
	BucketCostOfSales  Bucket = "cost_of_sales"
	BucketSGA          Bucket = "sga"
	BucketNonOpIncome  Bucket = "non_operating_income"
	BucketNonOpExpense Bucket = "non_operating_expense"
	BucketBalanceSheet Bucket = "balance_sheet"
)

// PLBuckets lists the five P&L buckets in report order.
var PLBuckets = []Bucket{
	BucketRevenue,
	BucketCostOfSales,
	BucketSGA,
	BucketNonOpIncome,
	BucketNonOpExpense,
}

// IsExpense reports whether the bucket follows the debit-minus-credit net
// convention.
func (b Bucket) IsExpense() bool {
	switch b {
	case BucketCostOfSales, BucketSGA, BucketNonOpExpense:
		return true
	}
	return false
}

// Tables holds the immutable lookup tables the engine runs against. They are
// loaded once per run and passed into each component explicitly, so tests can
// substitute their own.
type Tables struct {
	// EvidenceNames maps evidence-type codes to display names.
	EvidenceNames map[int]string

	// CategoryBuckets maps the platform's account-category code to a P&L
	// bucket. Cost of sales is intentionally absent: it is recognized by
	// destination account code after inventory remapping.
	CategoryBuckets map[int]Bucket

	// InventoryRemap maps a three-digit inventory account-code prefix to
	// the full cost-of-goods-sold account code it is rewritten to.
	InventoryRemap map[string]string

	// CostOfSalesPrefixes holds the three-digit account-code prefixes of
	// the COGS family produced by the remap.
	CostOfSalesPrefixes []string

	// VATEvidence marks the evidence types that count as VAT-documented
	// (tax invoice, zero-rated, card, cash receipt).
	VATEvidence map[int]bool
}

// DefaultTables returns the lookup tables for the supported bookkeeping
// platform.
func DefaultTables() Tables {
	return Tables{
		EvidenceNames: map[int]string{
			EvidenceManual:           "manual",
			EvidenceCashAdjustment:   "cash_adjustment",
			EvidenceClosingEntry:     "closing_entry",
			EvidenceRetainedEarnings: "retained_earnings_transfer",
			EvidencePLReversal:       "pl_reversal",
			EvidenceWithholdingTax:   "withholding_tax",
			EvidenceTaxInvoice:       "tax_invoice",
			EvidenceZeroRated:        "zero_rated",
			EvidenceCreditCard:       "credit_card",
			EvidenceCashReceipt:      "cash_receipt",
			EvidenceBankAuto:         "bank_auto_journal",
		},
		CategoryBuckets: map[int]Bucket{
			14: BucketRevenue,
			19: BucketSGA,
			20: BucketNonOpIncome,
			21: BucketNonOpExpense,
		},
		InventoryRemap: map[string]string{
			"146": "45101",
			"150": "45501",
			"153": "45001",
			"156": "45201",
			"159": "45301",
		},
		CostOfSalesPrefixes: []string{"450", "451", "452", "453", "455"},
		VATEvidence: map[int]bool{
			EvidenceTaxInvoice:  true,
			EvidenceZeroRated:   true,
			EvidenceCreditCard:  true,
			EvidenceCashReceipt: true,
		},
	}
}

// EvidenceName returns the display name for an evidence-type code, falling
// back to the numeric code for unknown types.
func (t Tables) EvidenceName(code int) string {
	if name, ok := t.EvidenceNames[code]; ok {
		return name
	}
	return "unknown"
}
