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

import (
	"fmt"
	"time"
)

// Journal-type tags carried on a ledger line.
const (
	JournalDebit         = "debit"
	JournalCredit        = "credit"
	JournalCashIn        = "cash_in"
	JournalCashOut       = "cash_out"
	JournalClosingDebit  = "closing_debit"
	JournalClosingCredit = "closing_credit"
)

// LedgerLine is one journal-entry row from the general ledger. It is created
// once by the normalizer and never mutated after preprocessing; the inventory
// remapper produces rewritten copies rather than editing in place.
type LedgerLine struct {
	Date             time.Time `json:"date"`
	AccountCode      string    `json:"account_code"`
	AccountName      string    `json:"account_name"`
	CategoryCode     int       `json:"category_code"`
	Debit            int64     `json:"debit"`
	Credit           int64     `json:"credit"`
	JournalType      string    `json:"journal_type"`
	EvidenceType     int       `json:"evidence_type"`
	CounterpartyName string    `json:"counterparty_name"`
	CounterpartyCode string    `json:"counterparty_code"`
	SlipNo           int64     `json:"slip_no"`

	// Row is the ordinal of the line within its input collection. Together
	// with date and slip number it forms the line's natural key.
	Row int `json:"row"`
}

// Key returns the stable natural key of the line, used by the matching
// engine's claim table.
func (l *LedgerLine) Key() string {
	return fmt.Sprintf("%s:%d:%d", l.DateKey(), l.SlipNo, l.Row)
}

// DateKey returns the accounting date in the platform's YYYYMMDD form.
func (l *LedgerLine) DateKey() string {
	return l.Date.Format("20060102")
}

// Month returns the accounting month, 1-12.
func (l *LedgerLine) Month() int {
	return int(l.Date.Month())
}

// Counterparty returns the line's counterparty identity.
func (l *LedgerLine) Counterparty() Counterparty {
	return Counterparty{Name: l.CounterpartyName, Code: l.CounterpartyCode}
}

// SignedAmount is the line's debit-minus-credit amount. A refund booked as a
// credit against an expense account yields a negative signed amount, which is
// what the matching engine compares card refunds against.
func (l *LedgerLine) SignedAmount() int64 {
	return l.Debit - l.Credit
}

// Net computes the line's contribution under the bucket's sign convention:
// credit minus debit for income buckets, debit minus credit for expense
// buckets. Contra entries with both sides populated net out here; they are
// never split into two records.
func (l *LedgerLine) Net(bucket Bucket) int64 {
	if bucket.IsExpense() {
		return l.Debit - l.Credit
	}
	return l.Credit - l.Debit
}

// GrossAmount is the absolute transaction volume of the line, used for the
// company-type payment-channel shares.
func (l *LedgerLine) GrossAmount() int64 {
	if l.Debit >= l.Credit {
		return l.Debit
	}
	return l.Credit
}

// ClassifiedRecord is the derived P&L view over one ledger line. It is
// recomputed each run and never persisted independently.
type ClassifiedRecord struct {
	Line         *LedgerLine `json:"line"`
	Bucket       Bucket      `json:"bucket"`
	Net          int64       `json:"net"`
	EvidenceType int         `json:"evidence_type"`
}

// IncomeStatementRow is one classified total from the platform's income
// statement, used to cross-validate ledger-derived bucket totals.
type IncomeStatementRow struct {
	AccountCode  string `json:"account_code"`
	AccountName  string `json:"account_name"`
	CategoryCode int    `json:"category_code"`
	Amount       int64  `json:"amount"`
}

// CompanyInfo is the registration metadata for the company under analysis.
type CompanyInfo struct {
	Name           string `json:"name"`
	RegistrationNo string `json:"registration_no"`
	Representative string `json:"representative"`
	BusinessType   string `json:"business_type"`
	BusinessItem   string `json:"business_item"`
	Year           int    `json:"year"`
}

// Input bundles the five normalized record collections for one company-year.
type Input struct {
	Company CompanyInfo
	Ledger  []*LedgerLine
	Income  []IncomeStatementRow
	Cards   []*CardAutoLine
	Slips   []*SlipLine
}
