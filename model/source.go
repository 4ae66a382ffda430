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

// MatchStatus is the reconciliation outcome written back onto a subsidiary
// feed record.
type MatchStatus string

const (
	StatusConfirmable    MatchStatus = "confirmable"
	StatusConfirmed      MatchStatus = "confirmed"
	StatusExcluded       MatchStatus = "excluded"
	StatusDuplicate      MatchStatus = "duplicate"
	StatusNotRecommended MatchStatus = "not_recommended"
	StatusDeleted        MatchStatus = "deleted"
)

// SourceRecord is the shared matching view over the two subsidiary feeds
// (credit-card auto journal and purchase/sales slips). The feeds differ in
// fields but match the same way.
type SourceRecord interface {
	RecordID() string
	RecordDate() time.Time
	RecordCounterparty() Counterparty
	// RecordAmount is signed; a negative total denotes a refund and must
	// match a negative ledger amount.
	RecordAmount() int64
	// RefNumber is the record's reference number used for tie-breaking, or
	// zero when absent.
	RefNumber() int64
	Status() MatchStatus
	SetStatus(MatchStatus)
}

// CardAutoLine is one credit-card auto-generated journal entry. Only the
// matching engine mutates its status; aggregation reads it as-is.
type CardAutoLine struct {
	Date           time.Time   `json:"date"`
	State          MatchStatus `json:"status"`
	DebitAccount   string      `json:"debit_account"`
	CreditAccount  string      `json:"credit_account"`
	Name           string      `json:"counterparty_name"`
	RegistrationNo string      `json:"registration_no"`
	Total          int64       `json:"total"`
	Supply         int64       `json:"supply"`
	VAT            int64       `json:"vat"`
	RefNo          int64       `json:"ref_no"`
	DedupChecked   bool        `json:"dedup_checked"`
	ManualReview   bool        `json:"manual_review"`
	Row            int         `json:"row"`
}

func (c *CardAutoLine) RecordID() string { return fmt.Sprintf("card:%s:%d", c.Date.Format("20060102"), c.Row) }
func (c *CardAutoLine) RecordDate() time.Time { return c.Date }
func (c *CardAutoLine) RecordAmount() int64 { return c.Total }
func (c *CardAutoLine) RefNumber() int64 { return c.RefNo }
func (c *CardAutoLine) Status() MatchStatus { return c.State }
func (c *CardAutoLine) SetStatus(s MatchStatus) { c.State = s }
func (c *CardAutoLine) RecordCounterparty() Counterparty {
	return Counterparty{Name: c.Name, RegistrationNo: c.RegistrationNo}
}

// SlipLine is one purchase or sales tax-invoice slip. The slip number is a
// natural key within its date.
type SlipLine struct {
	Date           time.Time   `json:"date"`
	SlipNo         int64       `json:"slip_no"`
	Sale           bool        `json:"sale"`
	TypeCode       string      `json:"type_code"`
	Name           string      `json:"counterparty_name"`
	RegistrationNo string      `json:"registration_no"`
	Supply         int64       `json:"supply"`
	VAT            int64       `json:"vat"`
	Total          int64       `json:"total"`
	ManualEntry    bool        `json:"manual_entry"`
	State          MatchStatus `json:"status"`
	Row            int         `json:"row"`
}

func (s *SlipLine) RecordID() string { return fmt.Sprintf("slip:%s:%d", s.Date.Format("20060102"), s.SlipNo) }
func (s *SlipLine) RecordDate() time.Time { return s.Date }
func (s *SlipLine) RecordAmount() int64 { return s.Total }
func (s *SlipLine) RefNumber() int64 { return s.SlipNo }
func (s *SlipLine) Status() MatchStatus { return s.State }
func (s *SlipLine) SetStatus(m MatchStatus) { s.State = m }
func (s *SlipLine) RecordCounterparty() Counterparty {
	return Counterparty{Name: s.Name, RegistrationNo: s.RegistrationNo}
}

// MatchResult pairs a source record with zero or one ledger line and carries
// the terminal status plus the tie-break reason that produced it.
type MatchResult struct {
	MatchID   string      `json:"match_id"`
	RunID     string      `json:"run_id,omitempty"`
	SourceID  string      `json:"source_id"`
	LedgerKey string      `json:"ledger_key,omitempty"`
	Amount    int64       `json:"amount"`
	Date      time.Time   `json:"date"`
	Status    MatchStatus `json:"status"`
	Reason    string      `json:"reason,omitempty"`
	// NearMiss names the closest same-date counterparty when no candidate
	// was found. Manual-review hint only; never affects assignment.
	NearMiss string `json:"near_miss,omitempty"`
}

// Matched reports whether the result claims a ledger line.
func (m *MatchResult) Matched() bool {
	return m.Status == StatusConfirmable || m.Status == StatusConfirmed
}
