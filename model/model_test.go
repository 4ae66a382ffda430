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
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

func TestGenerateUUIDWithSuffix(t *testing.T) {
	id := GenerateUUIDWithSuffix("run")
	assert.True(t, strings.HasPrefix(id, "run_"))
	assert.NotEqual(t, id, GenerateUUIDWithSuffix("run"))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "abcmart", NormalizeName("ABC  Mart"))
	assert.Equal(t, "abcmart", NormalizeName(" abc\tmart "))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestCounterpartyMatches(t *testing.T) {
	name := gofakeit.Company()

	// Case and whitespace never separate two identities.
	a := Counterparty{Name: strings.ToUpper(name)}
	b := Counterparty{Name: strings.ToLower(name)}
	assert.True(t, a.Matches(b))

	// A code on both sides decides by itself, even over an identical name.
	a = Counterparty{Name: name, Code: "C001"}
	b = Counterparty{Name: name, Code: "C002"}
	assert.False(t, a.Matches(b))

	a = Counterparty{Code: "C001"}
	b = Counterparty{Code: "C001"}
	assert.True(t, a.Matches(b))

	// With a code on only one side, the name fallback applies.
	a = Counterparty{Name: name, Code: "C001"}
	b = Counterparty{Name: name}
	assert.True(t, a.Matches(b))

	a = Counterparty{RegistrationNo: "123-45-67890"}
	b = Counterparty{RegistrationNo: "123-45-67890"}
	assert.True(t, a.Matches(b))

	assert.False(t, Counterparty{}.Matches(Counterparty{}))
}

func TestLedgerLineAmounts(t *testing.T) {
	line := &LedgerLine{Debit: 100000, Credit: 30000}
	assert.Equal(t, int64(70000), line.SignedAmount())
	assert.Equal(t, int64(100000), line.GrossAmount())

	assert.Equal(t, int64(70000), line.Net(BucketSGA))
	assert.Equal(t, int64(-70000), line.Net(BucketRevenue))

	refund := &LedgerLine{Credit: 50000}
	assert.Equal(t, int64(-50000), refund.SignedAmount())
	assert.Equal(t, int64(50000), refund.GrossAmount())
}

func TestLedgerLineKey(t *testing.T) {
	line := &LedgerLine{Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), SlipNo: 17, Row: 3}
	assert.Equal(t, "20240115:17:3", line.Key())
	assert.Equal(t, 1, line.Month())
}

func TestBucketConventions(t *testing.T) {
	assert.True(t, BucketCostOfSales.IsExpense())
	assert.True(t, BucketSGA.IsExpense())
	assert.True(t, BucketNonOpExpense.IsExpense())
	assert.False(t, BucketRevenue.IsExpense())
	assert.False(t, BucketNonOpIncome.IsExpense())
}

func TestDefaultTables(t *testing.T) {
	tables := DefaultTables()

	assert.Equal(t, "45101", tables.InventoryRemap["146"])
	assert.Equal(t, "45001", tables.InventoryRemap["153"])
	assert.Equal(t, BucketRevenue, tables.CategoryBuckets[14])
	assert.Equal(t, BucketSGA, tables.CategoryBuckets[19])

	assert.True(t, tables.VATEvidence[EvidenceCreditCard])
	assert.False(t, tables.VATEvidence[EvidenceBankAuto])

	assert.Equal(t, "credit_card", tables.EvidenceName(EvidenceCreditCard))
	assert.Equal(t, "unknown", tables.EvidenceName(999))
}

func TestMatchResultMatched(t *testing.T) {
	assert.True(t, (&MatchResult{Status: StatusConfirmable}).Matched())
	assert.True(t, (&MatchResult{Status: StatusConfirmed}).Matched())
	assert.False(t, (&MatchResult{Status: StatusDuplicate}).Matched())
	assert.False(t, (&MatchResult{Status: StatusNotRecommended}).Matched())
}

func TestMonthlyPLZeroFilled(t *testing.T) {
	pl := NewMonthlyPL()
	assert.Len(t, pl, 12)
	for m := 1; m <= 12; m++ {
		for _, b := range PLBuckets {
			v, ok := pl[m][b]
			assert.True(t, ok)
			assert.Zero(t, v)
		}
	}
}
