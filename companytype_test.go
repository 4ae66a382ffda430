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
	"testing"

	"github.com/mkyung/handover/model"
	"github.com/stretchr/testify/assert"
)

func volumeLine(evidence int, amount int64) *model.LedgerLine {
	return &model.LedgerLine{Date: day("20240601"), EvidenceType: evidence, Debit: amount}
}

func TestClassifyCompanyTypeBankAuto(t *testing.T) {
	engine := newTestEngine()
	company := model.CompanyInfo{Name: "example", Year: 2024}

	ledger := []*model.LedgerLine{
		volumeLine(model.EvidenceBankAuto, 600000),
		volumeLine(model.EvidenceCreditCard, 300000),
		volumeLine(model.EvidenceManual, 100000),
	}

	profile := engine.ClassifyCompanyType(company, ledger)

	assert.Equal(t, CompanyTypeBankAuto, profile.Type)
	assert.InDelta(t, 0.6, profile.BankShare, 0.001)
	assert.InDelta(t, 0.3, profile.CardShare, 0.001)
	assert.Equal(t, int64(1000000), profile.TotalVolume)
}

func TestClassifyCompanyTypeThresholdOrder(t *testing.T) {
	engine := newTestEngine()
	company := model.CompanyInfo{Name: "example", Year: 2024}

	// Bank exactly at its threshold wins even when card is higher relative
	// to its own threshold.
	ledger := []*model.LedgerLine{
		volumeLine(model.EvidenceBankAuto, 500000),
		volumeLine(model.EvidenceCreditCard, 400000),
		volumeLine(model.EvidenceManual, 100000),
	}

	profile := engine.ClassifyCompanyType(company, ledger)
	assert.Equal(t, CompanyTypeBankAuto, profile.Type)
}

func TestClassifyCompanyTypeCreditCard(t *testing.T) {
	engine := newTestEngine()

	ledger := []*model.LedgerLine{
		volumeLine(model.EvidenceCreditCard, 400000),
		volumeLine(model.EvidenceBankAuto, 300000),
		volumeLine(model.EvidenceManual, 300000),
	}

	profile := engine.ClassifyCompanyType(model.CompanyInfo{}, ledger)
	assert.Equal(t, CompanyTypeCreditCard, profile.Type)
}

func TestClassifyCompanyTypeTaxInvoice(t *testing.T) {
	engine := newTestEngine()

	ledger := []*model.LedgerLine{
		volumeLine(model.EvidenceTaxInvoice, 350000),
		volumeLine(model.EvidenceBankAuto, 300000),
		volumeLine(model.EvidenceManual, 350000),
	}

	profile := engine.ClassifyCompanyType(model.CompanyInfo{}, ledger)
	assert.Equal(t, CompanyTypeTaxInvoice, profile.Type)
}

func TestClassifyCompanyTypeMixed(t *testing.T) {
	engine := newTestEngine()

	ledger := []*model.LedgerLine{
		volumeLine(model.EvidenceBankAuto, 300000),
		volumeLine(model.EvidenceCreditCard, 300000),
		volumeLine(model.EvidenceTaxInvoice, 200000),
		volumeLine(model.EvidenceManual, 200000),
	}

	profile := engine.ClassifyCompanyType(model.CompanyInfo{}, ledger)
	assert.Equal(t, CompanyTypeMixed, profile.Type)
}

func TestClassifyCompanyTypeEmptyLedger(t *testing.T) {
	engine := newTestEngine()

	profile := engine.ClassifyCompanyType(model.CompanyInfo{Name: "example"}, nil)

	assert.Equal(t, CompanyTypeMixed, profile.Type)
	assert.Zero(t, profile.TotalVolume)
	assert.Zero(t, profile.BankShare)
}
