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

import "github.com/mkyung/handover/model"

// Company bookkeeping-pattern labels.
const (
	CompanyTypeBankAuto   = "bank_auto_transfer"
	CompanyTypeCreditCard = "credit_card"
	CompanyTypeTaxInvoice = "tax_invoice"
	CompanyTypeMixed      = "mixed"
)

// Threshold order matters: the first rule that fires wins.
const (
	bankShareThreshold = 0.50
	cardShareThreshold = 0.35
	taxShareThreshold  = 0.30
)

// ClassifyCompanyType labels the company's dominant bookkeeping pattern from
// the payment-channel shares of total transaction volume over the year.
func (h *Handover) ClassifyCompanyType(company model.CompanyInfo, ledger []*model.LedgerLine) model.CompanyProfile {
	var total, bank, card, tax int64
	for _, line := range ledger {
		amount := line.GrossAmount()
		total += amount
		switch line.EvidenceType {
		case model.EvidenceBankAuto:
			bank += amount
		case model.EvidenceCreditCard:
			card += amount
		case model.EvidenceTaxInvoice:
			tax += amount
		}
	}

	profile := model.CompanyProfile{
		Company:     company,
		Type:        CompanyTypeMixed,
		TotalVolume: total,
	}
	if total == 0 {
		return profile
	}
	profile.BankShare = float64(bank) / float64(total)
	profile.CardShare = float64(card) / float64(total)
	profile.TaxInvoiceShare = float64(tax) / float64(total)

	switch {
	case profile.BankShare >= bankShareThreshold:
		profile.Type = CompanyTypeBankAuto
	case profile.CardShare >= cardShareThreshold:
		profile.Type = CompanyTypeCreditCard
	case profile.TaxInvoiceShare >= taxShareThreshold:
		profile.Type = CompanyTypeTaxInvoice
	}
	return profile
}
