package handover

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mkyung/handover/model"
	"github.com/sirupsen/logrus"
)

// flexInt64 accepts the three shapes the platform serializes amounts in:
// JSON numbers, float-formatted numbers, and numeric strings.
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexInt64(int64(v))
	return nil
}

// parseDate reads the platform's YYYYMMDD accounting-date format.
func parseDate(s string) (time.Time, error) {
	return time.Parse("20060102", strings.TrimSpace(s))
}

type rawLedgerLine struct {
	Date             string     `json:"date"`
	AccountCode      string     `json:"account_code"`
	AccountName      string     `json:"account_name"`
	CategoryCode     flexInt64  `json:"category_code"`
	Debit            *flexInt64 `json:"debit"`
	Credit           *flexInt64 `json:"credit"`
	JournalType      string     `json:"journal_type"`
	EvidenceType     flexInt64  `json:"evidence_type"`
	CounterpartyName string     `json:"counterparty_name"`
	CounterpartyCode string     `json:"counterparty_code"`
	SlipNo           flexInt64  `json:"slip_no"`
}

type rawCardLine struct {
	Date           string     `json:"date"`
	Status         string     `json:"status"`
	DebitAccount   string     `json:"debit_account"`
	CreditAccount  string     `json:"credit_account"`
	Counterparty   string     `json:"counterparty_name"`
	RegistrationNo string     `json:"registration_no"`
	Total          *flexInt64 `json:"total"`
	Supply         flexInt64  `json:"supply"`
	VAT            flexInt64  `json:"vat"`
	RefNo          flexInt64  `json:"ref_no"`
	DedupChecked   bool       `json:"dedup_checked"`
}

type rawSlipLine struct {
	Date           string     `json:"date"`
	SlipNo         flexInt64  `json:"slip_no"`
	Kind           string     `json:"kind"`
	TypeCode       string     `json:"type_code"`
	Counterparty   string     `json:"counterparty_name"`
	RegistrationNo string     `json:"registration_no"`
	Supply         flexInt64  `json:"supply"`
	VAT            flexInt64  `json:"vat"`
	Total          *flexInt64 `json:"total"`
	InputSource    string     `json:"input_source"`
}

type rawIncomeRow struct {
	AccountCode  string    `json:"account_code"`
	AccountName  string    `json:"account_name"`
	CategoryCode flexInt64 `json:"category_code"`
	Amount       flexInt64 `json:"amount"`
}

// NormalizeLedger parses the raw general-ledger collection into canonical
// ledger lines. Rows missing a date or both amounts are malformed: they are
// excluded with the reason recorded, and the run continues. An unparseable
// collection is fatal.
func NormalizeLedger(data []byte, audit *model.AuditTrail) ([]*model.LedgerLine, error) {
	var raw []rawLedgerLine
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cannot parse ledger collection: %w", err)
	}

	lines := make([]*model.LedgerLine, 0, len(raw))
	for i, row := range raw {
		key := fmt.Sprintf("ledger:%d", i)
		date, err := parseDate(row.Date)
		if err != nil {
			audit.Add(model.AuditMalformedRecord, key, "missing or invalid date")
			continue
		}
		if row.Debit == nil && row.Credit == nil {
			audit.Add(model.AuditMalformedRecord, key, "missing amount")
			continue
		}
		line := &model.LedgerLine{
			Date:             date,
			AccountCode:      strings.TrimSpace(row.AccountCode),
			AccountName:      strings.TrimSpace(row.AccountName),
			CategoryCode:     int(row.CategoryCode),
			JournalType:      row.JournalType,
			EvidenceType:     int(row.EvidenceType),
			CounterpartyName: strings.TrimSpace(row.CounterpartyName),
			CounterpartyCode: strings.TrimSpace(row.CounterpartyCode),
			SlipNo:           int64(row.SlipNo),
			Row:              i,
		}
		if row.Debit != nil {
			line.Debit = int64(*row.Debit)
		}
		if row.Credit != nil {
			line.Credit = int64(*row.Credit)
		}
		lines = append(lines, line)
	}
	logrus.Infof("normalized %d of %d ledger rows", len(lines), len(raw))
	return lines, nil
}

// NormalizeCards parses the credit-card auto-journal collection.
func NormalizeCards(data []byte, audit *model.AuditTrail) ([]*model.CardAutoLine, error) {
	var raw []rawCardLine
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cannot parse card collection: %w", err)
	}

	cards := make([]*model.CardAutoLine, 0, len(raw))
	for i, row := range raw {
		key := fmt.Sprintf("card:%d", i)
		date, err := parseDate(row.Date)
		if err != nil {
			audit.Add(model.AuditMalformedRecord, key, "missing or invalid date")
			continue
		}
		if row.Total == nil {
			audit.Add(model.AuditMalformedRecord, key, "missing total amount")
			continue
		}
		cards = append(cards, &model.CardAutoLine{
			Date:           date,
			State:          statusFromRaw(row.Status),
			DebitAccount:   strings.TrimSpace(row.DebitAccount),
			CreditAccount:  strings.TrimSpace(row.CreditAccount),
			Name:           strings.TrimSpace(row.Counterparty),
			RegistrationNo: strings.TrimSpace(row.RegistrationNo),
			Total:          int64(*row.Total),
			Supply:         int64(row.Supply),
			VAT:            int64(row.VAT),
			RefNo:          int64(row.RefNo),
			DedupChecked:   row.DedupChecked,
			Row:            i,
		})
	}
	return cards, nil
}

// NormalizeSlips parses the purchase/sales tax-invoice slip collection.
func NormalizeSlips(data []byte, audit *model.AuditTrail) ([]*model.SlipLine, error) {
	var raw []rawSlipLine
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cannot parse slip collection: %w", err)
	}

	slips := make([]*model.SlipLine, 0, len(raw))
	for i, row := range raw {
		key := fmt.Sprintf("slip:%d", i)
		date, err := parseDate(row.Date)
		if err != nil {
			audit.Add(model.AuditMalformedRecord, key, "missing or invalid date")
			continue
		}
		if row.Total == nil {
			audit.Add(model.AuditMalformedRecord, key, "missing total amount")
			continue
		}
		slips = append(slips, &model.SlipLine{
			Date:           date,
			SlipNo:         int64(row.SlipNo),
			Sale:           strings.EqualFold(row.Kind, "sale"),
			TypeCode:       row.TypeCode,
			Name:           strings.TrimSpace(row.Counterparty),
			RegistrationNo: strings.TrimSpace(row.RegistrationNo),
			Supply:         int64(row.Supply),
			VAT:            int64(row.VAT),
			Total:          int64(*row.Total),
			ManualEntry:    strings.EqualFold(row.InputSource, "manual"),
			State:          model.StatusConfirmable,
			Row:            i,
		})
	}
	return slips, nil
}

// NormalizeIncome parses the income-statement collection.
func NormalizeIncome(data []byte) ([]model.IncomeStatementRow, error) {
	var raw []rawIncomeRow
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cannot parse income statement: %w", err)
	}

	rows := make([]model.IncomeStatementRow, 0, len(raw))
	for _, row := range raw {
		rows = append(rows, model.IncomeStatementRow{
			AccountCode:  strings.TrimSpace(row.AccountCode),
			AccountName:  strings.TrimSpace(row.AccountName),
			CategoryCode: int(row.CategoryCode),
			Amount:       int64(row.Amount),
		})
	}
	return rows, nil
}

// NormalizeCompany parses the company registration metadata.
func NormalizeCompany(data []byte) (model.CompanyInfo, error) {
	var info model.CompanyInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return model.CompanyInfo{}, fmt.Errorf("cannot parse company metadata: %w", err)
	}
	return info, nil
}

// statusFromRaw maps the platform's status tags onto the match-status
// vocabulary. Unknown and empty tags start as confirmable.
func statusFromRaw(s string) model.MatchStatus {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")) {
	case "confirmed":
		return model.StatusConfirmed
	case "excluded":
		return model.StatusExcluded
	case "duplicate":
		return model.StatusDuplicate
	case "not_recommended":
		return model.StatusNotRecommended
	case "deleted":
		return model.StatusDeleted
	default:
		return model.StatusConfirmable
	}
}
