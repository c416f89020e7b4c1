package zvit

import "time"

// Account status values stored in zvit_table.account_status.
const (
	StatusActive  = "Активний"
	StatusPending = "Очікує активацію"
	StatusBlocked = "Заблокований"
	StatusClosed  = "Закритий"
)

// Card status values stored in zvit_table.card_status.
const (
	CardIssuing        = "На випуску"
	CardAtBranch       = "На відділенні"
	CardAtOrganization = "На організації"
	CardActivated      = "Активована"
)

// Documents tracks which papers were received for a record.
// Stored as JSONB in zvit_table.documents.
type Documents struct {
	Contract      bool `json:"contract"`
	Passport      bool `json:"passport"`
	Questionnaire bool `json:"questionnaire"`
}

// Record is one account-opening entry.
type Record struct {
	ID               int64     `json:"id"`
	FIO              string    `json:"fio"`
	IPN              string    `json:"ipn"`
	Organization     string    `json:"organization"`
	DateOpened       string    `json:"date_opened"`
	DateFirstDeposit string    `json:"date_first_deposit"`
	AccountStatus    string    `json:"account_status"`
	CardStatus       string    `json:"card_status"`
	Documents        Documents `json:"documents"`
	Comment          string    `json:"comment"`
	CreatedAt        time.Time `json:"created_at"`
}

// DeriveAccountStatus computes the stored account status. Blocked and closed
// are manual overrides and survive; everything else follows the deposit date:
// a record with a first deposit is active, without one it awaits activation.
func DeriveAccountStatus(current, dateFirstDeposit string) string {
	if current == StatusBlocked || current == StatusClosed {
		return current
	}
	if dateFirstDeposit != "" {
		return StatusActive
	}
	return StatusPending
}

// ImportResult reports one import run. Errors keep sheet order and carry
// 1-based row numbers.
type ImportResult struct {
	Total   int      `json:"total"`
	Success int      `json:"success"`
	Errors  []string `json:"errors"`
}
