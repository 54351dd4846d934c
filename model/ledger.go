package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger is a named container of business records.
type Ledger struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// LedgerMember relates one user to one ledger. The existence of this row
// is the sole authorization signal for reading the ledger's records.
type LedgerMember struct {
	ID         int       `json:"id"`
	LedgerID   int       `json:"ledger_id"`
	UserID     int       `json:"user_id"`
	MemberRole string    `json:"member_role"`
	CreatedAt  time.Time `json:"created_at"`
}

// LedgerRecord is a dated entry belonging to a ledger.
type LedgerRecord struct {
	ID          int             `json:"id"`
	LedgerID    int             `json:"ledger_id"`
	RecordDate  time.Time       `json:"record_date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
	Details     []RecordDetail  `json:"details"`
}

// RecordDetail is an auxiliary line item attached to a ledger record.
type RecordDetail struct {
	ID       int    `json:"id"`
	RecordID int    `json:"record_id"`
	Item     string `json:"item"`
	Value    string `json:"value"`
}
