package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusOrdered   = "ordered"
	PurchaseStatusReceived  = "received"
	PurchaseStatusCancelled = "cancelled"
)

// Purchase is one material order raised for a printing task, priced
// against a material-supplier link. The name fields are filled in on
// enriched listings only.
type Purchase struct {
	ID           int             `json:"id"`
	TaskID       int             `json:"task_id"`
	LinkID       int             `json:"link_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Status       string          `json:"status"`
	ReceiptDate  *time.Time      `json:"receipt_date,omitempty"`
	PurchaseDate time.Time       `json:"purchase_date"`
	MaterialName string          `json:"material_name,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}
