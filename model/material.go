package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SupplierStatusActive = "active"
	SupplierStatusEnded  = "ended"
)

const (
	StockChangeInbound  = "inbound"
	StockChangeOutbound = "outbound"
)

// Material is a raw material consumed by print runs. Stock levels and
// prices are decimals to keep inventory valuation exact.
type Material struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	Spec          string          `json:"spec"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	SafetyStock   decimal.Decimal `json:"safety_stock"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Supplier is a company materials can be purchased from.
type Supplier struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// MaterialSupplier links a material to a supplier with that supplier's
// quoted unit price. At most one link exists per (material, supplier)
// pair. The name fields are filled in on enriched listings only.
type MaterialSupplier struct {
	ID           int             `json:"id"`
	MaterialID   int             `json:"material_id"`
	SupplierID   int             `json:"supplier_id"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Preferred    bool            `json:"preferred"`
	MaterialName string          `json:"material_name,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
}

// StockLog records one stock movement of a material. Every change to a
// stock level goes through a log row so movements stay traceable.
type StockLog struct {
	ID         int             `json:"id"`
	MaterialID int             `json:"material_id"`
	Delta      decimal.Decimal `json:"delta"`
	ChangeType string          `json:"change_type"`
	Reference  string          `json:"reference"`
	OperatorID int             `json:"operator_id"`
	Note       string          `json:"note"`
	CreatedAt  time.Time       `json:"created_at"`
}

const (
	AlertLevelWarning  = "WARNING"
	AlertLevelCritical = "CRITICAL"
)

// StockAlert flags a material at or below its safety stock. CRITICAL
// means the material is fully out of stock.
type StockAlert struct {
	MaterialID   int             `json:"material_id"`
	MaterialName string          `json:"material_name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	SafetyStock  decimal.Decimal `json:"safety_stock"`
	AlertLevel   string          `json:"alert_level"`
}

// InventoryReport summarizes the state of the whole material inventory.
type InventoryReport struct {
	TotalMaterials  int             `json:"total_materials"`
	TotalValue      decimal.Decimal `json:"total_inventory_value"`
	LowStockItems   int             `json:"low_stock_items"`
	OutOfStockItems int             `json:"out_of_stock_items"`
	Materials       []*Material     `json:"materials"`
}
