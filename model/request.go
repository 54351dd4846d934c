// file: model/request.go

package model

// ProvisionUserRequest defines the payload for the admin account
// create-or-reset operation. It includes validation tags to ensure data
// integrity at the entry point.
type ProvisionUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"required,oneof=admin editor typesetter printer procurement warehouse sales hr"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest defines the payload for the self-service password
// change. The old password is verified before the new one is stored.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// CreateLedgerRequest defines the payload for creating a new ledger.
type CreateLedgerRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// AddMemberRequest defines the payload for granting a user membership on
// a ledger.
type AddMemberRequest struct {
	UserID     int    `json:"user_id" validate:"required,gt=0"`
	MemberRole string `json:"member_role" validate:"omitempty,max=50"`
}

// CreateRecordRequest defines the payload for appending a record to a
// ledger. The date is an ISO calendar date (YYYY-MM-DD); the amount is a
// decimal string to avoid float rounding on financial values.
type CreateRecordRequest struct {
	RecordDate  string              `json:"record_date" validate:"required"`
	Category    string              `json:"category" validate:"required,max=50"`
	Description string              `json:"description" validate:"max=500"`
	Amount      string              `json:"amount" validate:"required"`
	Details     []RecordDetailInput `json:"details" validate:"omitempty,dive"`
}

// RecordDetailInput is one auxiliary line item in a create-record payload.
type RecordDetailInput struct {
	Item  string `json:"item" validate:"required,max=100"`
	Value string `json:"value" validate:"required,max=500"`
}

// CreateEmployeeRequest defines the payload for adding an employee to the
// directory.
type CreateEmployeeRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Position string `json:"position" validate:"required,max=50"`
	Username string `json:"username" validate:"omitempty,min=3,max=50"`
	HiredAt  string `json:"hired_at" validate:"required"`
}

// UpdateEmployeeRequest defines the payload for editing an employee.
// Position changes are synced to any linked user account.
type UpdateEmployeeRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Position string `json:"position" validate:"required,max=50"`
	Status   string `json:"status" validate:"required,oneof=active left"`
}

// CreateBookRequest defines the payload for adding a title to the catalog.
type CreateBookRequest struct {
	Title  string `json:"title" validate:"required,min=1,max=200"`
	Author string `json:"author" validate:"required,min=1,max=100"`
}

// CreateMaterialRequest defines the payload for registering a material.
// Prices are decimal strings to avoid float rounding.
type CreateMaterialRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Unit      string `json:"unit" validate:"omitempty,max=20"`
	Spec      string `json:"spec" validate:"omitempty,max=100"`
	UnitPrice string `json:"unit_price" validate:"omitempty"`
}

// CreateSupplierRequest defines the payload for registering a supplier.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Contact string `json:"contact" validate:"omitempty,max=100"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Status  string `json:"status" validate:"omitempty,oneof=active ended"`
}

// LinkSupplierRequest defines the payload for linking a supplier to a
// material with a quoted unit price.
type LinkSupplierRequest struct {
	SupplierID int    `json:"supplier_id" validate:"required,gt=0"`
	UnitPrice  string `json:"unit_price" validate:"required"`
	Preferred  bool   `json:"preferred"`
}

// SetSafetyStockRequest defines the payload for updating a material's
// safety stock threshold.
type SetSafetyStockRequest struct {
	SafetyStock string `json:"safety_stock" validate:"required"`
}

// SetUnitPriceRequest defines the payload for updating a material's
// standard unit price.
type SetUnitPriceRequest struct {
	UnitPrice string `json:"unit_price" validate:"required"`
}

// AdjustStockRequest defines the payload for a manual stock movement.
// The delta may be negative for outbound movements; the operator is
// taken from the caller's token.
type AdjustStockRequest struct {
	MaterialID int    `json:"material_id" validate:"required,gt=0"`
	Delta      string `json:"delta" validate:"required"`
	ChangeType string `json:"change_type" validate:"omitempty,oneof=inbound outbound"`
	Reference  string `json:"reference" validate:"omitempty,max=100"`
	Note       string `json:"note" validate:"omitempty,max=500"`
}

// CreatePrintingTaskRequest defines the payload for submitting a print
// run. The due date is an ISO calendar date.
type CreatePrintingTaskRequest struct {
	EmployeeID int    `json:"employee_id" validate:"required,gt=0"`
	BookID     int    `json:"book_id" validate:"required,gt=0"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
	DueDate    string `json:"due_date" validate:"required"`
}

// UpdateTaskStatusRequest defines the payload for a task status change.
// Completion is a separate operation because it consumes stock.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

// CreatePurchaseRequest defines the payload for raising a purchase
// against a material-supplier link.
type CreatePurchaseRequest struct {
	TaskID   int    `json:"task_id" validate:"required,gt=0"`
	LinkID   int    `json:"link_id" validate:"required,gt=0"`
	Quantity string `json:"quantity" validate:"required"`
}

// UpdatePurchaseStatusRequest defines the payload for a purchase status
// change. Receiving is a separate operation because it moves stock.
type UpdatePurchaseStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending ordered received cancelled"`
}
