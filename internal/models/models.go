package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AccountStatusActive      = "active"
	AccountStatusDeactivated = "deactivated"
)

type Employee struct {
	ID            int64     `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Role          Role      `json:"role"`
	AccountStatus string    `json:"account_status"`
	IsDeleted     bool      `json:"is_deleted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Active reports whether the employee may pass the authorization gate at
// all; the module matrix is only consulted for active accounts.
func (e *Employee) Active() bool {
	return !e.IsDeleted && e.AccountStatus == AccountStatusActive
}

// Module codes gate both the seeded matrix rows and the route groups.
const (
	ModulePackages          = "packages"
	ModuleContainers        = "containers"
	ModuleBatches           = "batches"
	ModulePayments          = "payments"
	ModuleMessages          = "messages"
	ModuleEmployees         = "employees"
	ModuleRoleManagement    = "employee_role_management"
	ModuleStatusMaintenance = "status_maintenance"
)

// Module is a named administrative feature area gated by the
// authorization matrix.
type Module struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// ModulePermission is one cell of the authorization matrix. AccessLevel
// zero (or a missing row) means denied; any positive level grants access.
type ModulePermission struct {
	ModuleID    int64 `json:"module_id"`
	Role        Role  `json:"role"`
	AccessLevel int   `json:"access_level"`
}

// Status is one entry of a status taxonomy (packages and containers each
// have their own table with this shape).
type Status struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	Color     string `json:"color"`
}

const (
	TransportModeAir     = "air"
	TransportModeSea     = "sea"
	TransportModeExpress = "express"
)

type Package struct {
	ID                int64           `json:"id"`
	TrackingCode      string          `json:"tracking_code"`
	CourierNumber     string          `json:"courier_number,omitempty"`
	StatusID          int64           `json:"status_id"`
	CustomerID        int64           `json:"customer_id"`
	WeightKg          decimal.Decimal `json:"weight_kg"`
	LengthCm          decimal.Decimal `json:"length_cm"`
	WidthCm           decimal.Decimal `json:"width_cm"`
	HeightCm          decimal.Decimal `json:"height_cm"`
	DeclaredAmount    decimal.Decimal `json:"declared_amount"`
	ShippingPrice     decimal.Decimal `json:"shipping_price"`
	AdditionalCharges decimal.Decimal `json:"additional_charges"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	ContainerID       *int64          `json:"container_id,omitempty"`
	BatchID           *int64          `json:"batch_id,omitempty"`
	PickupLocation    string          `json:"pickup_location,omitempty"`
	InCart            bool            `json:"in_cart"`
	Enabled           bool            `json:"enabled"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	UpdatedBy         *int64          `json:"updated_by,omitempty"`
}

type Container struct {
	ID            int64           `json:"id"`
	Number        string          `json:"number"`
	TransportMode string          `json:"transport_mode"`
	Origin        string          `json:"origin"`
	Destination   string          `json:"destination"`
	DepartureDate *time.Time      `json:"departure_date,omitempty"`
	ArrivalDate   *time.Time      `json:"arrival_date,omitempty"`
	StatusID      int64           `json:"status_id"`
	TotalWeightKg decimal.Decimal `json:"total_weight_kg"`
	PieceCount    int             `json:"piece_count"`
	TotalVolumeM3 decimal.Decimal `json:"total_volume_m3"`
	ManifestPath  string          `json:"manifest_path,omitempty"`
	CustomsPath   string          `json:"customs_path,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	UpdatedBy     *int64          `json:"updated_by,omitempty"`
}

type Batch struct {
	ID         int64      `json:"id"`
	Number     string     `json:"number"`
	Locked     bool       `json:"locked"`
	LockDate   time.Time  `json:"lock_date"`
	UnlockCode string     `json:"-"`
	UnlockedBy *int64     `json:"unlocked_by,omitempty"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// PackageStatusChange is one immutable row of the package history ledger,
// keyed by the package's business identifier.
type PackageStatusChange struct {
	ID           int64     `json:"id"`
	TrackingCode string    `json:"tracking_code"`
	OldStatusID  int64     `json:"old_status_id"`
	NewStatusID  int64     `json:"new_status_id"`
	ChangedBy    int64     `json:"changed_by"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ContainerStatusChange struct {
	ID          int64     `json:"id"`
	ContainerID int64     `json:"container_id"`
	OldStatusID int64     `json:"old_status_id"`
	NewStatusID int64     `json:"new_status_id"`
	ChangedBy   int64     `json:"changed_by"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Payment struct {
	ID           int64           `json:"id"`
	TrackingCode string          `json:"tracking_code"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	Method       string          `json:"method"`
	ProcessorRef string          `json:"processor_ref,omitempty"`
	ReceivedBy   int64           `json:"received_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PackageBalance summarises payments against a package's total price.
type PackageBalance struct {
	TrackingCode string          `json:"tracking_code"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	Outstanding  decimal.Decimal `json:"outstanding"`
}

// RecipientState is one recipient's view of a message. The message row
// stores a map of these keyed by recipient employee id.
type RecipientState struct {
	Read    bool `json:"read"`
	Starred bool `json:"starred"`
	Deleted bool `json:"deleted"`
}

type Message struct {
	ID           uuid.UUID                 `json:"id"`
	Subject      string                    `json:"subject"`
	Body         string                    `json:"body"`
	TrackingCode string                    `json:"tracking_code,omitempty"`
	ContainerID  *int64                    `json:"container_id,omitempty"`
	SenderID     int64                     `json:"sender_id"`
	Recipients   map[string]RecipientState `json:"recipients"`
	CreatedAt    time.Time                 `json:"created_at"`
}
