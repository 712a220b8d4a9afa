package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	GatewayStripe   = "Stripe"
	GatewayBkash    = "Bkash"
	GatewayBank     = "Bank"
	GatewayHandCash = "HandCash"
)

const (
	StatusPending           = "pending"
	StatusCompleted         = "completed"
	StatusFailed            = "failed"
	StatusRefunded          = "refunded"
	StatusPartiallyRefunded = "partially_refunded"
)

// ValidGateway reports whether the gateway is one of the four known values.
func ValidGateway(gateway string) bool {
	switch gateway {
	case GatewayStripe, GatewayBkash, GatewayBank, GatewayHandCash:
		return true
	}
	return false
}

// ValidStatus reports whether the status is one of the five enumerated
// values. There is no transition graph: any valid status may replace any
// other.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded, StatusPartiallyRefunded:
		return true
	}
	return false
}

type Purchase struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User           *User           `gorm:"foreignKey:UserID" json:"-"`
	PaymentGateway string          `gorm:"not null" json:"payment_gateway"`
	Mobile         string          `json:"mobile"`
	Email          string          `json:"email"`
	Address        string          `json:"address"`
	AmountPaid     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount_paid"`
	TransactionID  *string         `json:"transaction_id,omitempty"`
	BkashTrxID     *string         `json:"bkash_trx_id,omitempty"`
	BankReceiptNo  *string         `json:"bank_receipt_no,omitempty"`
	Status         string          `gorm:"not null;default:'pending'" json:"status"`
	PurchasedAt    time.Time       `gorm:"not null" json:"purchased_at"`
	Items          []OrderItem     `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (purchase *Purchase) BeforeCreate(tx *gorm.DB) (err error) {
	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}
	return
}

// CourseSnapshot is the denormalized copy of course fields embedded in an
// order item at purchase time. It is never resolved back to the live Course
// row, so the receipt is immune to later catalog changes.
type CourseSnapshot struct {
	ID       uuid.UUID       `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Duration string          `json:"duration"`
}

func (snapshot CourseSnapshot) Value() (driver.Value, error) {
	return json.Marshal(snapshot)
}

func (snapshot *CourseSnapshot) Scan(value interface{}) error {
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, snapshot)
	case string:
		return json.Unmarshal([]byte(data), snapshot)
	default:
		return fmt.Errorf("unsupported course snapshot type %T", value)
	}
}

type OrderItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_id"`
	CourseData     CourseSnapshot  `gorm:"type:jsonb;not null" json:"course_data"`
	Quantity       int             `gorm:"not null;default:1" json:"quantity"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	CouponCode     *string         `json:"coupon_code,omitempty"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"discount_amount"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (item *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return
}
