package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
)

// Payment is an immutable record of a requested transfer from payer to payee.
type Payment struct {
	PaymentID   string        `json:"paymentId" gorm:"primaryKey;type:varchar(36)"`
	Status      PaymentStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	Amount      float64       `json:"amount" gorm:"not null"`
	Currency    string        `json:"currency" gorm:"type:varchar(16);not null"`
	Description *string       `json:"description" gorm:"type:text"`
	PayerID     string        `json:"payerId" gorm:"type:varchar(255);index;not null"`
	PayeeID     string        `json:"payeeId" gorm:"type:varchar(255);index;not null"`
	CreatedAt   time.Time     `json:"createdAt" gorm:"precision:6;autoCreateTime:false"`
}
