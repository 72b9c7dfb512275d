package domain

import "time"

// PaymentDraft payment chosen in the booking form
type PaymentDraft struct {
	Amount        float64
	PaymentModeID int64
	IsDownPayment bool
}

// Payment persisted payment row, created only for paid venues with a receipt
type Payment struct {
	ID                   int64
	BookingID            int64
	Amount               float64
	CurrencyCode         string
	PaymentModeID        int64
	PaymentStatusID      int64
	IsDownPayment        bool
	ConfirmationStatus   bool
	IsDeleted            bool
	TransactionReference *string
	PaymentDate          time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PaymentReference links a payment to its uploaded receipt
type PaymentReference struct {
	ID          int64
	PaymentID   int64
	ReceiptLink string
}

// PaymentMode e.g. GCash, bank transfer, cash
type PaymentMode struct {
	ID   int64
	Mode string
}

// PaymentSummary payment entry embedded in booking views
type PaymentSummary struct {
	PaymentID            int64   `json:"payment_id"`
	Amount               float64 `json:"amount"`
	PaymentModeID        int64   `json:"payment_mode_id"`
	PaymentDate          string  `json:"payment_date"`
	IsDownPayment        bool    `json:"is_down_payment"`
	ConfirmationStatus   bool    `json:"confirmation_status"`
	TransactionReference *string `json:"transaction_reference"`
	CurrencyCode         string  `json:"currency_code"`
}
