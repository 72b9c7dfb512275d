package domain

// Pricing constants
const (
	DownPaymentRatio = 0.5 // minimum share of the total accepted as down payment
	MinScheduleHours = 1.0 // minimum duration and minimum billed hours per schedule
	DefaultCurrency  = "PHP"
)

// Payment statuses (payment_statuses seed)
const (
	DefaultVerifiedStatusID             int64 = 2 // set when the manager approves the booking
	DefaultAwaitingVerificationStatusID int64 = 6 // set on payments created with a receipt
)

// Receipt storage
const (
	ReceiptsBucket    = "receipts"
	ReceiptPathFormat = "payment_reference_%d.%s" // booking id, file extension
	MaxReceiptSize    = 4 << 20
)

// Listing defaults
const (
	DefaultBookingsPageSize = 10
	DefaultVenuesPageSize   = 9
	MaxPageSize             = 50
	DefaultUpdatesWindowHrs = 24
)

// AllowedPageSizes page sizes offered by the booking tables
var AllowedPageSizes = []uint64{10, 20, 30, 40, 50}

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
