package models

// PaymentRecord is one fee payment. PaymentID follows the legacy
// "P" + zero-padded sequence format.
type PaymentRecord struct {
	PaymentID   string  `json:"paymentId"`
	StudentID   string  `json:"studentId"`
	ParentPhone string  `json:"parentPhone"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Mode        string  `json:"mode"`
	Note        string  `json:"note"`
}

// PaymentReceipt is returned after a payment is recorded.
type PaymentReceipt struct {
	Payment    PaymentRecord `json:"payment"`
	NewBalance float64       `json:"newBalance"`
}
