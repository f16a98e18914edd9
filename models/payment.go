package models

// PurchaseRequest is a guardian buying a coin pack for a linked learner.
type PurchaseRequest struct {
	PackID    string `json:"packId" binding:"required"`
	LearnerID string `json:"learnerId" binding:"required"`
}

// PurchaseIntent is returned so the guardian's app can confirm the payment.
type PurchaseIntent struct {
	InvoiceID    string `json:"invoiceId"`
	ClientSecret string `json:"clientSecret"`
	AmountUSD    int64  `json:"amountUsd"`
	Coins        int64  `json:"coins"`
}
