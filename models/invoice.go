package models

import "time"

// Invoice records a guardian's coin pack purchase once the payment intent
// succeeds.
type Invoice struct {
	InvoiceID       string    `bson:"invoice_id" json:"invoice_id"`
	GuardianID      string    `bson:"guardian_id" json:"guardian_id"`
	LearnerID       string    `bson:"learner_id" json:"learner_id"`
	PackID          string    `bson:"pack_id" json:"pack_id"`
	Coins           int64     `bson:"coins" json:"coins"`
	AmountUSD       int64     `bson:"amount_usd" json:"amount_usd"` // cents
	PaymentIntentID string    `bson:"payment_intent_id" json:"-"`
	Status          string    `bson:"status" json:"status"` // pending, paid, failed
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}
