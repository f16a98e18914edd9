// File: questly/services/billing/interface.go
package billing

import (
	"context"

	"questly/config"
	invoiceRepo "questly/database/repository/invoice"
	userRepo "questly/database/repository/user"
	"questly/models"
	"questly/services/notification"
	"questly/services/progression"
)

// BillingService sells coin packs to guardians. A purchase is a Stripe
// PaymentIntent tied to an invoice; coins land in the learner's wallet only
// after the intent has actually succeeded.
type BillingService interface {
	// Packs lists the purchasable coin packs.
	Packs() []config.CoinPack
	// CreatePurchaseIntent opens a pending invoice and a Stripe
	// PaymentIntent for the pack.
	CreatePurchaseIntent(ctx context.Context, guardianID string, req models.PurchaseRequest) (*models.PurchaseIntent, error)
	// ConfirmPurchase verifies the intent with Stripe and credits the
	// learner's wallet exactly once.
	ConfirmPurchase(ctx context.Context, guardianID, invoiceID string) (*models.Invoice, error)
	Invoices(ctx context.Context, guardianID string) ([]models.Invoice, error)
}

// DefaultBillingService is the production implementation.
type DefaultBillingService struct {
	Repo        invoiceRepo.InvoiceRepository
	Users       userRepo.UserRepository
	Progression progression.ProgressionService
	Notifier    notification.NotificationService
}
