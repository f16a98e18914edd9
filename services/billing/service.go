// File: questly/services/billing/service.go
package billing

import (
	"context"
	"fmt"
	"time"

	"questly/config"
	"questly/models"
	"questly/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

type UnknownPackError struct {
	PackID string
}

func (e UnknownPackError) Error() string {
	return fmt.Sprintf("unknown coin pack %q", e.PackID)
}

type NotLinkedError struct {
	LearnerID string
}

func (e NotLinkedError) Error() string {
	return fmt.Sprintf("learner %s is not linked to this guardian", e.LearnerID)
}

func (s *DefaultBillingService) Packs() []config.CoinPack {
	return config.CoinPacks
}

func (s *DefaultBillingService) CreatePurchaseIntent(ctx context.Context, guardianID string, req models.PurchaseRequest) (*models.PurchaseIntent, error) {
	pack, ok := config.FindCoinPack(req.PackID)
	if !ok {
		return nil, UnknownPackError{PackID: req.PackID}
	}
	if err := s.requireLinked(guardianID, req.LearnerID); err != nil {
		return nil, err
	}

	invoiceID := uuid.New().String()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(pack.AmountUSD),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("invoice_id", invoiceID)
	params.AddMetadata("pack_id", pack.ID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	invoice := models.Invoice{
		InvoiceID:       invoiceID,
		GuardianID:      guardianID,
		LearnerID:       req.LearnerID,
		PackID:          pack.ID,
		Coins:           pack.Coins,
		AmountUSD:       pack.AmountUSD,
		PaymentIntentID: pi.ID,
		Status:          "pending",
		CreatedAt:       time.Now(),
	}
	if _, err := s.Repo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to store invoice: %w", err)
	}

	return &models.PurchaseIntent{
		InvoiceID:    invoiceID,
		ClientSecret: pi.ClientSecret,
		AmountUSD:    pack.AmountUSD,
		Coins:        pack.Coins,
	}, nil
}

// ConfirmPurchase settles the invoice after the guardian's app reports the
// payment done. Stripe is the source of truth; the guarded status flip keeps
// a retried confirmation from crediting twice.
func (s *DefaultBillingService) ConfirmPurchase(ctx context.Context, guardianID, invoiceID string) (*models.Invoice, error) {
	invoice, err := s.Repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoice %s: %w", invoiceID, err)
	}
	if invoice.GuardianID != guardianID {
		return nil, fmt.Errorf("invoice %s does not belong to this guardian", invoiceID)
	}
	if invoice.Status == "paid" {
		return invoice, nil
	}

	pi, err := paymentintent.Get(invoice.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to verify payment intent: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("payment not completed: intent is %s", pi.Status)
	}

	settled, err := s.Repo.MarkPaid(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to settle invoice: %w", err)
	}
	if settled {
		if err := s.Progression.CreditCoins(ctx, invoice.LearnerID, invoice.Coins); err != nil {
			// The invoice is marked paid; a failed credit must be visible.
			utils.GetLogger().Error("paid invoice could not credit wallet",
				zap.String("invoiceID", invoiceID),
				zap.String("learnerID", invoice.LearnerID),
				zap.Error(err))
			return nil, fmt.Errorf("payment settled but wallet credit failed: %w", err)
		}
		s.notifyPurchase(ctx, invoice)
	}

	invoice.Status = "paid"
	return invoice, nil
}

func (s *DefaultBillingService) notifyPurchase(ctx context.Context, invoice *models.Invoice) {
	body := fmt.Sprintf("%d coins were added to your wallet. Happy questing!", invoice.Coins)
	if err := s.Notifier.Notify(ctx, invoice.LearnerID, "coins_purchased", "Coins added", body,
		map[string]string{"invoiceId": invoice.InvoiceID}); err != nil {
		utils.GetLogger().Warn("purchase notification failed",
			zap.String("invoiceID", invoice.InvoiceID), zap.Error(err))
	}
}

func (s *DefaultBillingService) Invoices(ctx context.Context, guardianID string) ([]models.Invoice, error) {
	invoices, err := s.Repo.GetByGuardianID(ctx, guardianID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	return invoices, nil
}

func (s *DefaultBillingService) requireLinked(guardianID, learnerID string) error {
	guardian, err := s.Users.GetByID(guardianID)
	if err != nil {
		return fmt.Errorf("failed to fetch guardian account: %w", err)
	}
	for _, id := range guardian.LearnerIDs {
		if id == learnerID {
			return nil
		}
	}
	return NotLinkedError{LearnerID: learnerID}
}
