package invoiceRepo

import (
	"context"
	"errors"
	"questly/models"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new invoice and returns its ID.
func (r *mongoInvoiceRepo) Create(ctx context.Context, invoice models.Invoice) (string, error) {
	if invoice.InvoiceID == "" {
		invoice.InvoiceID = uuid.New().String()
	}
	invoice.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, invoice)
	if err != nil {
		return "", err
	}
	return invoice.InvoiceID, nil
}

// GetByID returns an invoice by its ID.
func (r *mongoInvoiceRepo) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.coll.FindOne(ctx, bson.M{"invoice_id": id}).Decode(&invoice)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GetByGuardianID fetches all invoices raised by a guardian, newest first.
func (r *mongoInvoiceRepo) GetByGuardianID(ctx context.Context, guardianID string) ([]models.Invoice, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"guardian_id": guardianID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var invoices []models.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// MarkPaid transitions pending -> paid with a guarded filter so a retried
// confirmation cannot credit the wallet twice.
func (r *mongoInvoiceRepo) MarkPaid(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"invoice_id": id, "status": "pending"},
		bson.M{"$set": bson.M{"status": "paid"}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// UpdateStatus moves an invoice through its lifecycle.
func (r *mongoInvoiceRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"invoice_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("invoice not found")
	}
	return nil
}
