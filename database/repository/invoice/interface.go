package invoiceRepo

import (
	"context"
	"questly/database"
	"questly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice models.Invoice) (string, error)
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	GetByGuardianID(ctx context.Context, guardianID string) ([]models.Invoice, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// MarkPaid flips a pending invoice to paid exactly once; false means it
	// was already settled (or failed).
	MarkPaid(ctx context.Context, id string) (bool, error)
}

type mongoInvoiceRepo struct {
	coll *mongo.Collection
}

// NewMongoInvoiceRepo returns a new InvoiceRepository instance using MongoDB.
func NewMongoInvoiceRepo() InvoiceRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoInvoiceRepo{
		coll: db.Collection("invoices"),
	}
}
