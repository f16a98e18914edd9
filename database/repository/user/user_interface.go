package userRepo

import (
	"questly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(email string) (*models.User, error)
	// GetByUsername retrieves a user by its username.
	GetByUsername(username string) (*models.User, error)
	// GetManyByIDs retrieves the users whose IDs are listed.
	GetManyByIDs(ids []string) ([]models.User, error)
	// GetByRole retrieves all users holding the given role.
	GetByRole(role models.Role) ([]models.User, error)
	// CountByRole counts users holding the given role.
	CountByRole(role models.Role) (int64, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// LinkLearner attaches a learner to a guardian's account.
	LinkLearner(guardianID, learnerID string) error
	// UpdateDevices replaces the stored device list for a user.
	UpdateDevices(id string, devices []models.Device) error
	// SetTokenHash stores the hash of the active session token.
	SetTokenHash(id, tokenHash string) error
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	// GetByEmailWithProjection retrieves a user by its email with a projection.
	GetByEmailWithProjection(email string, projection bson.M) (*models.User, error)
}
