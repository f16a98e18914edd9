package models

import "time"

type Notification struct {
	ID        string         `bson:"id" json:"id"`
	UserID    string         `bson:"userId" json:"userId"`
	Type      string         `bson:"type" json:"type"`
	Title     string         `bson:"title" json:"title"`
	Body      string         `bson:"body" json:"body"`
	Data      map[string]any `bson:"data,omitempty" json:"data,omitempty"`
	Sent      bool           `bson:"sent" json:"sent"`
	Read      bool           `bson:"read" json:"read"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// Toast is a transient banner pushed over the realtime channel. It is never
// persisted; clients dismiss it after AutoDismissMs (0 means sticky until
// dismissed by hand).
type Toast struct {
	ID            string   `json:"id"`
	Severity      Severity `json:"severity"`
	Message       string   `json:"message"`
	AutoDismissMs int      `json:"autoDismissMs"`
}
