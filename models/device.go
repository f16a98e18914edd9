// File: questly/models/device.go
package models

import "time"

type Device struct {
	DeviceID   string    `bson:"deviceId" json:"deviceId"`
	DeviceName string    `bson:"deviceName" json:"deviceName"`
	Platform   string    `bson:"platform" json:"platform"`
	FCMToken   string    `bson:"fcmToken,omitempty" json:"-"`
	LastSeen   time.Time `bson:"lastSeen" json:"lastSeen"`
	Primary    bool      `bson:"primary" json:"primary"`
	TokenHash  string    `bson:"tokenHash" json:"-"`
}

// GuardianApproval holds a short-lived code a guardian must enter to approve
// a gated action (account creation, flagged reward redemption).
type GuardianApproval struct {
	Code      string    `json:"code"`
	LearnerID string    `json:"learnerId"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject"`
	ExpiresAt time.Time `json:"expiresAt"`
}
