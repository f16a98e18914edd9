package models

import "time"

type RegistrationBasicData struct {
	Username      string `json:"username" binding:"required"`
	DisplayName   string `json:"displayName" binding:"required"`
	Email         string `json:"email" binding:"required"`
	Password      string `json:"password" binding:"required"`
	Role          Role   `json:"role" binding:"required"`
	GuardianEmail string `json:"guardianEmail,omitempty"`
}

// RegistrationRequest drives the stepped signup flow. Learner signups pause
// at the approval step until the guardian's code comes back.
type RegistrationRequest struct {
	Step         string                 `json:"step"`
	SessionID    string                 `json:"sessionID,omitempty"`
	ApprovalCode string                 `json:"approvalCode,omitempty"`
	BasicData    *RegistrationBasicData `json:"basicData,omitempty"`
	Subjects     []string               `json:"subjects,omitempty"`
	EmailUpdates bool                   `json:"emailUpdates,omitempty"`
}

type RegistrationSession struct {
	TempID         string                 `json:"tempId" bson:"tempId"`
	BasicData      *RegistrationBasicData `json:"basicData,omitempty" bson:"basicData,omitempty"`
	ApprovalStatus string                 `json:"approvalStatus" bson:"approvalStatus"`
	CreatedAt      time.Time              `json:"createdAt" bson:"createdAt"`
	LastUpdatedAt  time.Time              `json:"lastUpdatedAt" bson:"lastUpdatedAt"`
	Devices        []Device               `json:"devices,omitempty" bson:"devices,omitempty"`
}
