// File: questly/models/user.go
package models

import "time"

// User represents any Questly account. Learners, educators, guardians and
// admins share one collection and are distinguished by Role.
type User struct {
	ID            string    `bson:"id" json:"id"`
	Username      string    `bson:"username" json:"username"`
	DisplayName   string    `bson:"displayName" json:"displayName"`
	Email         string    `bson:"email" json:"email"`
	PasswordHash  string    `bson:"passwordHash" json:"-"`
	Role          Role      `bson:"role" json:"role"`
	AvatarID      string    `bson:"avatarId,omitempty" json:"avatarId,omitempty"`
	AvatarURL     string    `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	GuardianEmail string    `bson:"guardianEmail,omitempty" json:"guardianEmail,omitempty"`
	LearnerIDs    []string  `bson:"learnerIds,omitempty" json:"learnerIds,omitempty"`
	ClassroomIDs  []string  `bson:"classroomIds,omitempty" json:"classroomIds,omitempty"`
	Devices       []Device  `bson:"devices,omitempty" json:"devices,omitempty"`
	TokenHash     string    `bson:"tokenHash,omitempty" json:"-"`
	EmailUpdates  bool      `bson:"emailUpdates" json:"emailUpdates"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicView strips auth material and device details for responses served to
// other accounts.
func (u User) PublicView() User {
	u.PasswordHash = ""
	u.TokenHash = ""
	u.Devices = nil
	return u
}

// Classroom groups learners under an educator. Learners join with the code.
type Classroom struct {
	ID         string    `bson:"id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	EducatorID string    `bson:"educatorId" json:"educatorId"`
	JoinCode   string    `bson:"joinCode" json:"joinCode"`
	LearnerIDs []string  `bson:"learnerIds,omitempty" json:"learnerIds,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
