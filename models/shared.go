package models

// Role identifies which dashboard view and route group an account is scoped to.
type Role string

const (
	RoleLearner  Role = "learner"
	RoleEducator Role = "educator"
	RoleGuardian Role = "guardian"
	RoleAdmin    Role = "admin"
)

// ValidRole reports whether r is one of the fixed set of user categories.
func ValidRole(r Role) bool {
	switch r {
	case RoleLearner, RoleEducator, RoleGuardian, RoleAdmin:
		return true
	}
	return false
}

// Severity grades activities and notifications for display emphasis.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeveritySuccess  Severity = "success"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Rarity tiers for missions and rewards.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)
