package models

import "time"

// SwapStatus represents the lifecycle state of a swap request.
type SwapStatus string

const (
	// SwapStatusPending is the initial state of every request.
	SwapStatusPending SwapStatus = "pending"
	// SwapStatusAccepted means the provider agreed to the swap.
	SwapStatusAccepted SwapStatus = "accepted"
	// SwapStatusRejected means the provider declined the swap.
	SwapStatusRejected SwapStatus = "rejected"
	// SwapStatusCompleted means a participant confirmed the accepted swap
	// took place. Cancellation is a hard delete, not a status.
	SwapStatusCompleted SwapStatus = "completed"
)

// SwapAction is a provider decision on a pending request.
type SwapAction string

const (
	SwapActionAccept SwapAction = "accept"
	SwapActionReject SwapAction = "reject"
)

// Status returns the status a pending request transitions to.
func (a SwapAction) Status() (SwapStatus, bool) {
	switch a {
	case SwapActionAccept:
		return SwapStatusAccepted, true
	case SwapActionReject:
		return SwapStatusRejected, true
	}
	return "", false
}

// SwapRequest proposes exchanging the requester's offered skill for one of
// the provider's. It references both users and both skills without owning
// them.
type SwapRequest struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	RequesterID      uint       `gorm:"not null;index" json:"requester_id"`
	ProviderID       uint       `gorm:"not null;index" json:"provider_id"`
	OfferedSkillID   uint       `gorm:"not null" json:"offered_skill_id"`
	RequestedSkillID uint       `gorm:"not null" json:"requested_skill_id"`
	Message          string     `json:"message"`
	Status           SwapStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	Requester      User  `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Provider       User  `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	OfferedSkill   Skill `gorm:"foreignKey:OfferedSkillID" json:"offered_skill,omitempty"`
	RequestedSkill Skill `gorm:"foreignKey:RequestedSkillID" json:"requested_skill,omitempty"`
}

// TableName specifies the table name for GORM
func (SwapRequest) TableName() string {
	return "swap_requests"
}

// IsParticipant reports whether userID is the requester or the provider.
func (r *SwapRequest) IsParticipant(userID uint) bool {
	return r.RequesterID == userID || r.ProviderID == userID
}

// OtherParty returns the counterparty of userID in the swap.
func (r *SwapRequest) OtherParty(userID uint) uint {
	if r.RequesterID == userID {
		return r.ProviderID
	}
	return r.RequesterID
}
