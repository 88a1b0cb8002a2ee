package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	SourceWebsite     = "website"
	SourceFacebookAds = "facebook_ads"
	SourceGoogleAds   = "google_ads"
	SourceReferral    = "referral"
	SourceEvents      = "events"
	SourceOther       = "other"
)

const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusLost      = "lost"
	StatusWon       = "won"
)

// LeadSources lists every accepted value of Lead.Source
var LeadSources = []string{SourceWebsite, SourceFacebookAds, SourceGoogleAds, SourceReferral, SourceEvents, SourceOther}

// LeadStatuses lists every accepted value of Lead.Status
var LeadStatuses = []string{StatusNew, StatusContacted, StatusQualified, StatusLost, StatusWon}

// Lead is a prospect record owned by exactly one user
type Lead struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Company        string     `json:"company"`
	City           string     `json:"city"`
	State          string     `json:"state"`
	Source         string     `json:"source"`
	Status         string     `json:"status"`
	Score          int        `json:"score"`
	LeadValue      float64    `json:"lead_value"`
	LastActivityAt *time.Time `json:"last_activity_at"`
	IsQualified    bool       `json:"is_qualified"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CreateLeadRequest is used for creating a new lead. The owner is never read from the body.
type CreateLeadRequest struct {
	FirstName      string     `json:"first_name" binding:"max=100"`
	LastName       string     `json:"last_name" binding:"max=100"`
	Email          string     `json:"email" binding:"required,email"`
	Phone          string     `json:"phone" binding:"max=50"`
	Company        string     `json:"company" binding:"max=200"`
	City           string     `json:"city" binding:"max=100"`
	State          string     `json:"state" binding:"max=100"`
	Source         string     `json:"source" binding:"omitempty,oneof=website facebook_ads google_ads referral events other"`
	Status         string     `json:"status" binding:"omitempty,oneof=new contacted qualified lost won"`
	Score          *int       `json:"score" binding:"omitempty,min=0,max=100"`
	LeadValue      *float64   `json:"lead_value" binding:"omitempty,min=0"`
	LastActivityAt *time.Time `json:"last_activity_at"`
	IsQualified    *bool      `json:"is_qualified"`
}

// UpdateLeadRequest carries a partial update; nil fields are left untouched
type UpdateLeadRequest struct {
	FirstName      *string    `json:"first_name,omitempty" binding:"omitempty,max=100"`
	LastName       *string    `json:"last_name,omitempty" binding:"omitempty,max=100"`
	Email          *string    `json:"email,omitempty" binding:"omitempty,email"`
	Phone          *string    `json:"phone,omitempty" binding:"omitempty,max=50"`
	Company        *string    `json:"company,omitempty" binding:"omitempty,max=200"`
	City           *string    `json:"city,omitempty" binding:"omitempty,max=100"`
	State          *string    `json:"state,omitempty" binding:"omitempty,max=100"`
	Source         *string    `json:"source,omitempty" binding:"omitempty,oneof=website facebook_ads google_ads referral events other"`
	Status         *string    `json:"status,omitempty" binding:"omitempty,oneof=new contacted qualified lost won"`
	Score          *int       `json:"score,omitempty" binding:"omitempty,min=0,max=100"`
	LeadValue      *float64   `json:"lead_value,omitempty" binding:"omitempty,min=0"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
	IsQualified    *bool      `json:"is_qualified,omitempty"`
}

// LeadPage is one page of a filtered lead listing
type LeadPage struct {
	Data       []Lead `json:"data"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Total      int64  `json:"total"`
	TotalPages int64  `json:"totalPages"`
}
