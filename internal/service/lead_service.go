package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"lead_tracker/internal/filter"
	"lead_tracker/internal/model"
	"lead_tracker/internal/repository"

	"github.com/google/uuid"
)

// ErrLeadNotFound covers both a missing lead and a lead owned by someone else
var ErrLeadNotFound = errors.New("lead not found")

// LeadService defines owner-scoped operations for leads
type LeadService interface {
	CreateLead(ctx context.Context, ownerID uuid.UUID, req model.CreateLeadRequest) (*model.Lead, error)
	ListLeads(ctx context.Context, ownerID uuid.UUID, params url.Values) (*model.LeadPage, error)
	GetLead(ctx context.Context, ownerID, leadID uuid.UUID) (*model.Lead, error)
	UpdateLead(ctx context.Context, ownerID, leadID uuid.UUID, req model.UpdateLeadRequest) (*model.Lead, error)
	DeleteLead(ctx context.Context, ownerID, leadID uuid.UUID) error
}

type leadService struct {
	repo repository.LeadRepository
	now  func() time.Time
}

// NewLeadService creates a new LeadService
func NewLeadService(repo repository.LeadRepository) LeadService {
	return &leadService{repo: repo, now: time.Now}
}

func (s *leadService) CreateLead(ctx context.Context, ownerID uuid.UUID, req model.CreateLeadRequest) (*model.Lead, error) {
	now := s.now().UTC()
	lead := &model.Lead{
		ID:             uuid.New(),
		UserID:         ownerID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Company:        req.Company,
		City:           req.City,
		State:          req.State,
		Source:         req.Source,
		Status:         req.Status,
		LastActivityAt: req.LastActivityAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if lead.Source == "" {
		lead.Source = model.SourceOther
	}
	if lead.Status == "" {
		lead.Status = model.StatusNew
	}
	if req.Score != nil {
		lead.Score = *req.Score
	}
	if req.LeadValue != nil {
		lead.LeadValue = *req.LeadValue
	}
	if req.IsQualified != nil {
		lead.IsQualified = *req.IsQualified
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead in repo: %w", err)
	}
	return lead, nil
}

// ListLeads compiles params into an owner-scoped query and returns the requested page.
// Malformed filters come back as *filter.ValidationError.
func (s *leadService) ListLeads(ctx context.Context, ownerID uuid.UUID, params url.Values) (*model.LeadPage, error) {
	q, err := filter.Compile(ownerID, params)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}
	leads, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to find leads: %w", err)
	}

	return &model.LeadPage{
		Data:       leads,
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: q.TotalPages(total),
	}, nil
}

func (s *leadService) GetLead(ctx context.Context, ownerID, leadID uuid.UUID) (*model.Lead, error) {
	lead, err := s.repo.FindByIDForOwner(ctx, leadID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find lead by ID: %w", err)
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	return lead, nil
}

func (s *leadService) UpdateLead(ctx context.Context, ownerID, leadID uuid.UUID, req model.UpdateLeadRequest) (*model.Lead, error) {
	lead, err := s.repo.FindByIDForOwner(ctx, leadID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find lead for update: %w", err)
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}

	applyLeadUpdate(lead, req)

	updated, err := s.repo.Update(ctx, lead)
	if err != nil {
		return nil, fmt.Errorf("failed to update lead in repo: %w", err)
	}
	if !updated { // deleted between read and write
		return nil, ErrLeadNotFound
	}
	return lead, nil
}

func (s *leadService) DeleteLead(ctx context.Context, ownerID, leadID uuid.UUID) error {
	deleted, err := s.repo.DeleteForOwner(ctx, leadID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete lead in repo: %w", err)
	}
	if !deleted {
		return ErrLeadNotFound
	}
	return nil
}

func applyLeadUpdate(lead *model.Lead, req model.UpdateLeadRequest) {
	if req.FirstName != nil {
		lead.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		lead.LastName = *req.LastName
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.Company != nil {
		lead.Company = *req.Company
	}
	if req.City != nil {
		lead.City = *req.City
	}
	if req.State != nil {
		lead.State = *req.State
	}
	if req.Source != nil {
		lead.Source = *req.Source
	}
	if req.Status != nil {
		lead.Status = *req.Status
	}
	if req.Score != nil {
		lead.Score = *req.Score
	}
	if req.LeadValue != nil {
		lead.LeadValue = *req.LeadValue
	}
	if req.LastActivityAt != nil {
		lead.LastActivityAt = req.LastActivityAt
	}
	if req.IsQualified != nil {
		lead.IsQualified = *req.IsQualified
	}
}
