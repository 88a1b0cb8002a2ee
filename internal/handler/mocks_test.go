package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"

	"lead_tracker/internal/model"
	"lead_tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockLeadService is a mock implementation of service.LeadService.
type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) CreateLead(ctx context.Context, ownerID uuid.UUID, req model.CreateLeadRequest) (*model.Lead, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lead), args.Error(1)
}

func (m *MockLeadService) ListLeads(ctx context.Context, ownerID uuid.UUID, params url.Values) (*model.LeadPage, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LeadPage), args.Error(1)
}

func (m *MockLeadService) GetLead(ctx context.Context, ownerID, leadID uuid.UUID) (*model.Lead, error) {
	args := m.Called(ctx, ownerID, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lead), args.Error(1)
}

func (m *MockLeadService) UpdateLead(ctx context.Context, ownerID, leadID uuid.UUID, req model.UpdateLeadRequest) (*model.Lead, error) {
	args := m.Called(ctx, ownerID, leadID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lead), args.Error(1)
}

func (m *MockLeadService) DeleteLead(ctx context.Context, ownerID, leadID uuid.UUID) error {
	args := m.Called(ctx, ownerID, leadID)
	return args.Error(0)
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }

type testServer struct {
	router  *gin.Engine
	auth    *MockAuthService
	leads   *MockLeadService
	jwtUtil *utils.JWTUtil
}

func newTestServer(secureCookie bool, dbErr error) *testServer {
	ts := &testServer{
		auth:    new(MockAuthService),
		leads:   new(MockLeadService),
		jwtUtil: utils.NewJWTUtil("handler-secret", utils.SessionTTL),
	}
	ts.router = NewRouter(RouterDeps{
		AuthService:  ts.auth,
		LeadService:  ts.leads,
		JWTUtil:      ts.jwtUtil,
		DB:           fakePinger{err: dbErr},
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		SecureCookie: secureCookie,
	})
	return ts
}

var errStoreDown = errors.New("connection refused")
