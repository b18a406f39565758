package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"amora/internal/interfaces"
	"amora/internal/models"
)

type mockInviteRepo struct {
	createErr   error
	resolveErr  error
	listResult  []models.InviteWithProfile
	resolved    []int64
	resolvedBy  string
	resolvedOpt int
}

var _ interfaces.InviteRepository = (*mockInviteRepo)(nil)

func (m *mockInviteRepo) Create(ctx context.Context, invite *models.Invite) error {
	if m.createErr != nil {
		return m.createErr
	}
	invite.ID = 42
	return nil
}

func (m *mockInviteRepo) ListForTarget(ctx context.Context, targetID string) ([]models.InviteWithProfile, error) {
	return m.listResult, nil
}

func (m *mockInviteRepo) Resolve(ctx context.Context, inviteID int64, actingUserID string, option int) error {
	if m.resolveErr != nil {
		return m.resolveErr
	}
	m.resolved = append(m.resolved, inviteID)
	m.resolvedBy = actingUserID
	m.resolvedOpt = option
	return nil
}

type mockProfileRepo struct {
	profiles map[string]*models.Profile
}

var _ interfaces.ProfileRepository = (*mockProfileRepo)(nil)

func (m *mockProfileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	if p, ok := m.profiles[id]; ok {
		return p, nil
	}
	return nil, interfaces.ErrProfileNotFound
}

func (m *mockProfileRepo) GetByName(ctx context.Context, name string) (*models.Profile, error) {
	for _, p := range m.profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, interfaces.ErrProfileNotFound
}

func (m *mockProfileRepo) Upsert(ctx context.Context, id string, req *models.UpdateProfileRequest) (bool, error) {
	return false, nil
}

func (m *mockProfileRepo) ResolvePartner(ctx context.Context, userID string) (*models.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, interfaces.ErrProfileNotFound
	}
	if p.PartnerID == nil {
		return nil, interfaces.ErrNoPartner
	}
	partner, ok := m.profiles[*p.PartnerID]
	if !ok {
		return nil, interfaces.ErrProfileNotFound
	}
	return partner, nil
}

func TestSendInviteReturnsInviteAndProfile(t *testing.T) {
	invites := &mockInviteRepo{}
	profiles := &mockProfileRepo{profiles: map[string]*models.Profile{
		"u1": {ID: "u1", Name: "Ana", Email: "ana@b.com"},
	}}
	h := NewInviteHandler(invites, profiles)

	r := chi.NewRouter()
	r.Post("/inviting/{userId}/{partnerId}", h.SendInvite)

	req := httptest.NewRequest(http.MethodPost, "/inviting/u1/u2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp["invite"]; !ok {
		t.Fatalf("expected invite field, got %v", resp)
	}
	if _, ok := resp["profile"]; !ok {
		t.Fatalf("expected profile field, got %v", resp)
	}
}

func TestSendInviteToSelfIsRejected(t *testing.T) {
	h := NewInviteHandler(&mockInviteRepo{}, &mockProfileRepo{})

	r := chi.NewRouter()
	r.Post("/inviting/{userId}/{partnerId}", h.SendInvite)

	req := httptest.NewRequest(http.MethodPost, "/inviting/u1/u1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestSendInviteToPairedTargetIsConflict(t *testing.T) {
	invites := &mockInviteRepo{createErr: &interfaces.AlreadyPairedError{ProfileID: "u2"}}
	h := NewInviteHandler(invites, &mockProfileRepo{})

	r := chi.NewRouter()
	r.Post("/inviting/{userId}/{partnerId}", h.SendInvite)

	req := httptest.NewRequest(http.MethodPost, "/inviting/u1/u2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestResendPendingInviteIsConflict(t *testing.T) {
	invites := &mockInviteRepo{createErr: interfaces.ErrInviteExists}
	h := NewInviteHandler(invites, &mockProfileRepo{})

	r := chi.NewRouter()
	r.Post("/inviting/{userId}/{partnerId}", h.SendInvite)

	req := httptest.NewRequest(http.MethodPost, "/inviting/u1/u2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "invite_exists" {
		t.Fatalf("expected invite_exists error, got %v", resp)
	}
}

func TestSendInviteWithoutInviterProfileIsNotFound(t *testing.T) {
	invites := &mockInviteRepo{createErr: interfaces.ErrProfileNotFound}
	h := NewInviteHandler(invites, &mockProfileRepo{})

	r := chi.NewRouter()
	r.Post("/inviting/{userId}/{partnerId}", h.SendInvite)

	req := httptest.NewRequest(http.MethodPost, "/inviting/u1/u2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestListInvitesEmptyIsOK(t *testing.T) {
	h := NewInviteHandler(&mockInviteRepo{}, &mockProfileRepo{})

	r := chi.NewRouter()
	r.Get("/get_invites/{userId}", h.ListInvites)

	req := httptest.NewRequest(http.MethodGet, "/get_invites/u1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	list, ok := resp["profiles"].([]any)
	if !ok {
		t.Fatalf("expected profiles list, got %v", resp)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %v", list)
	}
}

func TestListInvitesReturnsInviterProfiles(t *testing.T) {
	invites := &mockInviteRepo{listResult: []models.InviteWithProfile{
		{InviteID: 7, InviterID: "u2", Name: "Bruno", Email: "bruno@b.com", CreatedAt: time.Now().UTC()},
	}}
	h := NewInviteHandler(invites, &mockProfileRepo{})

	r := chi.NewRouter()
	r.Get("/get_invites/{userId}", h.ListInvites)

	req := httptest.NewRequest(http.MethodGet, "/get_invites/u1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp struct {
		Profiles []models.InviteWithProfile `json:"profiles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Profiles) != 1 || resp.Profiles[0].Name != "Bruno" {
		t.Fatalf("expected Bruno's invite, got %v", resp.Profiles)
	}
}

func TestHandleInviteAccept(t *testing.T) {
	invites := &mockInviteRepo{}
	h := NewInviteHandler(invites, &mockProfileRepo{})

	r := chi.NewRouter()
	r.Post("/handle_invite/{userId}", h.HandleInvite)

	b, _ := json.Marshal(models.HandleInviteRequest{InviteID: 7, Option: models.InviteAccept})
	req := httptest.NewRequest(http.MethodPost, "/handle_invite/u1", bytes.NewReader(b))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if len(invites.resolved) != 1 || invites.resolved[0] != 7 {
		t.Fatalf("expected invite 7 resolved once, got %v", invites.resolved)
	}
	if invites.resolvedBy != "u1" || invites.resolvedOpt != models.InviteAccept {
		t.Fatalf("resolver called with %s/%d", invites.resolvedBy, invites.resolvedOpt)
	}
}

func TestHandleInviteRejectsBadOption(t *testing.T) {
	h := NewInviteHandler(&mockInviteRepo{}, &mockProfileRepo{})

	r := chi.NewRouter()
	r.Post("/handle_invite/{userId}", h.HandleInvite)

	b, _ := json.Marshal(map[string]any{"invite_id": 7, "option": 3})
	req := httptest.NewRequest(http.MethodPost, "/handle_invite/u1", bytes.NewReader(b))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestHandleInviteUnknownIsNotFound(t *testing.T) {
	invites := &mockInviteRepo{resolveErr: interfaces.ErrInviteNotFound}
	h := NewInviteHandler(invites, &mockProfileRepo{})

	r := chi.NewRouter()
	r.Post("/handle_invite/{userId}", h.HandleInvite)

	b, _ := json.Marshal(models.HandleInviteRequest{InviteID: 99, Option: models.InviteDecline})
	req := httptest.NewRequest(http.MethodPost, "/handle_invite/u1", bytes.NewReader(b))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestHandleInviteAlreadyPairedIsConflict(t *testing.T) {
	invites := &mockInviteRepo{resolveErr: &interfaces.AlreadyPairedError{ProfileID: "u1"}}
	h := NewInviteHandler(invites, &mockProfileRepo{})

	r := chi.NewRouter()
	r.Post("/handle_invite/{userId}", h.HandleInvite)

	b, _ := json.Marshal(models.HandleInviteRequest{InviteID: 7, Option: models.InviteAccept})
	req := httptest.NewRequest(http.MethodPost, "/handle_invite/u1", bytes.NewReader(b))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d (%s)", w.Code, w.Body.String())
	}
}
