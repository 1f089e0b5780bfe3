package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/harentsoaR/safebridge-api/internal/apperrors"
	"github.com/harentsoaR/safebridge-api/internal/models"
	"github.com/harentsoaR/safebridge-api/internal/storage"
	"github.com/harentsoaR/safebridge-api/internal/triage"
)

type SubmitRequestInput struct {
	Text     string
	Urgency  string
	Type     string
	Location string
}

type ListFilter struct {
	Status string
}

type RequestOptions struct {
	// DefaultLocation is used when the client does not send a location.
	DefaultLocation string
	// AutoTriage fills missing urgency, type and location from the text.
	AutoTriage bool
}

// RequestService owns the emergency request lifecycle. Status values are
// not restricted: any non-empty string may replace any other.
type RequestService struct {
	requests storage.Collection
	log      *zap.SugaredLogger
	opts     RequestOptions
	now      func() time.Time
}

func NewRequestService(store storage.Store, log *zap.SugaredLogger, opts RequestOptions) *RequestService {
	return &RequestService{
		requests: store.Collection(storage.CollectionRequests),
		log:      log,
		opts:     opts,
		now:      time.Now,
	}
}

// Submit validates and stores a new request in the pending state.
func (s *RequestService) Submit(ctx context.Context, in SubmitRequestInput) (*models.EmergencyRequest, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, apperrors.Validation("Text is required")
	}

	req := &models.EmergencyRequest{
		Text:        in.Text,
		Urgency:     in.Urgency,
		Type:        in.Type,
		Location:    in.Location,
		Timestamp:   millis(s.now()),
		Status:      models.StatusPending,
		LastUpdated: nil,
	}
	s.fillDefaults(req)

	if _, err := s.requests.Insert(ctx, req); err != nil {
		return nil, apperrors.Storage("failed to save request", err)
	}

	s.log.Infow("emergency request created", "id", req.ID, "urgency", req.Urgency, "type", req.Type)
	return req, nil
}

func (s *RequestService) fillDefaults(req *models.EmergencyRequest) {
	if s.opts.AutoTriage && (req.Urgency == "" || req.Type == "" || req.Location == "") {
		guess := triage.Classify(req.Text)
		if req.Urgency == "" {
			req.Urgency = guess.Urgency
		}
		if req.Type == "" {
			req.Type = guess.Type
		}
		if req.Location == "" && guess.Location != "Unknown" {
			req.Location = guess.Location
		}
	}

	if req.Urgency == "" {
		req.Urgency = models.UrgencyUnknown
	}
	if req.Type == "" {
		req.Type = models.TypeUnknown
	}
	if req.Location == "" {
		req.Location = s.opts.DefaultLocation
	}
}

// List returns requests in storage order, optionally narrowed to one status.
func (s *RequestService) List(ctx context.Context, filter ListFilter) ([]models.EmergencyRequest, error) {
	var all []models.EmergencyRequest
	if err := s.requests.LoadAll(ctx, &all); err != nil {
		return nil, apperrors.Storage("failed to load requests", err)
	}

	if filter.Status != "" {
		matched := make([]models.EmergencyRequest, 0, len(all))
		for _, r := range all {
			if r.Status == filter.Status {
				matched = append(matched, r)
			}
		}
		all = matched
	}

	if all == nil {
		all = make([]models.EmergencyRequest, 0)
	}
	return all, nil
}

func (s *RequestService) Get(ctx context.Context, id string) (*models.EmergencyRequest, error) {
	var req models.EmergencyRequest
	if err := s.requests.FindByID(ctx, id, &req); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NotFound("Request not found")
		}
		return nil, apperrors.Storage("failed to load request", err)
	}
	return &req, nil
}

// UpdateStatus replaces the status and stamps lastUpdated. lastUpdated is
// never earlier than the request's creation timestamp.
func (s *RequestService) UpdateStatus(ctx context.Context, id, status string) (*models.EmergencyRequest, error) {
	if status == "" {
		return nil, apperrors.Validation("Status is required")
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	stamp := millis(s.now())
	if stamp < current.Timestamp {
		stamp = current.Timestamp
	}

	var updated models.EmergencyRequest
	patch := storage.Document{"status": status, "lastUpdated": stamp}
	if err := s.requests.UpdateByID(ctx, id, patch, &updated); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NotFound("Request not found")
		}
		return nil, apperrors.Storage("failed to update request", err)
	}

	s.log.Infow("emergency request status changed", "id", id, "from", current.Status, "to", status)
	return &updated, nil
}
