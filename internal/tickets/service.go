package tickets

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrNotTicketOwner     = errors.New("ticket belongs to another user")
	ErrTicketNotConfirmed = errors.New("ticket is not confirmed")
)

type Service interface {
	// Service dependency injection
	SetProfileService(profileService ProfileService)

	ListTickets(ctx context.Context, userID uuid.UUID, q FilterQuery) (*TicketListResponse, error)
	GetTicket(ctx context.Context, id, userID uuid.UUID) (*TicketResponse, error)
	ExportTicket(ctx context.Context, id, userID uuid.UUID) (*DownloadPayload, error)
	QrPayload(ctx context.Context, id, userID uuid.UUID) (string, error)
}

// ProfileService resolves display names. Declared here to avoid a circular
// dependency on the profile package.
type ProfileService interface {
	DisplayName(ctx context.Context, userID uuid.UUID) string
}

type service struct {
	repo           Repository
	profileService ProfileService
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetProfileService(profileService ProfileService) {
	s.profileService = profileService
}

func (s *service) ListTickets(ctx context.Context, userID uuid.UUID, q FilterQuery) (*TicketListResponse, error) {
	all, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := FilterAndBucket(all, q)

	resp := &TicketListResponse{
		Tickets:     make([]TicketResponse, 0, len(view.Filtered)),
		Buckets:     make(map[TicketStatus][]TicketResponse, len(view.Buckets)),
		TotalCount:  len(all),
		FilterCount: len(view.Filtered),
	}
	for _, t := range view.Filtered {
		resp.Tickets = append(resp.Tickets, toTicketResponse(t))
	}
	for status, bucket := range view.Buckets {
		items := make([]TicketResponse, 0, len(bucket))
		for _, t := range bucket {
			items = append(items, toTicketResponse(t))
		}
		resp.Buckets[status] = items
	}

	return resp, nil
}

func (s *service) GetTicket(ctx context.Context, id, userID uuid.UUID) (*TicketResponse, error) {
	ticket, err := s.ownedTicket(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	resp := toTicketResponse(*ticket)
	return &resp, nil
}

func (s *service) ExportTicket(ctx context.Context, id, userID uuid.UUID) (*DownloadPayload, error) {
	ticket, err := s.ownedTicket(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	holderName := ""
	if s.profileService != nil {
		holderName = s.profileService.DisplayName(ctx, userID)
	}

	payload := BuildDownloadPayload(*ticket, holderName)
	return &payload, nil
}

func (s *service) QrPayload(ctx context.Context, id, userID uuid.UUID) (string, error) {
	ticket, err := s.ownedTicket(ctx, id, userID)
	if err != nil {
		return "", err
	}

	// Entry QR codes only exist for confirmed admissions
	if ticket.Status != TicketStatusConfirmed {
		return "", ErrTicketNotConfirmed
	}

	return BuildQrPayload(*ticket, userID.String()), nil
}

func (s *service) ownedTicket(ctx context.Context, id, userID uuid.UUID) (*Ticket, error) {
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, ErrNotTicketOwner
	}
	return ticket, nil
}
