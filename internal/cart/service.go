package cart

import (
	"context"
	"fmt"

	"tvojakarta/internal/catalog"
	"tvojakarta/internal/pricing"
	"tvojakarta/pkg/logger"
)

// CatalogReader is the slice of the catalog the cart needs to price a line.
type CatalogReader interface {
	GetRecord(ctx context.Context, id string) (catalog.EventRecord, error)
}

type Service interface {
	GetCart(sessionID string) Snapshot
	GetSummary(sessionID string) Summary
	AddTicket(ctx context.Context, sessionID string, req AddItemRequest) (CartItem, error)
	UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, sessionID, itemID string) error
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	registry *Registry
	catalog  CatalogReader
	policy   pricing.Policy
	log      *logger.Logger
}

func NewService(registry *Registry, catalogReader CatalogReader, policy pricing.Policy) Service {
	return &service{
		registry: registry,
		catalog:  catalogReader,
		policy:   policy,
		log:      logger.GetDefault(),
	}
}

func (s *service) GetCart(sessionID string) Snapshot {
	return s.registry.Get(sessionID).Snapshot()
}

func (s *service) GetSummary(sessionID string) Summary {
	snap := s.GetCart(sessionID)
	return Summary{Snapshot: snap, Quote: s.policy.Quote(snap.Total)}
}

// AddTicket prices the line from the catalog, never from the request.
func (s *service) AddTicket(ctx context.Context, sessionID string, req AddItemRequest) (CartItem, error) {
	record, err := s.catalog.GetRecord(ctx, req.EventID)
	if err != nil {
		return CartItem{}, err
	}

	ticket, ok := record.FindTicketType(req.TicketType)
	if !ok {
		return CartItem{}, fmt.Errorf("%w: %q for event %s", ErrTicketTypeNotFound, req.TicketType, record.ID)
	}

	item, err := s.registry.Get(sessionID).Add(CartItem{
		EventID:    record.ID,
		EventTitle: record.Title,
		EventImage: record.Image,
		EventDate:  record.Date,
		TicketType: ticket.Name,
		Price:      ticket.Price,
		Quantity:   req.Quantity,
	})
	if err != nil {
		return CartItem{}, err
	}

	s.log.LogCartItemAdded(ctx, sessionID, record.ID, ticket.Name.SR, req.Quantity)
	return item, nil
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) error {
	return s.registry.Get(sessionID).UpdateQuantity(itemID, quantity)
}

func (s *service) RemoveItem(ctx context.Context, sessionID, itemID string) error {
	return s.registry.Get(sessionID).Remove(itemID)
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	return s.registry.Get(sessionID).Clear()
}
