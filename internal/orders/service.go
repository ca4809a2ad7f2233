package orders

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"tvojakarta/pkg/logger"
)

const numberAttempts = 5

type Service interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error)
	GetByNumber(ctx context.Context, sessionID, number string) (*Order, error)
	ListBySession(ctx context.Context, sessionID string, limit int) ([]Order, error)
}

type service struct {
	repo Repository
	now  func() time.Time
	log  *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		now:  time.Now,
		log:  logger.GetDefault(),
	}
}

// CreateOrder stores a confirmed order. The number is retried on collision.
func (s *service) CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error) {
	if len(in.Lines) == 0 {
		return nil, errors.New("order has no lines")
	}

	createdAt := s.now().UTC()
	order := &Order{
		ID:            uuid.New(),
		SessionID:     in.SessionID,
		Status:        StatusConfirmed,
		FirstName:     in.Customer.FirstName,
		LastName:      in.Customer.LastName,
		Email:         in.Customer.Email,
		Phone:         in.Customer.Phone,
		Address:       in.Customer.Address,
		City:          in.Customer.City,
		PostalCode:    in.Customer.PostalCode,
		CardLast4:     in.CardLast4,
		Newsletter:    in.Newsletter,
		Subtotal:      in.Quote.Subtotal,
		ServiceFee:    in.Quote.ServiceFee,
		ProcessingFee: in.Quote.ProcessingFee,
		Total:         in.Quote.Total,
		TransactionID: in.TransactionID,
		CreatedAt:     createdAt,
	}
	order.Items = make([]OrderItem, len(in.Lines))
	for i, l := range in.Lines {
		order.Items[i] = OrderItem{
			OrderID:      order.ID,
			EventID:      l.EventID,
			EventTitleSR: l.EventTitle.SR,
			EventTitleEN: l.EventTitle.EN,
			EventDate:    l.EventDate.Time,
			TicketTypeSR: l.TicketType.SR,
			TicketTypeEN: l.TicketType.EN,
			Price:        l.Price,
			Quantity:     l.Quantity,
		}
	}

	for attempt := 0; attempt < numberAttempts; attempt++ {
		number, err := generateOrderNumber(createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to generate order number: %w", err)
		}
		order.Number = number

		err = s.repo.Create(ctx, order)
		if errors.Is(err, ErrDuplicateNumber) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}

		s.log.LogOrderCreated(ctx, order.Number, order.SessionID, order.TicketCount())
		return order, nil
	}
	return nil, fmt.Errorf("failed to create order: %w", ErrDuplicateNumber)
}

// GetByNumber only returns orders placed by sessionID.
func (s *service) GetByNumber(ctx context.Context, sessionID, number string) (*Order, error) {
	order, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if order.SessionID != sessionID {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, number)
	}
	return order, nil
}

func (s *service) ListBySession(ctx context.Context, sessionID string, limit int) ([]Order, error) {
	return s.repo.ListBySession(ctx, sessionID, limit)
}

// generateOrderNumber returns TK-<year>-<6 random digits>.
func generateOrderNumber(at time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("TK-%d-%06d", at.Year(), n.Int64()), nil
}
