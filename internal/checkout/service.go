package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tvojakarta/internal/cart"
	"tvojakarta/internal/catalog"
	"tvojakarta/internal/orders"
	"tvojakarta/internal/pricing"
	"tvojakarta/pkg/logger"
)

// paymentTimeout bounds a single charge on top of the gateway's own delay.
const paymentTimeout = 30 * time.Second

// CartProvider hands out the session's cart store.
type CartProvider interface {
	Get(sessionID string) *cart.Store
}

// OrderRecorder stores the order for a paid cart.
type OrderRecorder interface {
	CreateOrder(ctx context.Context, in orders.CreateOrderInput) (*orders.Order, error)
}

// OrderPublisher announces confirmed orders. Failures are logged only.
type OrderPublisher interface {
	PublishOrderConfirmed(ctx context.Context, order *orders.Order) error
}

type Service interface {
	// Submit validates the form, locks the cart and starts the payment in the
	// background. The returned status is StateSubmitting.
	Submit(ctx context.Context, sessionID string, form PaymentForm, lang catalog.Language) (Status, error)
	Status(sessionID string, lang catalog.Language) Status
	SetPublisher(publisher OrderPublisher)
	// Shutdown waits for running payments; once ctx is done they are cancelled.
	Shutdown(ctx context.Context) error
}

type service struct {
	carts    CartProvider
	machines *Machines
	gateway  PaymentGateway
	orders   OrderRecorder
	policy   pricing.Policy

	pubMu     sync.RWMutex
	publisher OrderPublisher

	validator *FormValidator
	log       *logger.Logger

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewService(carts CartProvider, machines *Machines, gateway PaymentGateway, recorder OrderRecorder, policy pricing.Policy) Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &service{
		carts:     carts,
		machines:  machines,
		gateway:   gateway,
		orders:    recorder,
		policy:    policy,
		validator: NewFormValidator(),
		log:       logger.GetDefault(),
		baseCtx:   ctx,
		cancel:    cancel,
	}
}

// SetPublisher swaps the confirmation publisher. Payments already running
// publish through whichever publisher is set when they finish.
func (s *service) SetPublisher(publisher OrderPublisher) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	s.publisher = publisher
}

func (s *service) currentPublisher() OrderPublisher {
	s.pubMu.RLock()
	defer s.pubMu.RUnlock()
	return s.publisher
}

func (s *service) Submit(ctx context.Context, sessionID string, form PaymentForm, lang catalog.Language) (Status, error) {
	if err := s.validator.Validate(form, lang); err != nil {
		return Status{}, err
	}
	form = form.normalized()

	store := s.carts.Get(sessionID)
	machine := s.machines.Get(sessionID)
	if machine.State() == StateSubmitting {
		return Status{}, ErrCheckoutInProgress
	}

	snap, err := store.BeginCheckout()
	switch {
	case errors.Is(err, cart.ErrCheckoutPending):
		return Status{}, ErrCheckoutInProgress
	case errors.Is(err, cart.ErrEmptyCart):
		return Status{}, ErrEmptyCart
	case err != nil:
		return Status{}, err
	}

	quote := s.policy.Quote(snap.Total)
	if err := machine.Begin(quote, lang); err != nil {
		store.CompleteCheckout(false)
		return Status{}, err
	}
	s.log.LogCheckoutStarted(ctx, sessionID, quote.Total)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.process(store, machine, snap, attempt{
			sessionID: sessionID,
			form:      form,
			lang:      lang,
			quote:     quote,
		})
	}()

	return machine.Status(lang), nil
}

// process runs detached from the request; the cart stays locked until it
// finishes either way.
func (s *service) process(store *cart.Store, machine *Machine, snap cart.Snapshot, a attempt) {
	ctx, cancel := context.WithTimeout(s.baseCtx, paymentTimeout)
	defer cancel()

	fail := func(err error) {
		store.CompleteCheckout(false)
		machine.Fail()
		s.log.LogCheckoutFailed(ctx, a.sessionID, err)
	}

	charge, err := s.gateway.Charge(ctx, ChargeRequest{
		SessionID:      a.sessionID,
		Amount:         a.quote.Total,
		CardNumber:     a.form.CardNumber,
		ExpiryDate:     a.form.ExpiryDate,
		CardLast4:      a.form.CardLast4(),
		CardholderName: a.form.CardName,
		Email:          a.form.Email,
	})
	if err != nil {
		if !errors.Is(err, ErrPaymentFailed) {
			err = fmt.Errorf("%w: %w", ErrPaymentFailed, err)
		}
		fail(err)
		return
	}

	order, err := s.orders.CreateOrder(ctx, orders.CreateOrderInput{
		SessionID: a.sessionID,
		Customer: orders.Customer{
			FirstName:  a.form.FirstName,
			LastName:   a.form.LastName,
			Email:      a.form.Email,
			Phone:      a.form.Phone,
			Address:    a.form.Address,
			City:       a.form.City,
			PostalCode: a.form.PostalCode,
		},
		CardLast4:     a.form.CardLast4(),
		Newsletter:    a.form.SubscribeNewsletter,
		Lines:         toLines(snap.Items),
		Quote:         a.quote,
		TransactionID: charge.TransactionID,
	})
	if err != nil {
		fail(fmt.Errorf("%w: %w", ErrPaymentFailed, err))
		return
	}

	store.CompleteCheckout(true)
	machine.Succeed(order.Number)
	s.log.LogCheckoutCompleted(ctx, a.sessionID, order.Number, order.Total)

	if publisher := s.currentPublisher(); publisher != nil {
		if err := publisher.PublishOrderConfirmed(ctx, order); err != nil {
			s.log.WithSessionID(a.sessionID).WithError(err).WarnContext(ctx,
				"Failed to publish order confirmation",
				slog.String("order_number", order.Number),
			)
		}
	}
}

// Status never creates a machine: a session that has not submitted reads as idle.
func (s *service) Status(sessionID string, lang catalog.Language) Status {
	if machine, ok := s.machines.Peek(sessionID); ok {
		return machine.Status(lang)
	}
	return Status{State: StateIdle}
}

func (s *service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cancel()
		return nil
	case <-ctx.Done():
		s.cancel()
		<-done
		return ctx.Err()
	}
}

func toLines(items []cart.CartItem) []orders.Line {
	lines := make([]orders.Line, len(items))
	for i, it := range items {
		lines[i] = orders.Line{
			EventID:    it.EventID,
			EventTitle: it.EventTitle,
			EventDate:  it.EventDate,
			TicketType: it.TicketType,
			Price:      it.Price,
			Quantity:   it.Quantity,
		}
	}
	return lines
}
