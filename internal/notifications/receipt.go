package notifications

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"tvojakarta/pkg/logger"
)

// ReceiptSender delivers the receipt for a confirmed order.
type ReceiptSender interface {
	SendReceipt(ctx context.Context, msg *OrderConfirmed) error
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`Tvoja Karta - potvrda narudžbe {{.OrderNumber}}

Poštovani/a {{.CustomerName}},

{{range .Items}}{{.Quantity}} x {{.TicketType}} - {{.EventTitle}} ({{.EventDate}}): {{.Price}} KM
{{end}}
Međuzbir: {{.Subtotal}} KM
Servisna naknada: {{.ServiceFee}} KM
Naknada za procesiranje: {{.ProcessingFee}} KM
Ukupno: {{.Total}} KM

Kartica: **** {{.CardLast4}}
Transakcija: {{.TransactionID}}
`))

// RenderReceipt renders the plain-text receipt body.
func RenderReceipt(msg *OrderConfirmed) (string, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, msg); err != nil {
		return "", fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.String(), nil
}

// LogReceiptSender renders receipts and writes them to the log instead of
// mailing them.
type LogReceiptSender struct {
	log *logger.Logger
}

func NewLogReceiptSender() *LogReceiptSender {
	return &LogReceiptSender{log: logger.GetDefault()}
}

func (s *LogReceiptSender) SendReceipt(ctx context.Context, msg *OrderConfirmed) error {
	body, err := RenderReceipt(msg)
	if err != nil {
		return err
	}
	s.log.InfoWithContext(ctx, "Receipt sent", map[string]interface{}{
		"order_number": msg.OrderNumber,
		"email":        msg.Email,
		"tickets":      msg.TicketCount(),
		"body":         body,
	})
	return nil
}
