package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"math"
	"time"

	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/internal/queue"
	"github.com/brightbuy/brightbuy-backend/pkg/logger"
	"github.com/brightbuy/brightbuy-backend/pkg/util"
)

// OrderConfirmation is everything the confirmation mail needs, detached from the database.
type OrderConfirmation struct {
	OrderID        uint
	UserID         uint
	Email          string
	UserName       string
	Items          []OrderLine
	TotalAmount    model.Money
	PaymentMethod  model.PaymentMethod
	DeliveryMethod model.DeliveryMethod
	EstimatedDate  string
	EstimatedDays  *int
}

// OrderNotifier is called once per committed order. Errors never undo the order.
type OrderNotifier interface {
	NotifyOrderConfirmed(ctx context.Context, confirmation OrderConfirmation) error
}

// BuildOrderConfirmation expects order with items, payment and delivery preloaded.
func BuildOrderConfirmation(order *model.Order, user *model.User) OrderConfirmation {
	confirmation := OrderConfirmation{
		OrderID:     order.ID,
		UserID:      order.UserID,
		Items:       toOrderLines(order.Items),
		TotalAmount: order.TotalAmount,
	}
	if user != nil {
		confirmation.Email = user.Email
		confirmation.UserName = user.Name
	}
	if order.Payment != nil {
		confirmation.PaymentMethod = order.Payment.Method
	}
	if d := order.Delivery; d != nil {
		confirmation.DeliveryMethod = d.Method
		if d.EstimatedDate != nil {
			confirmation.EstimatedDate = d.EstimatedDate.Format("2006-01-02")
			days := int(math.Round(d.EstimatedDate.Sub(dateOnly(order.OrderDate)).Hours() / 24))
			confirmation.EstimatedDays = &days
		}
	}
	return confirmation
}

type NoopNotifier struct{}

func (NoopNotifier) NotifyOrderConfirmed(context.Context, OrderConfirmation) error {
	return nil
}

// EmailNotifier renders and sends the confirmation mail synchronously.
type EmailNotifier struct {
	settings util.MailSettings
	send     func(settings util.MailSettings, to, subject, body string) error
}

func NewEmailNotifier(settings util.MailSettings) *EmailNotifier {
	return &EmailNotifier{settings: settings, send: util.SendHTMLMail}
}

func (n *EmailNotifier) NotifyOrderConfirmed(ctx context.Context, c OrderConfirmation) error {
	if c.Email == "" {
		logger.Warn("Skipping order confirmation mail, user has no email", map[string]interface{}{
			"order_id": c.OrderID,
			"user_id":  c.UserID,
		})
		return nil
	}

	body, err := RenderOrderConfirmation(c)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("BrightBuy Order Confirmation - Order #%d", c.OrderID)
	if err := n.send(n.settings, c.Email, subject, body); err != nil {
		return err
	}

	logger.Info("Order confirmation mail sent", map[string]interface{}{
		"order_id": c.OrderID,
		"to":       c.Email,
	})
	return nil
}

// QueueNotifier hands the order id to the worker, which reloads the order and mails it.
type QueueNotifier struct {
	client *queue.Client
}

func NewQueueNotifier(client *queue.Client) *QueueNotifier {
	return &QueueNotifier{client: client}
}

func (n *QueueNotifier) NotifyOrderConfirmed(ctx context.Context, c OrderConfirmation) error {
	return n.client.EnqueueOrderConfirmed(queue.OrderConfirmedPayload{
		OrderID: c.OrderID,
		UserID:  c.UserID,
	})
}

// AsyncNotifier runs next on its own goroutine so the request is not held up by SMTP.
type AsyncNotifier struct {
	next OrderNotifier
}

func NewAsyncNotifier(next OrderNotifier) *AsyncNotifier {
	return &AsyncNotifier{next: next}
}

func (n *AsyncNotifier) NotifyOrderConfirmed(ctx context.Context, c OrderConfirmation) error {
	detached := context.WithoutCancel(ctx)
	go func() {
		if err := n.next.NotifyOrderConfirmed(detached, c); err != nil {
			logger.Error("Async order confirmation failed", err, map[string]interface{}{
				"order_id": c.OrderID,
			})
		}
	}()
	return nil
}

var orderConfirmationTemplate = template.Must(template.New("order_confirmation").Funcs(template.FuncMap{
	"label": displayLabel,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9f9f9; }
.header { background-color: #4CAF50; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
.content { background-color: white; padding: 30px; border-radius: 0 0 5px 5px; }
table { width: 100%; border-collapse: collapse; margin: 20px 0; }
th, td { padding: 8px; border-bottom: 1px solid #ddd; text-align: left; }
.total { font-size: 18px; font-weight: bold; text-align: right; }
.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
</style>
</head>
<body>
<div class="container">
<div class="header"><h1>BrightBuy</h1><p>Order Confirmation</p></div>
<div class="content">
<p>Hello {{if .UserName}}{{.UserName}}{{else}}there{{end}},</p>
<p>Thank you for your order! Your order <strong>#{{.OrderID}}</strong> has been placed.</p>
<table>
<tr><th>Product</th><th>Variant</th><th>Qty</th><th>Price</th></tr>
{{range .Items}}<tr><td>{{.ProductName}}</td><td>{{.VariantName}}</td><td>{{.Quantity}}</td><td>${{.Price}}</td></tr>
{{end}}</table>
<p class="total">Total: ${{.TotalAmount}}</p>
<p><strong>Payment Method:</strong> {{label .PaymentMethod}}</p>
<p><strong>Delivery Method:</strong> {{label .DeliveryMethod}}</p>
{{if .EstimatedDate}}<p><strong>Estimated Delivery:</strong> {{.EstimatedDate}}{{if .EstimatedDays}} ({{.EstimatedDays}} days){{end}}</p>{{end}}
</div>
<div class="footer"><p>&copy; BrightBuy. All rights reserved.</p></div>
</div>
</body>
</html>`))

func RenderOrderConfirmation(c OrderConfirmation) (string, error) {
	view := struct {
		OrderConfirmation
		EstimatedDays int
	}{OrderConfirmation: c}
	if c.EstimatedDays != nil {
		view.EstimatedDays = *c.EstimatedDays
	}

	var buf bytes.Buffer
	if err := orderConfirmationTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func displayLabel(v interface{}) string {
	switch v {
	case model.PaymentMethodCard:
		return "Card"
	case model.PaymentMethodCOD:
		return "Cash on Delivery"
	case model.DeliveryMethodStorePickup:
		return "Store Pickup"
	case model.DeliveryMethodHomeDelivery:
		return "Home Delivery"
	}
	return fmt.Sprint(v)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
