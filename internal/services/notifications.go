package services

import (
	"context"
	"fmt"
	"html"
	"sync"
	"time"

	"github.com/harentsoaR/smile-care-api/internal/models"
	"github.com/mailgun/mailgun-go/v4"
	"go.uber.org/zap"
)

// MailgunNotifier emails booking confirmations through Mailgun.
type MailgunNotifier struct {
	mg      mailgun.Mailgun
	sender  string
	timeout time.Duration
	log     *zap.Logger
	wg      sync.WaitGroup
}

func NewMailgunNotifier(mg mailgun.Mailgun, sender string, timeout time.Duration, log *zap.Logger) *MailgunNotifier {
	if sender == "" {
		sender = fmt.Sprintf("Smile Care <no-reply@%s>", mg.Domain())
	}
	return &MailgunNotifier{mg: mg, sender: sender, timeout: timeout, log: log}
}

// BookingConfirmed sends in a goroutine so it doesn't block the API response.
func (n *MailgunNotifier) BookingConfirmed(b models.Booking) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.send(b)
	}()
}

// Wait blocks until every in-flight confirmation has finished.
func (n *MailgunNotifier) Wait() {
	n.wg.Wait()
}

func (n *MailgunNotifier) send(b models.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	subject, text, body := confirmationEmail(b)
	msg := n.mg.NewMessage(n.sender, subject, text, b.Email)
	msg.SetHtml(body)

	_, id, err := n.mg.Send(ctx, msg)
	if err != nil {
		n.log.Error("failed to send booking confirmation",
			zap.String("email", b.Email),
			zap.String("bookingId", b.ID.Hex()),
			zap.Error(err),
		)
		return
	}
	n.log.Info("booking confirmation sent", zap.String("email", b.Email), zap.String("messageId", id))
}

func confirmationEmail(b models.Booking) (subject, text, body string) {
	subject = fmt.Sprintf("Your appointment for %s is confirmed", b.Treatment)
	text = fmt.Sprintf("Your appointment for %s is confirmed. Please visit us on %s at %s. Thanks from Smile Care.",
		b.Treatment, b.AppointmentDate, b.Slot)
	body = fmt.Sprintf(`<h3>Your Appointment Is Confirmed</h3>
<div>
<p>Your appointment for %s</p>
<p>Please visit us on %s at %s</p>
<p>Thanks from Smile Care</p>
</div>`, html.EscapeString(b.Treatment), html.EscapeString(b.AppointmentDate), html.EscapeString(b.Slot))
	return subject, text, body
}

// LogNotifier only logs confirmations; used when Mailgun is not configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) BookingConfirmed(b models.Booking) {
	n.log.Info("booking confirmation (mail disabled)",
		zap.String("email", b.Email),
		zap.String("treatment", b.Treatment),
		zap.String("date", b.AppointmentDate),
		zap.String("slot", b.Slot),
	)
}
