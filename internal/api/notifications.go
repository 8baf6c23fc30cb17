package api

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/assetdesk/assetdesk/internal/mail"
	"github.com/assetdesk/assetdesk/internal/model"
	"github.com/assetdesk/assetdesk/internal/store"
)

// Notifier sends email notifications to managers and admins. A nil Sender
// disables all notifications. Delivery failures are logged and swallowed;
// the triggering operation has already committed and must not fail because
// the mail server is down.
type Notifier struct {
	DB     *sql.DB
	Sender mail.Sender
}

// sendTimeout bounds a single notification delivery.
const sendTimeout = 15 * time.Second

func (n *Notifier) recipients(ctx context.Context, roles ...string) []string {
	emails, err := store.ListUserEmailsByRole(ctx, n.DB, roles...)
	if err != nil {
		slog.Error("listing notification recipients", "error", err)
		return nil
	}
	return emails
}

func (n *Notifier) send(subject, body string, roles ...string) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	to := n.recipients(ctx, roles...)
	if len(to) == 0 {
		slog.Warn("no notification recipients", "subject", subject)
		return
	}

	if err := n.Sender.Send(ctx, to, subject, body); err != nil {
		slog.Error("sending notification", "subject", subject, "error", err)
		return
	}
	slog.Info("notification sent", "subject", subject, "recipients", len(to))
}

// IndentCreated notifies admins about a new indent request.
// Runs in the background; the HTTP response does not wait on SMTP.
func (n *Notifier) IndentCreated(ind *model.IndentRequest) {
	if n == nil || n.Sender == nil {
		return
	}
	subject, body, err := mail.RenderIndentRequest(ind)
	if err != nil {
		slog.Error("rendering indent notification", "error", err)
		return
	}
	go n.send(subject, body, model.RoleAdmin)
}

// LowStock notifies managers about assets at or below the low-stock threshold.
func (n *Notifier) LowStock(assets []model.Asset) {
	if n == nil || n.Sender == nil || len(assets) == 0 {
		return
	}
	subject, body, err := mail.RenderLowStockAlert(assets)
	if err != nil {
		slog.Error("rendering low stock alert", "error", err)
		return
	}
	go n.send(subject, body, model.RoleAdmin, model.RoleManager)
}

// DailyReport gathers and sends the daily activity summary. Unlike the other
// notifications this one is called from a scheduler, not a request, so it
// runs synchronously and reports errors to the caller.
func (n *Notifier) DailyReport(ctx context.Context) error {
	if n == nil || n.Sender == nil {
		return nil
	}

	report, err := store.GetDailyReport(ctx, n.DB, time.Now())
	if err != nil {
		return err
	}

	subject, body, err := mail.RenderDailyReport(report)
	if err != nil {
		return err
	}

	to := n.recipients(ctx, model.RoleAdmin)
	if len(to) == 0 {
		slog.Warn("no recipients for daily report")
		return nil
	}
	return n.Sender.Send(ctx, to, subject, body)
}
