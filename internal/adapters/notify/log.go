package notify

import (
	"context"
	"log/slog"

	"github.com/SscSPs/contas_app/internal/core/domain"
	portssvc "github.com/SscSPs/contas_app/internal/core/ports/services"
	"github.com/SscSPs/contas_app/internal/middleware"
)

// LogNotifier only logs events. It is used when no broker is configured.
type LogNotifier struct{}

var _ portssvc.BillNotifier = LogNotifier{}

func (LogNotifier) NotifyBillEvent(ctx context.Context, event domain.BillEvent) error {
	middleware.GetLoggerFromCtx(ctx).Info("Bill event",
		slog.String("event", string(event.Type)),
		slog.String("bill_id", event.BillID),
		slog.String("owner_id", event.OwnerID))
	return nil
}
