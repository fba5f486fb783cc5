package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/armbdevelop/reportBot/internal/repository"
)

// notifyTimeout bounds a single delivery attempt, photo upload included.
const notifyTimeout = 30 * time.Second

// Messenger is the Telegram surface the worker needs.
// infra.TelegramClient satisfies it.
type Messenger interface {
	SendMessage(ctx context.Context, chatID, text string) error
	SendPhoto(ctx context.Context, chatID, caption, photoPath string) error
}

// NotifyWorker forwards persisted reports to the operations chat. Jobs carry
// only the report id; the worker reloads the row so the message always
// reflects what was actually stored.
type NotifyWorker struct {
	shiftRepo    repository.ShiftReportRepository
	writeoffRepo repository.WriteoffTransferRepository
	messenger    Messenger
	chatID       string
	rdb          *redis.Client
}

func NewNotifyWorker(
	shiftRepo repository.ShiftReportRepository,
	writeoffRepo repository.WriteoffTransferRepository,
	messenger Messenger,
	chatID string,
	rdb *redis.Client,
) *NotifyWorker {
	return &NotifyWorker{
		shiftRepo:    shiftRepo,
		writeoffRepo: writeoffRepo,
		messenger:    messenger,
		chatID:       chatID,
		rdb:          rdb,
	}
}

// Process delivers one notification job. Delivery is at-most-once: failures
// are logged and parked in the DLQ, never retried inline.
func (w *NotifyWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload NotificationJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notify: failed to unmarshal payload")
		return
	}

	id, err := uuid.Parse(payload.ReportID)
	if err != nil {
		log.Error().Err(err).Str("report_id", payload.ReportID).Msg("notify: bad report id")
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	switch payload.Kind {
	case KindShiftReport:
		err = w.sendShiftReport(sendCtx, id)
	case KindWriteoffTransfer:
		err = w.sendWriteoffTransfer(sendCtx, id, payload.Discriminator)
	default:
		log.Warn().Str("kind", payload.Kind).Msg("notify: unknown report kind — dropping")
		return
	}

	if err != nil {
		// The report was deleted between enqueue and delivery; nothing to send.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Str("report_id", payload.ReportID).Msg("notify: report gone, skipping")
			return
		}
		log.Error().Err(err).
			Str("kind", payload.Kind).
			Str("report_id", payload.ReportID).
			Msg("notify: delivery failed")
		if w.rdb != nil {
			SendToDLQ(ctx, w.rdb, QueueNotifications, "notification", raw, err.Error(), 1)
		}
		return
	}

	log.Info().
		Str("kind", payload.Kind).
		Str("report_id", payload.ReportID).
		Msg("notify: delivered")
}

func (w *NotifyWorker) sendShiftReport(ctx context.Context, id uuid.UUID) error {
	report, err := w.shiftRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	text := FormatShiftReport(report)
	if report.PhotoPath != "" {
		if err := w.messenger.SendPhoto(ctx, w.chatID, text, report.PhotoPath); err != nil {
			return err
		}
	} else {
		if err := w.messenger.SendMessage(ctx, w.chatID, text); err != nil {
			return err
		}
	}

	if report.ReceiptPhotoPath != nil && *report.ReceiptPhotoPath != "" {
		if err := w.messenger.SendPhoto(ctx, w.chatID, "🧾 Чек отчета", *report.ReceiptPhotoPath); err != nil {
			return err
		}
	}
	return nil
}

func (w *NotifyWorker) sendWriteoffTransfer(ctx context.Context, id uuid.UUID, discriminator string) error {
	report, err := w.writeoffRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return w.messenger.SendMessage(ctx, w.chatID, FormatWriteoffTransfer(report, discriminator))
}
