package service

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
)

// FileStore persists uploaded report photos and resolves their public URLs.
// Implemented by infra.FileStore.
type FileStore interface {
	SaveShiftReportPhoto(fh *multipart.FileHeader) (string, error)
	PhotoURL(path string) string
}

// NotificationDispatcher enqueues fire-and-forget notification jobs after a
// report is persisted. Enqueue failures must not fail the creation — callers
// log and move on. Implemented by worker.Dispatcher.
type NotificationDispatcher interface {
	EnqueueShiftReport(ctx context.Context, reportID uuid.UUID) error
	EnqueueWriteoffTransfer(ctx context.Context, reportID uuid.UUID, discriminator string) error
}

// pageCount is ceil(total/perPage).
func pageCount(total int64, perPage int) int {
	return int((total + int64(perPage) - 1) / int64(perPage))
}
