package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/armbdevelop/reportBot/internal/dto"
	"github.com/armbdevelop/reportBot/internal/entries"
	"github.com/armbdevelop/reportBot/internal/location"
	"github.com/armbdevelop/reportBot/internal/model"
	"github.com/armbdevelop/reportBot/internal/repository"
)

// ErrBadDate / ErrBadTime surface malformed report_date / report_time values
// as client errors.
var (
	ErrBadDate = fmt.Errorf("invalid date format, expected YYYY-MM-DD")
	ErrBadTime = fmt.Errorf("invalid time format, expected HH:MM")
)

type WriteoffTransferService interface {
	Create(ctx context.Context, in dto.CreateWriteoffTransferForm) (*dto.WriteoffTransferResponse, error)
	List(ctx context.Context, filter dto.WriteoffTransferFilter) (*dto.WriteoffTransferListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.WriteoffTransferResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type writeoffTransferService struct {
	repo       repository.WriteoffTransferRepository
	dispatcher NotificationDispatcher
}

func NewWriteoffTransferService(
	repo repository.WriteoffTransferRepository,
	dispatcher NotificationDispatcher,
) WriteoffTransferService {
	return &writeoffTransferService{repo: repo, dispatcher: dispatcher}
}

// ── Create ───────────────────────────────────────────────────────────────────

func (s *writeoffTransferService) Create(ctx context.Context, in dto.CreateWriteoffTransferForm) (*dto.WriteoffTransferResponse, error) {
	writeoffs, err := entries.ParseItems(in.WriteoffsJSON, "writeoffs_json")
	if err != nil {
		return nil, err
	}
	transfers, err := entries.ParseItems(in.TransfersJSON, "transfers_json")
	if err != nil {
		return nil, err
	}

	// An act is dated only when both date and time are supplied.
	reportDate, err := combineReportDate(in.ReportDate, in.ReportTime)
	if err != nil {
		return nil, err
	}

	report := &model.WriteoffTransfer{
		Location:    in.LocationFrom,
		LocationTo:  in.LocationTo,
		Writeoffs:   writeoffs,
		Transfers:   transfers,
		ShiftType:   in.ShiftType,
		CashierName: in.CashierName,
		Date:        reportDate,
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, storeErr(err)
	}

	if err := s.dispatcher.EnqueueWriteoffTransfer(ctx, report.ID, in.WriteoffOrTransfer); err != nil {
		log.Error().Err(err).Str("report_id", report.ID.String()).
			Msg("failed to enqueue writeoff/transfer notification")
	}

	return buildWriteoffResponse(report), nil
}

func combineReportDate(dateStr, timeStr string) (*time.Time, error) {
	var d, t time.Time
	var err error
	if dateStr != "" {
		if d, err = time.ParseInLocation("2006-01-02", dateStr, time.Local); err != nil {
			return nil, ErrBadDate
		}
	}
	if timeStr != "" {
		if t, err = time.ParseInLocation("15:04", timeStr, time.Local); err != nil {
			return nil, ErrBadTime
		}
	}
	if dateStr == "" || timeStr == "" {
		return nil, nil
	}
	combined := time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
	return &combined, nil
}

// ── List ─────────────────────────────────────────────────────────────────────

func (s *writeoffTransferService) List(ctx context.Context, filter dto.WriteoffTransferFilter) (*dto.WriteoffTransferListResponse, error) {
	query := dto.WriteoffTransferQuery{
		Start:        dayStart(filter.StartDate),
		End:          dayEnd(filter.EndDate),
		Location:     location.Normalize(filter.Location),
		LocationFrom: location.Normalize(filter.LocationFrom),
		LocationTo:   location.Normalize(filter.LocationTo),
		Type:         filter.Type,
		Page:         filter.Page,
		PerPage:      filter.PerPage,
	}

	reports, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, storeErr(err)
	}

	items := make([]dto.WriteoffTransferResponse, 0, len(reports))
	for i := range reports {
		items = append(items, *buildWriteoffResponse(&reports[i]))
	}

	return &dto.WriteoffTransferListResponse{
		Reports:    items,
		Total:      total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
		TotalPages: pageCount(total, filter.PerPage),
	}, nil
}

// ── Get / Delete ─────────────────────────────────────────────────────────────

func (s *writeoffTransferService) Get(ctx context.Context, id uuid.UUID) (*dto.WriteoffTransferResponse, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return buildWriteoffResponse(report), nil
}

func (s *writeoffTransferService) Delete(ctx context.Context, id uuid.UUID) error {
	return storeErr(s.repo.Delete(ctx, id))
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func buildWriteoffResponse(r *model.WriteoffTransfer) *dto.WriteoffTransferResponse {
	resp := &dto.WriteoffTransferResponse{
		ID:          r.ID.String(),
		Location:    r.Location,
		LocationTo:  r.LocationTo,
		CashierName: r.CashierName,
		ShiftType:   r.ShiftType,
		Type:        r.Type(),
		Writeoffs:   r.Writeoffs,
		Transfers:   r.Transfers,
		ItemsCount:  len(r.Writeoffs) + len(r.Transfers),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
	if resp.Writeoffs == nil {
		resp.Writeoffs = []entries.ItemEntry{}
	}
	if resp.Transfers == nil {
		resp.Transfers = []entries.ItemEntry{}
	}
	if r.Date != nil {
		d := r.Date.Format(time.RFC3339)
		resp.Date = &d
	}
	return resp
}
