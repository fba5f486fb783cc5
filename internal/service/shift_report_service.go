package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/armbdevelop/reportBot/internal/dto"
	"github.com/armbdevelop/reportBot/internal/entries"
	"github.com/armbdevelop/reportBot/internal/location"
	"github.com/armbdevelop/reportBot/internal/model"
	"github.com/armbdevelop/reportBot/internal/repository"
)

type ShiftReportService interface {
	Create(ctx context.Context, in dto.CreateShiftReportInput) (*dto.ShiftReportResponse, error)
	List(ctx context.Context, filter dto.ShiftReportFilter) (*dto.ShiftReportListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ShiftReportResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type shiftReportService struct {
	repo       repository.ShiftReportRepository
	files      FileStore
	dispatcher NotificationDispatcher
}

func NewShiftReportService(
	repo repository.ShiftReportRepository,
	files FileStore,
	dispatcher NotificationDispatcher,
) ShiftReportService {
	return &shiftReportService{repo: repo, files: files, dispatcher: dispatcher}
}

// ── Create ───────────────────────────────────────────────────────────────────

func (s *shiftReportService) Create(ctx context.Context, in dto.CreateShiftReportInput) (*dto.ShiftReportResponse, error) {
	incomes, err := entries.ParseIncome(in.IncomeEntriesJSON)
	if err != nil {
		return nil, err
	}
	expenses, err := entries.ParseExpense(in.ExpenseEntriesJSON)
	if err != nil {
		return nil, err
	}

	shiftDate, ok := parseShiftDate(in.ShiftDate)
	if !ok {
		if in.ShiftDate != "" {
			log.Warn().Str("shift_date", in.ShiftDate).Msg("unparseable shift date, falling back to now")
		}
		shiftDate = time.Now()
	}

	calc := Reconcile(ReconciliationInput{
		TotalRevenue:       in.TotalRevenue,
		Returns:            in.Returns,
		Acquiring:          in.Acquiring,
		QRCode:             in.QRCode,
		OnlineApp:          in.OnlineApp,
		YandexFood:         in.YandexFood,
		YandexFoodNoSystem: in.YandexFoodNoSystem,
		Primehill:          in.Primehill,
		FactCash:           in.FactCash,
		IncomeEntries:      incomes,
		ExpenseEntries:     expenses,
	})

	photoPath, err := s.files.SaveShiftReportPhoto(in.Photo)
	if err != nil {
		return nil, fmt.Errorf("save photo: %w", err)
	}
	var receiptPath *string
	if in.ReceiptPhoto != nil {
		p, err := s.files.SaveShiftReportPhoto(in.ReceiptPhoto)
		if err != nil {
			return nil, fmt.Errorf("save receipt photo: %w", err)
		}
		receiptPath = &p
	}

	report := &model.ShiftReport{
		Location:           in.Location,
		ShiftType:          in.ShiftType,
		CashierName:        in.CashierName,
		Date:               shiftDate,
		IncomeEntries:      incomes,
		TotalIncome:        calc.TotalIncome,
		ExpenseEntries:     expenses,
		TotalExpenses:      calc.TotalExpenses,
		TotalRevenue:       decimal.NewFromInt(in.TotalRevenue),
		Returns:            decimal.NewFromInt(in.Returns),
		Acquiring:          decimal.NewFromInt(in.Acquiring),
		QRCode:             decimal.NewFromInt(in.QRCode),
		OnlineApp:          decimal.NewFromInt(in.OnlineApp),
		YandexFood:         decimal.NewFromInt(in.YandexFood),
		YandexFoodNoSystem: decimal.NewFromInt(in.YandexFoodNoSystem),
		Primehill:          decimal.NewFromInt(in.Primehill),
		FactCash:           decimal.NewFromInt(in.FactCash),
		TotalAcquiring:     calc.TotalAcquiring,
		CalculatedAmount:   calc.CalculatedAmount,
		SurplusShortage:    calc.SurplusShortage,
		PhotoPath:          photoPath,
		ReceiptPhotoPath:   receiptPath,
		Comments:           in.Comments,
		Status:             "created",
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, storeErr(err)
	}

	// Fire-and-forget: the response does not wait for (or depend on) delivery.
	if err := s.dispatcher.EnqueueShiftReport(ctx, report.ID); err != nil {
		log.Error().Err(err).Str("report_id", report.ID.String()).
			Msg("failed to enqueue shift report notification")
	}

	return s.buildResponse(report), nil
}

// ── List ─────────────────────────────────────────────────────────────────────

func (s *shiftReportService) List(ctx context.Context, filter dto.ShiftReportFilter) (*dto.ShiftReportListResponse, error) {
	query := dto.ShiftReportQuery{
		Start:    dayStart(filter.StartDate),
		End:      dayEnd(filter.EndDate),
		Location: location.Normalize(filter.Location),
		Page:     filter.Page,
		PerPage:  filter.PerPage,
	}

	reports, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, storeErr(err)
	}

	items := make([]dto.ShiftReportResponse, 0, len(reports))
	for i := range reports {
		items = append(items, *s.buildResponse(&reports[i]))
	}

	return &dto.ShiftReportListResponse{
		Reports:    items,
		Total:      total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
		TotalPages: pageCount(total, filter.PerPage),
	}, nil
}

// ── Get / Delete ─────────────────────────────────────────────────────────────

func (s *shiftReportService) Get(ctx context.Context, id uuid.UUID) (*dto.ShiftReportResponse, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return s.buildResponse(report), nil
}

func (s *shiftReportService) Delete(ctx context.Context, id uuid.UUID) error {
	return storeErr(s.repo.Delete(ctx, id))
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (s *shiftReportService) buildResponse(r *model.ShiftReport) *dto.ShiftReportResponse {
	resp := &dto.ShiftReportResponse{
		ID:                 r.ID.String(),
		Location:           r.Location,
		ShiftType:          r.ShiftType,
		CashierName:        r.CashierName,
		Date:               r.Date.Format(time.RFC3339),
		TotalRevenue:       r.TotalRevenue,
		Returns:            r.Returns,
		Acquiring:          r.Acquiring,
		QRCode:             r.QRCode,
		OnlineApp:          r.OnlineApp,
		YandexFood:         r.YandexFood,
		YandexFoodNoSystem: r.YandexFoodNoSystem,
		Primehill:          r.Primehill,
		TotalAcquiring:     r.TotalAcquiring,
		TotalIncome:        r.TotalIncome,
		TotalExpenses:      r.TotalExpenses,
		FactCash:           r.FactCash,
		CalculatedAmount:   r.CalculatedAmount,
		Difference:         r.SurplusShortage,
		IncomeEntries:      r.IncomeEntries,
		ExpenseEntries:     r.ExpenseEntries,
		Comments:           r.Comments,
		PhotoURL:           s.files.PhotoURL(r.PhotoPath),
		Status:             r.Status,
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          r.UpdatedAt.Format(time.RFC3339),
	}
	if resp.IncomeEntries == nil {
		resp.IncomeEntries = []entries.IncomeEntry{}
	}
	if resp.ExpenseEntries == nil {
		resp.ExpenseEntries = []entries.ExpenseEntry{}
	}
	if r.ReceiptPhotoPath != nil {
		u := s.files.PhotoURL(*r.ReceiptPhotoPath)
		resp.ReceiptPhotoURL = &u
	}
	return resp
}
