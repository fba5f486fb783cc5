package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/armbdevelop/reportBot/internal/dto"
	"github.com/armbdevelop/reportBot/internal/entries"
	"github.com/armbdevelop/reportBot/internal/model"
	"github.com/armbdevelop/reportBot/internal/service"
)

// ── In-memory ShiftReportRepository ──────────────────────────────────────────

type memShiftRepo struct {
	reports   map[uuid.UUID]*model.ShiftReport
	order     []uuid.UUID
	lastQuery dto.ShiftReportQuery
}

func newMemShiftRepo() *memShiftRepo {
	return &memShiftRepo{reports: make(map[uuid.UUID]*model.ShiftReport)}
}

func (r *memShiftRepo) Create(_ context.Context, report *model.ShiftReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	r.reports[report.ID] = report
	r.order = append(r.order, report.ID)
	return nil
}

func (r *memShiftRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ShiftReport, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (r *memShiftRepo) List(_ context.Context, q dto.ShiftReportQuery) ([]model.ShiftReport, int64, error) {
	r.lastQuery = q
	var matched []model.ShiftReport
	for _, id := range r.order {
		report := r.reports[id]
		if q.Location != "" && report.Location != q.Location {
			continue
		}
		matched = append(matched, *report)
	}
	total := int64(len(matched))

	offset := (q.Page - 1) * q.PerPage
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + q.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *memShiftRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.reports[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.reports, id)
	return nil
}

func (r *memShiftRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, report := range r.reports {
		if report.CreatedAt.Before(cutoff) {
			delete(r.reports, id)
			n++
		}
	}
	return n, nil
}

// ── Stub FileStore / Dispatcher ──────────────────────────────────────────────

type stubFileStore struct{ saved int }

func (s *stubFileStore) SaveShiftReportPhoto(_ *multipart.FileHeader) (string, error) {
	s.saved++
	return "uploads/shift_reports/photo.jpg", nil
}

func (s *stubFileStore) PhotoURL(path string) string { return "/" + path }

type stubDispatcher struct {
	shiftIDs       []uuid.UUID
	discriminators []string
	fail           bool
}

func (d *stubDispatcher) EnqueueShiftReport(_ context.Context, id uuid.UUID) error {
	if d.fail {
		return errors.New("redis down")
	}
	d.shiftIDs = append(d.shiftIDs, id)
	return nil
}

func (d *stubDispatcher) EnqueueWriteoffTransfer(_ context.Context, id uuid.UUID, disc string) error {
	if d.fail {
		return errors.New("redis down")
	}
	d.shiftIDs = append(d.shiftIDs, id)
	d.discriminators = append(d.discriminators, disc)
	return nil
}

func photoHeader() *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "photo.jpg"}
}

func validShiftForm() dto.CreateShiftReportForm {
	return dto.CreateShiftReportForm{
		Location:           "Гагарина 48/1",
		ShiftType:          "morning",
		ShiftDate:          "2026-08-27T21:30:00",
		CashierName:        "Амина",
		TotalRevenue:       15000,
		Returns:            200,
		Acquiring:          5000,
		FactCash:           10175,
		IncomeEntriesJSON:  `[{"amount": 500, "comment": "разменный фонд"}]`,
		ExpenseEntriesJSON: `[{"description": "такси", "amount": 100}, {"description": "вода", "amount": 25}]`,
	}
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestShiftReportCreateReconciles(t *testing.T) {
	repo := newMemShiftRepo()
	disp := &stubDispatcher{}
	svc := service.NewShiftReportService(repo, &stubFileStore{}, disp)

	resp, err := svc.Create(context.Background(), dto.CreateShiftReportInput{
		CreateShiftReportForm: validShiftForm(),
		Photo:                 photoHeader(),
	})
	require.NoError(t, err)

	assert.Equal(t, "500", resp.TotalIncome.String())
	assert.Equal(t, "125", resp.TotalExpenses.String())
	assert.Equal(t, "5000", resp.TotalAcquiring.String())
	assert.Equal(t, "10175", resp.CalculatedAmount.String())
	assert.True(t, resp.Difference.IsZero())
	assert.Equal(t, "created", resp.Status)
	assert.Equal(t, "/uploads/shift_reports/photo.jpg", resp.PhotoURL)
	assert.Len(t, resp.IncomeEntries, 1)
	assert.Len(t, resp.ExpenseEntries, 2)

	// Shift date comes from the form, not the insert time.
	assert.Equal(t, "2026-08-27T21:30:00", resp.Date[:19])

	require.Len(t, disp.shiftIDs, 1)
	assert.Equal(t, resp.ID, disp.shiftIDs[0].String())
}

func TestShiftReportCreateRejectsBadEntries(t *testing.T) {
	svc := service.NewShiftReportService(newMemShiftRepo(), &stubFileStore{}, &stubDispatcher{})

	form := validShiftForm()
	form.IncomeEntriesJSON = `{"amount": 500}`
	_, err := svc.Create(context.Background(), dto.CreateShiftReportInput{
		CreateShiftReportForm: form,
		Photo:                 photoHeader(),
	})

	var entryErr *entries.Error
	require.ErrorAs(t, err, &entryErr)
	assert.Equal(t, entries.KindMalformedInput, entryErr.Kind)
}

func TestShiftReportCreateSurvivesEnqueueFailure(t *testing.T) {
	repo := newMemShiftRepo()
	svc := service.NewShiftReportService(repo, &stubFileStore{}, &stubDispatcher{fail: true})

	resp, err := svc.Create(context.Background(), dto.CreateShiftReportInput{
		CreateShiftReportForm: validShiftForm(),
		Photo:                 photoHeader(),
	})

	require.NoError(t, err)
	assert.Len(t, repo.reports, 1)
	assert.NotEmpty(t, resp.ID)
}

func TestShiftReportCreateBadDateFallsBackToNow(t *testing.T) {
	svc := service.NewShiftReportService(newMemShiftRepo(), &stubFileStore{}, &stubDispatcher{})

	form := validShiftForm()
	form.ShiftDate = "yesterday evening"
	before := time.Now()
	resp, err := svc.Create(context.Background(), dto.CreateShiftReportInput{
		CreateShiftReportForm: form,
		Photo:                 photoHeader(),
	})
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339, resp.Date)
	require.NoError(t, err)
	assert.False(t, parsed.Before(before.Truncate(time.Second)))
}

func TestShiftReportCreateSavesReceiptPhoto(t *testing.T) {
	files := &stubFileStore{}
	svc := service.NewShiftReportService(newMemShiftRepo(), files, &stubDispatcher{})

	resp, err := svc.Create(context.Background(), dto.CreateShiftReportInput{
		CreateShiftReportForm: validShiftForm(),
		Photo:                 photoHeader(),
		ReceiptPhoto:          &multipart.FileHeader{Filename: "receipt.png"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, files.saved)
	require.NotNil(t, resp.ReceiptPhotoURL)
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestShiftReportListNormalizesFilter(t *testing.T) {
	repo := newMemShiftRepo()
	svc := service.NewShiftReportService(repo, &stubFileStore{}, &stubDispatcher{})

	_, err := svc.List(context.Background(), dto.ShiftReportFilter{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-27",
		Location:  "gagarina",
		Page:      1,
		PerPage:   10,
	})
	require.NoError(t, err)

	q := repo.lastQuery
	assert.Equal(t, "Гагарина 48/1", q.Location)
	require.NotNil(t, q.Start)
	require.NotNil(t, q.End)
	assert.Equal(t, "2026-08-01", q.Start.Format("2006-01-02"))
	// End bound is inclusive: the last nanosecond of the end day.
	assert.Equal(t, "2026-08-27", q.End.Format("2006-01-02"))
	assert.Equal(t, 23, q.End.Hour())
}

func TestShiftReportListAllLocationsMeansNoFilter(t *testing.T) {
	repo := newMemShiftRepo()
	svc := service.NewShiftReportService(repo, &stubFileStore{}, &stubDispatcher{})

	_, err := svc.List(context.Background(), dto.ShiftReportFilter{Location: "all", Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Empty(t, repo.lastQuery.Location)
}

func TestShiftReportListPagination(t *testing.T) {
	repo := newMemShiftRepo()
	disp := &stubDispatcher{}
	files := &stubFileStore{}
	svc := service.NewShiftReportService(repo, files, disp)

	for i := 0; i < 25; i++ {
		_, err := svc.Create(context.Background(), dto.CreateShiftReportInput{
			CreateShiftReportForm: validShiftForm(),
			Photo:                 photoHeader(),
		})
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), dto.ShiftReportFilter{Page: 3, PerPage: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(25), resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Len(t, resp.Reports, 5)
}

// ── Get / Delete ─────────────────────────────────────────────────────────────

func TestShiftReportGetUnknownID(t *testing.T) {
	svc := service.NewShiftReportService(newMemShiftRepo(), &stubFileStore{}, &stubDispatcher{})

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestShiftReportDelete(t *testing.T) {
	repo := newMemShiftRepo()
	svc := service.NewShiftReportService(repo, &stubFileStore{}, &stubDispatcher{})

	resp, err := svc.Create(context.Background(), dto.CreateShiftReportInput{
		CreateShiftReportForm: validShiftForm(),
		Photo:                 photoHeader(),
	})
	require.NoError(t, err)

	id := uuid.MustParse(resp.ID)
	require.NoError(t, svc.Delete(context.Background(), id))
	assert.ErrorIs(t, svc.Delete(context.Background(), id), service.ErrNotFound)
}
