package service_test

import (
	"context"
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

// ── In-memory WriteoffTransferRepository ─────────────────────────────────────

type memWriteoffRepo struct {
	reports   map[uuid.UUID]*model.WriteoffTransfer
	lastQuery dto.WriteoffTransferQuery
}

func newMemWriteoffRepo() *memWriteoffRepo {
	return &memWriteoffRepo{reports: make(map[uuid.UUID]*model.WriteoffTransfer)}
}

func (r *memWriteoffRepo) Create(_ context.Context, report *model.WriteoffTransfer) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	report.CreatedAt = time.Now()
	r.reports[report.ID] = report
	return nil
}

func (r *memWriteoffRepo) FindByID(_ context.Context, id uuid.UUID) (*model.WriteoffTransfer, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (r *memWriteoffRepo) List(_ context.Context, q dto.WriteoffTransferQuery) ([]model.WriteoffTransfer, int64, error) {
	r.lastQuery = q
	var out []model.WriteoffTransfer
	for _, report := range r.reports {
		out = append(out, *report)
	}
	return out, int64(len(out)), nil
}

func (r *memWriteoffRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.reports[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.reports, id)
	return nil
}

func (r *memWriteoffRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, report := range r.reports {
		if report.CreatedAt.Before(cutoff) {
			delete(r.reports, id)
			n++
		}
	}
	return n, nil
}

func validActForm() dto.CreateWriteoffTransferForm {
	return dto.CreateWriteoffTransferForm{
		LocationFrom:       "Гагарина 48/1",
		WriteoffsJSON:      `[{"name": "молоко", "weight": 2.6, "unit": "л", "reason": "просрочка"}]`,
		ShiftType:          "night",
		CashierName:        "Амина",
		WriteoffOrTransfer: "Списание",
	}
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestWriteoffCreateQuantizesWeights(t *testing.T) {
	svc := service.NewWriteoffTransferService(newMemWriteoffRepo(), &stubDispatcher{})

	resp, err := svc.Create(context.Background(), validActForm())
	require.NoError(t, err)

	assert.Equal(t, model.TypeWriteoff, resp.Type)
	require.Len(t, resp.Writeoffs, 1)
	assert.Equal(t, int64(3), resp.Writeoffs[0].Weight) // 2.6 → 3
	assert.Equal(t, 1, resp.ItemsCount)
	assert.Empty(t, resp.Transfers)
}

func TestWriteoffCreateTransferClassification(t *testing.T) {
	svc := service.NewWriteoffTransferService(newMemWriteoffRepo(), &stubDispatcher{})

	to := "Гайдара Гаджиева 7Б"
	form := dto.CreateWriteoffTransferForm{
		LocationFrom:       "Гагарина 48/1",
		LocationTo:         &to,
		TransfersJSON:      `[{"name": "сыр", "weight": 1, "unit": "кг", "reason": "перемещение"}]`,
		ShiftType:          "morning",
		CashierName:        "Мадина",
		WriteoffOrTransfer: "Перемещение",
	}

	resp, err := svc.Create(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, model.TypeTransfer, resp.Type)
	require.NotNil(t, resp.LocationTo)
	assert.Equal(t, to, *resp.LocationTo)
}

func TestWriteoffCreateMixedAct(t *testing.T) {
	svc := service.NewWriteoffTransferService(newMemWriteoffRepo(), &stubDispatcher{})

	form := validActForm()
	form.TransfersJSON = `[{"name": "хлеб", "weight": 4, "unit": "шт", "reason": "другая точка"}]`

	resp, err := svc.Create(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, model.TypeMixed, resp.Type)
	assert.Equal(t, 2, resp.ItemsCount)
}

func TestWriteoffCreateEmptyActAllowed(t *testing.T) {
	svc := service.NewWriteoffTransferService(newMemWriteoffRepo(), &stubDispatcher{})

	form := validActForm()
	form.WriteoffsJSON = ""

	resp, err := svc.Create(context.Background(), form)
	require.NoError(t, err)
	assert.Empty(t, resp.Type)
	assert.Equal(t, 0, resp.ItemsCount)
	assert.NotNil(t, resp.Writeoffs)
	assert.NotNil(t, resp.Transfers)
}

func TestWriteoffCreateRejectsStringWeight(t *testing.T) {
	svc := service.NewWriteoffTransferService(newMemWriteoffRepo(), &stubDispatcher{})

	form := validActForm()
	form.WriteoffsJSON = `[{"name": "молоко", "weight": "2.6", "unit": "л", "reason": "просрочка"}]`

	_, err := svc.Create(context.Background(), form)
	var entryErr *entries.Error
	require.ErrorAs(t, err, &entryErr)
	assert.Equal(t, entries.KindInvalidValue, entryErr.Kind)
}

func TestWriteoffCreateDateRequiresBothParts(t *testing.T) {
	svc := service.NewWriteoffTransferService(newMemWriteoffRepo(), &stubDispatcher{})

	form := validActForm()
	form.ReportDate = "2026-08-27"
	resp, err := svc.Create(context.Background(), form)
	require.NoError(t, err)
	assert.Nil(t, resp.Date)

	form.ReportTime = "21:30"
	resp, err = svc.Create(context.Background(), form)
	require.NoError(t, err)
	require.NotNil(t, resp.Date)
	parsed, err := time.Parse(time.RFC3339, *resp.Date)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-27 21:30", parsed.Format("2006-01-02 15:04"))
}

func TestWriteoffCreateBadDateAndTime(t *testing.T) {
	svc := service.NewWriteoffTransferService(newMemWriteoffRepo(), &stubDispatcher{})

	form := validActForm()
	form.ReportDate = "27.08.2026"
	_, err := svc.Create(context.Background(), form)
	assert.ErrorIs(t, err, service.ErrBadDate)

	form = validActForm()
	form.ReportTime = "9:3pm"
	_, err = svc.Create(context.Background(), form)
	assert.ErrorIs(t, err, service.ErrBadTime)
}

func TestWriteoffCreateForwardsDiscriminator(t *testing.T) {
	disp := &stubDispatcher{}
	svc := service.NewWriteoffTransferService(newMemWriteoffRepo(), disp)

	_, err := svc.Create(context.Background(), validActForm())
	require.NoError(t, err)

	require.Len(t, disp.discriminators, 1)
	assert.Equal(t, "Списание", disp.discriminators[0])
}

// ── List / Get / Delete ──────────────────────────────────────────────────────

func TestWriteoffListNormalizesLocations(t *testing.T) {
	repo := newMemWriteoffRepo()
	svc := service.NewWriteoffTransferService(repo, &stubDispatcher{})

	_, err := svc.List(context.Background(), dto.WriteoffTransferFilter{
		Location:     "abdulhakima",
		LocationFrom: "gagarina",
		Type:         "writeoff",
		Page:         1,
		PerPage:      10,
	})
	require.NoError(t, err)

	q := repo.lastQuery
	assert.Equal(t, "Абдулхакима Исмаилова 51", q.Location)
	assert.Equal(t, "Гагарина 48/1", q.LocationFrom)
	assert.Equal(t, "writeoff", q.Type)
}

func TestWriteoffGetAndDelete(t *testing.T) {
	repo := newMemWriteoffRepo()
	svc := service.NewWriteoffTransferService(repo, &stubDispatcher{})

	resp, err := svc.Create(context.Background(), validActForm())
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)

	require.NoError(t, svc.Delete(context.Background(), id))
	_, err = svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
