package reconciliation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/inventory"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/reconciliation"
	"github.com/fieldsquad/fieldops-backend-go/internal/domain/sales"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct{}

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAssignmentRepo struct {
	mu         sync.Mutex
	open       []inventory.Assignment
	outcomes   map[string]appliedOutcome
	failIDs    map[string]bool
	closed     map[string]bool
	onFindOpen func()
}

type appliedOutcome struct {
	status    inventory.AssignmentStatus
	shortfall int
}

func newFakeAssignmentRepo(open ...inventory.Assignment) *fakeAssignmentRepo {
	return &fakeAssignmentRepo{
		open:     open,
		outcomes: make(map[string]appliedOutcome),
		failIDs:  make(map[string]bool),
		closed:   make(map[string]bool),
	}
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, a inventory.Assignment) (inventory.Assignment, error) {
	return a, nil
}

func (f *fakeAssignmentRepo) GetByID(ctx context.Context, id string) (inventory.Assignment, error) {
	return inventory.Assignment{}, inventory.ErrAssignmentNotFound
}

func (f *fakeAssignmentRepo) List(ctx context.Context, filter inventory.AssignmentFilter) ([]inventory.Assignment, int64, error) {
	return nil, 0, nil
}

func (f *fakeAssignmentRepo) currentStatus(a inventory.Assignment) inventory.AssignmentStatus {
	if out, ok := f.outcomes[a.ID]; ok {
		return out.status
	}
	return a.Status
}

func (f *fakeAssignmentRepo) FindOpenByCohortDay(ctx context.Context, dayStart time.Time) ([]inventory.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.onFindOpen != nil {
		f.onFindOpen()
	}
	var out []inventory.Assignment
	for _, a := range f.open {
		inDay := !a.AssignedAt.Before(dayStart) && a.AssignedAt.Before(dayStart.Add(24*time.Hour))
		if inDay && f.currentStatus(a).IsOpen() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) ListOpenCohortDays(ctx context.Context, before time.Time) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[time.Time]bool)
	var days []time.Time
	for _, a := range f.open {
		if !f.currentStatus(a).IsOpen() {
			continue
		}
		day := time.Date(a.AssignedAt.Year(), a.AssignedAt.Month(), a.AssignedAt.Day(), 0, 0, 0, 0, time.UTC)
		if !day.Before(before) || seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	return days, nil
}

func (f *fakeAssignmentRepo) UpdateOutcome(ctx context.Context, id string, status inventory.AssignmentStatus, shortfallQuantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[id] {
		return errors.New("write failed")
	}
	if f.closed[id] {
		return inventory.ErrAssignmentClosed
	}
	f.outcomes[id] = appliedOutcome{status: status, shortfall: shortfallQuantity}
	return nil
}

type fakeSaleRepo struct {
	mu sync.Mutex
	// sold quantity keyed by employeeID|productID
	sold map[string]int
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sold: make(map[string]int)}
}

func (f *fakeSaleRepo) Create(ctx context.Context, e sales.SaleEvent) (sales.SaleEvent, error) {
	return e, nil
}

func (f *fakeSaleRepo) SumQuantity(ctx context.Context, employeeID, productID string, from, to time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sold[employeeID+"|"+productID], nil
}

func (f *fakeSaleRepo) SumValueByEmployee(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeSaleRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]sales.SaleEvent, error) {
	return nil, nil
}

type fakeRunRepo struct {
	mu         sync.Mutex
	inProgress bool
	runs       []reconciliation.Run
	finished   map[string]reconciliation.Run
	nextID     int
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{finished: make(map[string]reconciliation.Run)}
}

func (f *fakeRunRepo) TryStart(ctx context.Context, cohortDate time.Time) (reconciliation.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inProgress {
		return reconciliation.Run{}, reconciliation.ErrRunInProgress
	}
	f.inProgress = true
	f.nextID++
	run := reconciliation.Run{
		ID:         string(rune('a' + f.nextID)),
		CohortDate: cohortDate,
		Status:     reconciliation.RunStatusRunning,
		StartedAt:  time.Now().UTC(),
	}
	f.runs = append(f.runs, run)
	return run, nil
}

func (f *fakeRunRepo) Finish(ctx context.Context, id string, status reconciliation.RunStatus, summary reconciliation.RunSummary) error {
	// A dead context fails the write the same way the driver would, and the
	// running marker stays in place.
	if ctx.Err() != nil {
		return ctx.Err()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inProgress = false
	now := time.Now().UTC()
	f.finished[id] = reconciliation.Run{ID: id, Status: status, FinishedAt: &now, Summary: summary}
	return nil
}

func (f *fakeRunRepo) GetLatestByCohortDate(ctx context.Context, cohortDate time.Time) (reconciliation.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.runs) - 1; i >= 0; i-- {
		if f.runs[i].CohortDate.Equal(cohortDate) {
			return f.runs[i], nil
		}
	}
	return reconciliation.Run{}, reconciliation.ErrRunNotFound
}

func testDay() time.Time {
	return time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
}

func assignment(id, employeeID, productID string, quantity int) inventory.Assignment {
	return inventory.Assignment{
		ID:         id,
		EmployeeID: employeeID,
		ProductID:  productID,
		AssignedAt: testDay().Add(9 * time.Hour),
		Quantity:   quantity,
		Status:     inventory.StatusAssigned,
	}
}

func newService(assignments *fakeAssignmentRepo, saleRepo *fakeSaleRepo, runRepo *fakeRunRepo) reconciliation.Service {
	return NewReconciliationService(&fakeTx{}, assignments, saleRepo, runRepo, 4, time.Second)
}

func TestReconcileDay_Outcomes(t *testing.T) {
	assignments := newFakeAssignmentRepo(
		assignment("a1", "emp-1", "prod-1", 10), // nothing sold
		assignment("a2", "emp-2", "prod-1", 10), // 4 of 10 sold
		assignment("a3", "emp-3", "prod-1", 10), // exactly sold out
		assignment("a4", "emp-4", "prod-1", 10), // oversold
	)
	saleRepo := newFakeSaleRepo()
	saleRepo.sold["emp-2|prod-1"] = 4
	saleRepo.sold["emp-3|prod-1"] = 10
	saleRepo.sold["emp-4|prod-1"] = 12
	runRepo := newFakeRunRepo()

	svc := newService(assignments, saleRepo, runRepo)
	run, err := svc.ReconcileDay(context.Background(), testDay())
	require.NoError(t, err)

	assert.Equal(t, reconciliation.RunStatusCompleted, run.Status)
	assert.Equal(t, 4, run.Summary.Processed)
	assert.Equal(t, 1, run.Summary.Expired)
	assert.Equal(t, 1, run.Summary.PartiallySold)
	assert.Equal(t, 2, run.Summary.Sold)
	assert.Equal(t, 1, run.Summary.Oversold)
	assert.Equal(t, 0, run.Summary.Failed)

	assert.Equal(t, appliedOutcome{inventory.StatusExpired, 10}, assignments.outcomes["a1"])
	assert.Equal(t, appliedOutcome{inventory.StatusPartiallySold, 6}, assignments.outcomes["a2"])
	assert.Equal(t, appliedOutcome{inventory.StatusSold, 0}, assignments.outcomes["a3"])
	// Oversell clamps shortfall at zero.
	assert.Equal(t, appliedOutcome{inventory.StatusSold, 0}, assignments.outcomes["a4"])
}

func TestReconcileDay_FailedRecordDoesNotAbortRun(t *testing.T) {
	assignments := newFakeAssignmentRepo(
		assignment("a1", "emp-1", "prod-1", 5),
		assignment("a2", "emp-2", "prod-1", 5),
		assignment("a3", "emp-3", "prod-1", 5),
	)
	assignments.failIDs["a2"] = true
	saleRepo := newFakeSaleRepo()
	runRepo := newFakeRunRepo()

	svc := newService(assignments, saleRepo, runRepo)
	run, err := svc.ReconcileDay(context.Background(), testDay())
	require.NoError(t, err)

	assert.Equal(t, reconciliation.RunStatusCompleted, run.Status)
	assert.Equal(t, 2, run.Summary.Processed)
	assert.Equal(t, 1, run.Summary.Failed)
	assert.NotContains(t, assignments.outcomes, "a2")
	assert.Contains(t, assignments.outcomes, "a1")
	assert.Contains(t, assignments.outcomes, "a3")
}

func TestReconcileDay_ConcurrentTriggerRejected(t *testing.T) {
	assignments := newFakeAssignmentRepo()
	runRepo := newFakeRunRepo()
	runRepo.inProgress = true

	svc := newService(assignments, newFakeSaleRepo(), runRepo)
	_, err := svc.ReconcileDay(context.Background(), testDay())
	assert.ErrorIs(t, err, reconciliation.ErrRunInProgress)
}

func TestReconcileDay_AlreadyClosedAssignmentTolerated(t *testing.T) {
	assignments := newFakeAssignmentRepo(
		assignment("a1", "emp-1", "prod-1", 5),
	)
	assignments.closed["a1"] = true
	saleRepo := newFakeSaleRepo()
	runRepo := newFakeRunRepo()

	svc := newService(assignments, saleRepo, runRepo)
	run, err := svc.ReconcileDay(context.Background(), testDay())
	require.NoError(t, err)

	// The closed row is counted as processed, not failed; the outcome it
	// already carries is the one this run would have written anyway.
	assert.Equal(t, reconciliation.RunStatusCompleted, run.Status)
	assert.Equal(t, 1, run.Summary.Processed)
	assert.Equal(t, 0, run.Summary.Failed)
}

func TestReconcileDay_RepeatRunIsIdempotent(t *testing.T) {
	assignments := newFakeAssignmentRepo(
		assignment("a1", "emp-1", "prod-1", 10),
	)
	saleRepo := newFakeSaleRepo()
	saleRepo.sold["emp-1|prod-1"] = 3
	runRepo := newFakeRunRepo()

	svc := newService(assignments, saleRepo, runRepo)

	first, err := svc.ReconcileDay(context.Background(), testDay())
	require.NoError(t, err)
	firstOutcome := assignments.outcomes["a1"]

	// Same sales, second run: the persisted outcome does not change.
	second, err := svc.ReconcileDay(context.Background(), testDay())
	require.NoError(t, err)

	assert.Equal(t, firstOutcome, assignments.outcomes["a1"])
	assert.Equal(t, first.Summary.PartiallySold, second.Summary.PartiallySold)
	assert.Equal(t, appliedOutcome{inventory.StatusPartiallySold, 7}, firstOutcome)
}

func TestReconcileDay_CancelledBatchReleasesRunMarker(t *testing.T) {
	assignments := newFakeAssignmentRepo(
		assignment("a1", "emp-1", "prod-1", 5),
	)
	saleRepo := newFakeSaleRepo()
	runRepo := newFakeRunRepo()
	svc := newService(assignments, saleRepo, runRepo)

	ctx, cancel := context.WithCancel(context.Background())
	assignments.onFindOpen = cancel

	// The batch context dies mid-run. The run must still be finished so the
	// running marker does not wedge the cohort.
	run, err := svc.ReconcileDay(ctx, testDay())
	require.NoError(t, err)
	assert.Equal(t, reconciliation.RunStatusFailed, run.Status)

	// A healthy rerun for the same cohort goes through.
	assignments.onFindOpen = nil
	second, err := svc.ReconcileDay(context.Background(), testDay())
	require.NoError(t, err)
	assert.NotErrorIs(t, err, reconciliation.ErrRunInProgress)
	assert.Equal(t, reconciliation.RunStatusCompleted, second.Status)
}

func TestReconcileOutstanding_RetriesFailedRecords(t *testing.T) {
	assignments := newFakeAssignmentRepo(
		assignment("a1", "emp-1", "prod-1", 5),
	)
	assignments.failIDs["a1"] = true
	saleRepo := newFakeSaleRepo()
	runRepo := newFakeRunRepo()
	svc := newService(assignments, saleRepo, runRepo)

	run, err := svc.ReconcileDay(context.Background(), testDay())
	require.NoError(t, err)
	require.Equal(t, 1, run.Summary.Failed)
	require.NotContains(t, assignments.outcomes, "a1")

	// The write failure clears before the next scheduled sweep, which picks
	// the cohort back up because the record is still open.
	delete(assignments.failIDs, "a1")

	runs, err := svc.ReconcileOutstanding(context.Background(), testDay().AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, testDay(), runs[0].CohortDate)
	assert.Equal(t, 1, runs[0].Summary.Processed)
	assert.Equal(t, appliedOutcome{inventory.StatusExpired, 5}, assignments.outcomes["a1"])

	// Nothing left open, nothing to sweep.
	runs, err = svc.ReconcileOutstanding(context.Background(), testDay().AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestTriggerRun_DefaultsToToday(t *testing.T) {
	assignments := newFakeAssignmentRepo()
	runRepo := newFakeRunRepo()

	svc := newService(assignments, newFakeSaleRepo(), runRepo)
	resp, err := svc.TriggerRun(context.Background(), reconciliation.TriggerRunRequest{})
	require.NoError(t, err)

	today := time.Now().UTC().Format("2006-01-02")
	assert.Equal(t, today, resp.CohortDate)
	assert.Equal(t, string(reconciliation.RunStatusCompleted), resp.Status)
}

func TestTriggerRun_RejectsBadDate(t *testing.T) {
	svc := newService(newFakeAssignmentRepo(), newFakeSaleRepo(), newFakeRunRepo())

	bad := "02-06-2025"
	_, err := svc.TriggerRun(context.Background(), reconciliation.TriggerRunRequest{CohortDate: &bad})
	assert.Error(t, err)
}

func TestGetRun(t *testing.T) {
	assignments := newFakeAssignmentRepo()
	runRepo := newFakeRunRepo()
	svc := newService(assignments, newFakeSaleRepo(), runRepo)

	_, err := svc.ReconcileDay(context.Background(), testDay())
	require.NoError(t, err)

	resp, err := svc.GetRun(context.Background(), "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", resp.CohortDate)

	_, err = svc.GetRun(context.Background(), "2025-06-03")
	assert.ErrorIs(t, err, reconciliation.ErrRunNotFound)

	_, err = svc.GetRun(context.Background(), "not-a-date")
	assert.ErrorIs(t, err, reconciliation.ErrRunNotFound)
}
