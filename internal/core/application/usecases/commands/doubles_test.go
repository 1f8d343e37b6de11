package commands_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/document"
	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/installation"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/manufacturing"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUoW records the transaction calls and hands out in-memory repositories.
// draftRepo, when set, replaces the in-memory draft repository.
type MockUoW struct {
	mock.Mock

	draftRepo ports.DraftRepository
	drafts    *fakeDrafts
	curtains  *fakeCurtains
	orders    *fakeOrders
	payments  *fakePayments
	mos       *fakeManufacturingOrders
	lines     *fakeProductionLines
	installs  *fakeInstallations
	jobs      *fakeDocumentJobs
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		drafts:   &fakeDrafts{items: map[kernel.UUID]*draft.Draft{}},
		curtains: &fakeCurtains{items: map[kernel.UUID]*curtain.Curtain{}},
		orders:   &fakeOrders{items: map[kernel.UUID]*order.Order{}},
		payments: &fakePayments{},
		mos:      &fakeManufacturingOrders{items: map[kernel.UUID]*manufacturing.ManufacturingOrder{}},
		lines:    &fakeProductionLines{},
		installs: &fakeInstallations{items: map[kernel.UUID]*installation.Schedule{}},
		jobs:     &fakeDocumentJobs{items: map[kernel.UUID]*document.Job{}},
	}
}

// expectTx allows a successful Begin, Commit and Rollback on ctx.
func (m *MockUoW) expectTx(ctx context.Context) *MockUoW {
	m.On("Begin", ctx).Return(nil)
	m.On("Commit", ctx).Return(nil)
	m.On("Rollback", ctx).Return(nil)
	return m
}

// expectAnyTx is expectTx for fixtures shared with subtests.
func (m *MockUoW) expectAnyTx() *MockUoW {
	m.On("Begin", mock.Anything).Return(nil)
	m.On("Commit", mock.Anything).Return(nil)
	m.On("Rollback", mock.Anything).Return(nil)
	return m
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DraftRepository() ports.DraftRepository {
	if m.draftRepo != nil {
		return m.draftRepo
	}
	return m.drafts
}
func (m *MockUoW) CurtainRepository() ports.CurtainRepository { return m.curtains }
func (m *MockUoW) OrderRepository() ports.OrderRepository     { return m.orders }
func (m *MockUoW) PaymentRepository() ports.PaymentRepository { return m.payments }
func (m *MockUoW) ManufacturingOrderRepository() ports.ManufacturingOrderRepository {
	return m.mos
}
func (m *MockUoW) ProductionLineRepository() ports.ProductionLineRepository { return m.lines }
func (m *MockUoW) InstallationRepository() ports.InstallationRepository     { return m.installs }
func (m *MockUoW) DocumentJobRepository() ports.DocumentJobRepository       { return m.jobs }

type MockDraftUoWFactory struct{ mock.Mock }

func (m *MockDraftUoWFactory) Create() commands.DraftUoW {
	args := m.Called()
	return args.Get(0).(commands.DraftUoW)
}

type MockCurtainUoWFactory struct{ mock.Mock }

func (m *MockCurtainUoWFactory) Create() commands.CurtainUoW {
	args := m.Called()
	return args.Get(0).(commands.CurtainUoW)
}

type MockManufacturingUoWFactory struct{ mock.Mock }

func (m *MockManufacturingUoWFactory) Create() commands.ManufacturingUoW {
	args := m.Called()
	return args.Get(0).(commands.ManufacturingUoW)
}

type MockDocumentUoWFactory struct{ mock.Mock }

func (m *MockDocumentUoWFactory) Create() commands.DocumentUoW {
	args := m.Called()
	return args.Get(0).(commands.DocumentUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type fakeDrafts struct {
	items     map[kernel.UUID]*draft.Draft
	locked    []kernel.UUID
	updateErr error
}

func (f *fakeDrafts) Add(_ context.Context, d *draft.Draft) error {
	f.items[d.ID()] = d
	return nil
}
func (f *fakeDrafts) Update(_ context.Context, d *draft.Draft) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.items[d.ID()] = d
	return nil
}
func (f *fakeDrafts) Get(_ context.Context, id kernel.UUID) (*draft.Draft, error) {
	d, ok := f.items[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("draft", id.String())
	}
	return d, nil
}
func (f *fakeDrafts) GetForUpdate(ctx context.Context, id kernel.UUID) (*draft.Draft, error) {
	return f.Get(ctx, id)
}
func (f *fakeDrafts) Delete(_ context.Context, id kernel.UUID) error {
	delete(f.items, id)
	return nil
}
func (f *fakeDrafts) CountOpenByOwner(_ context.Context, owner kernel.UUID) (int, error) {
	n := 0
	for _, d := range f.items {
		if d.OwnerID().IsEqual(owner) && !d.IsCompleted() {
			n++
		}
	}
	return n, nil
}
func (f *fakeDrafts) LockItem(_ context.Context, itemID kernel.UUID) error {
	f.locked = append(f.locked, itemID)
	return nil
}

type fakeCurtains struct {
	items map[kernel.UUID]*curtain.Curtain
}

func (f *fakeCurtains) Add(_ context.Context, c *curtain.Curtain) error {
	f.items[c.ID()] = c
	return nil
}
func (f *fakeCurtains) Update(_ context.Context, c *curtain.Curtain) error {
	f.items[c.ID()] = c
	return nil
}
func (f *fakeCurtains) Get(_ context.Context, id kernel.UUID) (*curtain.Curtain, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("curtain", id.String())
	}
	return c, nil
}
func (f *fakeCurtains) ListByOwner(_ context.Context, owner curtain.Owner) ([]*curtain.Curtain, error) {
	var out []*curtain.Curtain
	for _, c := range f.items {
		if c.Owner().IsEqual(owner) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Measurements().Sequence < out[j].Measurements().Sequence })
	return out, nil
}
func (f *fakeCurtains) Delete(_ context.Context, id kernel.UUID) error {
	delete(f.items, id)
	return nil
}
func (f *fakeCurtains) DeleteByOwner(_ context.Context, owner curtain.Owner) error {
	for id, c := range f.items {
		if c.Owner().IsEqual(owner) {
			delete(f.items, id)
		}
	}
	return nil
}
func (f *fakeCurtains) ReservedQuantity(_ context.Context, item curtain.ItemRef, exclude *kernel.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, c := range f.items {
		for _, l := range c.Lines() {
			if !l.ItemRef().IsEqual(item) || (exclude != nil && l.ID().IsEqual(*exclude)) {
				continue
			}
			sum = sum.Add(l.Quantity().Decimal())
		}
	}
	return sum, nil
}
func (f *fakeCurtains) DeleteLinesByItem(_ context.Context, item curtain.ItemRef) error {
	for _, c := range f.items {
		for _, l := range c.Lines() {
			if l.ItemRef().IsEqual(item) {
				if err := c.RemoveLine(l.ID()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
func (f *fakeCurtains) TransferOwnership(_ context.Context, draftID, orderID kernel.UUID) error {
	for _, c := range f.items {
		if c.Owner().IsEqual(curtain.DraftOwner(draftID)) {
			if err := c.TransferToOrder(orderID); err != nil {
				return err
			}
		}
	}
	return nil
}

// lineCount counts the lines of every curtain owned by owner.
func (f *fakeCurtains) lineCount(owner curtain.Owner) int {
	n := 0
	for _, c := range f.items {
		if c.Owner().IsEqual(owner) {
			n += len(c.Lines())
		}
	}
	return n
}

type fakeOrders struct {
	items         map[kernel.UUID]*order.Order
	statusUpdates int
}

func (f *fakeOrders) Add(_ context.Context, o *order.Order) error {
	f.items[o.ID()] = o
	return nil
}
func (f *fakeOrders) Update(_ context.Context, o *order.Order) error {
	f.items[o.ID()] = o
	return nil
}
func (f *fakeOrders) UpdateStatus(_ context.Context, o *order.Order) error {
	f.statusUpdates++
	f.items[o.ID()] = o
	return nil
}
func (f *fakeOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := f.items[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}
func (f *fakeOrders) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return f.Get(ctx, id)
}

type fakePayments struct {
	items []*order.Payment
}

func (f *fakePayments) Add(_ context.Context, p *order.Payment) error {
	f.items = append(f.items, p)
	return nil
}
func (f *fakePayments) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*order.Payment, error) {
	var out []*order.Payment
	for _, p := range f.items {
		if p.OrderID().IsEqual(orderID) {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakePayments) DeleteByOrder(_ context.Context, orderID kernel.UUID) error {
	kept := f.items[:0]
	for _, p := range f.items {
		if !p.OrderID().IsEqual(orderID) {
			kept = append(kept, p)
		}
	}
	f.items = kept
	return nil
}

type fakeManufacturingOrders struct {
	items map[kernel.UUID]*manufacturing.ManufacturingOrder
}

func (f *fakeManufacturingOrders) Add(_ context.Context, mo *manufacturing.ManufacturingOrder) error {
	f.items[mo.ID()] = mo
	return nil
}
func (f *fakeManufacturingOrders) Update(_ context.Context, mo *manufacturing.ManufacturingOrder) error {
	f.items[mo.ID()] = mo
	return nil
}
func (f *fakeManufacturingOrders) Get(_ context.Context, id kernel.UUID) (*manufacturing.ManufacturingOrder, error) {
	mo, ok := f.items[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("manufacturing order", id.String())
	}
	return mo, nil
}
func (f *fakeManufacturingOrders) GetForUpdate(ctx context.Context, id kernel.UUID) (*manufacturing.ManufacturingOrder, error) {
	return f.Get(ctx, id)
}
func (f *fakeManufacturingOrders) GetByOrder(_ context.Context, orderID kernel.UUID) (*manufacturing.ManufacturingOrder, error) {
	for _, mo := range f.items {
		if mo.OrderID().IsEqual(orderID) {
			return mo, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("manufacturing order", orderID.String())
}

type fakeProductionLines struct {
	items []*manufacturing.ProductionLine
}

func (f *fakeProductionLines) Add(_ context.Context, l *manufacturing.ProductionLine) error {
	f.items = append(f.items, l)
	return nil
}
func (f *fakeProductionLines) ListActive(_ context.Context) ([]*manufacturing.ProductionLine, error) {
	var out []*manufacturing.ProductionLine
	for _, l := range f.items {
		if l.IsActive() {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority() > out[j].Priority() })
	return out, nil
}

type fakeInstallations struct {
	items map[kernel.UUID]*installation.Schedule
}

func (f *fakeInstallations) Add(_ context.Context, s *installation.Schedule) error {
	f.items[s.ID()] = s
	return nil
}
func (f *fakeInstallations) Update(_ context.Context, s *installation.Schedule) error {
	f.items[s.ID()] = s
	return nil
}
func (f *fakeInstallations) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*installation.Schedule, error) {
	var out []*installation.Schedule
	for _, s := range f.items {
		if s.OrderID().IsEqual(orderID) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeDocumentJobs struct {
	items map[kernel.UUID]*document.Job
}

func (f *fakeDocumentJobs) Add(_ context.Context, j *document.Job) error {
	f.items[j.OrderID()] = j
	return nil
}
func (f *fakeDocumentJobs) Update(_ context.Context, j *document.Job) error {
	f.items[j.OrderID()] = j
	return nil
}
func (f *fakeDocumentJobs) Get(_ context.Context, orderID kernel.UUID) (*document.Job, error) {
	j, ok := f.items[orderID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("document job", orderID.String())
	}
	return j, nil
}
func (f *fakeDocumentJobs) ListDue(_ context.Context, limit int) ([]*document.Job, error) {
	var out []*document.Job
	for _, j := range f.items {
		if j.IsDue() && len(out) < limit {
			out = append(out, j)
		}
	}
	return out, nil
}

// stubIdentity grants capabilities per actor and knows who manages whom.
type stubIdentity struct {
	caps     map[kernel.UUID][]string
	managers map[kernel.UUID]kernel.UUID
}

func newStubIdentity() *stubIdentity {
	return &stubIdentity{caps: map[kernel.UUID][]string{}, managers: map[kernel.UUID]kernel.UUID{}}
}

func (s *stubIdentity) grant(actor kernel.UUID, caps ...manufacturing.Capability) {
	for _, c := range caps {
		s.caps[actor] = append(s.caps[actor], string(c))
	}
}

func (s *stubIdentity) HasCapability(_ context.Context, actor kernel.UUID, capability string) (bool, error) {
	for _, c := range s.caps[actor] {
		if c == capability {
			return true, nil
		}
	}
	return false, nil
}
func (s *stubIdentity) CanManage(_ context.Context, manager, actor kernel.UUID) (bool, error) {
	m, ok := s.managers[actor]
	return ok && m.IsEqual(manager), nil
}
func (s *stubIdentity) ResolveSubject(_ context.Context, subject string) (kernel.UUID, error) {
	return kernel.UUID{}, errs.NewObjectNotFoundError("subject", subject)
}

type stubCatalog struct {
	products map[kernel.UUID]ports.Product
}

func (s stubCatalog) Product(_ context.Context, id kernel.UUID) (ports.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return ports.Product{}, errs.NewObjectNotFoundError("product", id.String())
	}
	return p, nil
}

type fakeLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func newFakeLocker() *fakeLocker { return &fakeLocker{held: map[string]bool{}} }

func (l *fakeLocker) Acquire(_ context.Context, key string, _ time.Duration) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, ports.ErrLockHeld
	}
	l.held[key] = true
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
		return nil
	}, nil
}

type recordingNotifier struct {
	events []ports.Event
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, e ports.Event) error {
	n.events = append(n.events, e)
	return n.err
}

type recordingQueue struct {
	orders []kernel.UUID
}

func (q *recordingQueue) Enqueue(orderID, _ kernel.UUID) {
	q.orders = append(q.orders, orderID)
}

type stubGenerator struct {
	calls int
	err   error
}

func (g *stubGenerator) GenerateContractDocument(_ context.Context, _, _ kernel.UUID) error {
	g.calls++
	return g.err
}

var errBoom = errors.New("boom")

// readyDraft builds a draft of orderType with steps 1-4 complete and the
// given items, paid in part by card.
func readyDraft(t *testing.T, owner kernel.UUID, orderType kernel.OrderType, items ...*draft.Item) *draft.Draft {
	t.Helper()
	customer, branch := kernel.NewUUID(), kernel.NewUUID()
	d, err := draft.NewDraft(kernel.NewUUID(), owner, nil, nil)
	require.NoError(t, err)
	require.NoError(t, d.SetBasicInfo(owner, draft.BasicInfo{CustomerID: &customer, BranchID: &branch}))
	require.NoError(t, d.MarkStepComplete(draft.StepBasicInfo))
	contract := ""
	if orderType.RequiresContract() {
		contract = "C-1"
	}
	require.NoError(t, d.SetOrderType(owner, orderType, "INV-1", contract))
	require.NoError(t, d.MarkStepComplete(draft.StepOrderType))
	for _, item := range items {
		require.NoError(t, d.AddItem(owner, item))
	}
	require.NoError(t, d.MarkStepComplete(draft.StepItems))
	require.NoError(t, d.SetPayment(owner, draft.Payment{Method: draft.PaymentCard, PaidAmount: readyPaid, Reference: "R-1"}))
	require.NoError(t, d.MarkStepComplete(draft.StepPayment))
	return d
}

func newItem(t *testing.T, owner kernel.UUID, classification draft.Classification, quantity string) *draft.Item {
	t.Helper()
	item, err := draft.NewItem(kernel.NewUUID(), kernel.NewUUID(), kernel.MustQuantity(quantity),
		decimal.NewFromInt(20), decimal.Zero, classification, owner)
	require.NoError(t, err)
	return item
}

func newCurtain(t *testing.T, owner curtain.Owner, sequence int) *curtain.Curtain {
	t.Helper()
	c, err := curtain.NewCurtain(kernel.NewUUID(), owner, curtain.Measurements{
		Sequence:  sequence,
		Room:      "living room",
		Width:     decimal.NewFromInt(180),
		Height:    decimal.NewFromInt(250),
		MountType: curtain.MountWall,
	})
	require.NoError(t, err)
	return c
}
