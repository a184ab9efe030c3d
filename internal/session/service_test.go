package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/paramount-detail-site/internal/booking"
	"github.com/wolfman30/paramount-detail-site/internal/observability/metrics"
	"github.com/wolfman30/paramount-detail-site/internal/toast"
)

type recordingForwarder struct {
	mu    sync.Mutex
	calls []booking.Request
	err   error
	gate  chan struct{}
}

func (f *recordingForwarder) Forward(ctx context.Context, req booking.Request) error {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.err
}

func (f *recordingForwarder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type recordingNotifier struct {
	calls int32
	err   error
}

func (n *recordingNotifier) NotifyBookingRequest(ctx context.Context, viewID string, req booking.Request, at time.Time) error {
	atomic.AddInt32(&n.calls, 1)
	return n.err
}

func newTestService(t *testing.T, opts ...Option) (*Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore(time.Minute)
	t.Cleanup(func() { store.Close() })
	opts = append([]Option{WithMetrics(metrics.NewBookingMetrics(prometheus.NewRegistry()))}, opts...)
	return NewService(store, "Standard", opts...), store
}

func fillForm(t *testing.T, svc *Service, id string) {
	t.Helper()
	_, err := svc.UpdateFields(context.Background(), id, booking.Request{
		Name:    "Dana",
		Phone:   "480-555-0100",
		Address: "1 Mill Ave, Tempe",
		Date:    "Sat 10am",
	})
	require.NoError(t, err)
}

func TestService_NewViewAndViewOrNew(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	st, err := svc.NewView(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, st.ID)
	assert.Equal(t, booking.StateEditing, st.Form.State)
	assert.Equal(t, "Standard", st.Form.Fields.Package)

	same, err := svc.ViewOrNew(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, st.ID, same.ID)

	fresh, err := svc.ViewOrNew(ctx, "expired-or-unknown")
	require.NoError(t, err)
	assert.NotEqual(t, st.ID, fresh.ID)

	blank, err := svc.ViewOrNew(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, blank.ID)
	assert.Equal(t, 3, store.Len())
}

func TestService_SubmitWithoutEndpoint(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, _ := newTestService(t, WithNotifier(notifier))
	ctx := context.Background()

	st, err := svc.NewView(ctx)
	require.NoError(t, err)
	fillForm(t, svc, st.ID)

	out, err := svc.Submit(ctx, st.ID)
	require.NoError(t, err)
	assert.False(t, out.Forwarded)
	assert.Equal(t, booking.StateSubmitted, out.View.Form.State)
	assert.True(t, out.View.Form.Done())

	n, ok := out.View.Toast.Get()
	require.True(t, ok)
	assert.Equal(t, toast.RequestSent, n)
	assert.Equal(t, int32(1), atomic.LoadInt32(&notifier.calls))
}

func TestService_SubmitWithEndpoint(t *testing.T) {
	fwd := &recordingForwarder{}
	svc, _ := newTestService(t, WithForwarder(fwd))
	ctx := context.Background()

	st, err := svc.NewView(ctx)
	require.NoError(t, err)
	fillForm(t, svc, st.ID)
	_, err = svc.UpdateField(ctx, st.ID, booking.FieldPackage, "Premium")
	require.NoError(t, err)

	out, err := svc.Submit(ctx, st.ID)
	require.NoError(t, err)
	assert.True(t, out.Forwarded)
	assert.False(t, out.ForwardFailed)
	require.Equal(t, 1, fwd.count())
	assert.Equal(t, booking.Request{
		Name:    "Dana",
		Phone:   "480-555-0100",
		Address: "1 Mill Ave, Tempe",
		Date:    "Sat 10am",
		Package: "Premium",
	}, fwd.calls[0])
}

func TestService_SubmitForwardFailureStillSubmits(t *testing.T) {
	fwd := &recordingForwarder{err: errors.New("connection refused")}
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc, _ := newTestService(t, WithForwarder(fwd), WithNotifier(notifier))
	ctx := context.Background()

	st, err := svc.NewView(ctx)
	require.NoError(t, err)
	fillForm(t, svc, st.ID)

	out, err := svc.Submit(ctx, st.ID)
	require.NoError(t, err)
	assert.True(t, out.ForwardFailed)
	assert.Equal(t, booking.StateSubmitted, out.View.Form.State)
	assert.True(t, out.View.Toast.Visible())
	assert.Equal(t, 1, fwd.count())
}

func TestService_SubmitIncompleteMakesNoTransition(t *testing.T) {
	fwd := &recordingForwarder{}
	svc, _ := newTestService(t, WithForwarder(fwd))
	ctx := context.Background()

	st, err := svc.NewView(ctx)
	require.NoError(t, err)
	_, err = svc.UpdateField(ctx, st.ID, booking.FieldName, "Dana")
	require.NoError(t, err)

	out, err := svc.Submit(ctx, st.ID)
	require.ErrorIs(t, err, booking.ErrIncomplete)
	assert.Equal(t, booking.StateEditing, out.View.Form.State)
	assert.False(t, out.View.Toast.Visible())
	assert.Equal(t, 0, fwd.count())

	got, err := svc.View(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StateEditing, got.Form.State)
}

func TestService_SubmitTwice(t *testing.T) {
	fwd := &recordingForwarder{}
	svc, _ := newTestService(t, WithForwarder(fwd))
	ctx := context.Background()

	st, err := svc.NewView(ctx)
	require.NoError(t, err)
	fillForm(t, svc, st.ID)

	_, err = svc.Submit(ctx, st.ID)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, st.ID)
	require.ErrorIs(t, err, booking.ErrAlreadySubmitted)
	assert.Equal(t, 1, fwd.count())

	_, err = svc.UpdateField(ctx, st.ID, booking.FieldName, "Other")
	assert.ErrorIs(t, err, booking.ErrNotEditable)
}

func TestService_ConcurrentSubmitsForwardOnce(t *testing.T) {
	fwd := &recordingForwarder{gate: make(chan struct{})}
	svc, _ := newTestService(t, WithForwarder(fwd))
	ctx := context.Background()

	st, err := svc.NewView(ctx)
	require.NoError(t, err)
	fillForm(t, svc, st.ID)

	const n = 8
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(ctx, st.ID)
			errs <- err
		}()
	}

	// Wait until every loser has been turned away, then let the winner finish.
	require.Eventually(t, func() bool { return len(errs) == n-1 }, time.Second, 5*time.Millisecond)
	close(fwd.gate)
	wg.Wait()
	close(errs)

	var ok, inFlight int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, booking.ErrSubmissionInFlight):
			inFlight++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, inFlight)
	assert.Equal(t, 1, fwd.count())
}

func TestService_SubmitSurvivesCanceledContext(t *testing.T) {
	fwd := &recordingForwarder{}
	svc, _ := newTestService(t, WithForwarder(fwd))

	st, err := svc.NewView(context.Background())
	require.NoError(t, err)
	fillForm(t, svc, st.ID)

	ctx, cancel := context.WithCancel(context.Background())
	fwd.gate = make(chan struct{})
	done := make(chan Outcome, 1)
	go func() {
		out, err := svc.Submit(ctx, st.ID)
		assert.NoError(t, err)
		done <- out
	}()
	require.Eventually(t, func() bool {
		got, _ := svc.View(context.Background(), st.ID)
		return got.Form.State == booking.StateSubmitting
	}, time.Second, 5*time.Millisecond)
	cancel()
	close(fwd.gate)

	out := <-done
	assert.Equal(t, booking.StateSubmitted, out.View.Form.State)
}

// flakyStore fails the update calls numbered in failOn, counting from one.
type flakyStore struct {
	*MemoryStore
	mu      sync.Mutex
	updates int
	failOn  map[int]error
}

func (s *flakyStore) Update(ctx context.Context, id string, fn func(*State) error) (State, error) {
	s.mu.Lock()
	s.updates++
	err, fail := s.failOn[s.updates]
	s.mu.Unlock()
	if fail {
		return State{}, err
	}
	return s.MemoryStore.Update(ctx, id, fn)
}

func newFlakyService(t *testing.T, fwd booking.Forwarder) (*Service, *flakyStore, string) {
	t.Helper()
	mem := NewMemoryStore(time.Minute)
	t.Cleanup(func() { mem.Close() })
	store := &flakyStore{MemoryStore: mem}
	svc := NewService(store, "Standard", WithForwarder(fwd))
	svc.retryDelay = 0

	st, err := svc.NewView(context.Background())
	require.NoError(t, err)
	fillForm(t, svc, st.ID)
	return svc, store, st.ID
}

func TestService_SubmitRetriesFailedCompletion(t *testing.T) {
	fwd := &recordingForwarder{}
	svc, store, id := newFlakyService(t, fwd)
	ctx := context.Background()

	// Update 1 filled the form, 2 begins, 3 is the first completion attempt.
	store.failOn = map[int]error{3: context.DeadlineExceeded}

	out, err := svc.Submit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, booking.StateSubmitted, out.View.Form.State)
	assert.True(t, out.View.Toast.Visible())
	assert.Equal(t, 1, fwd.count())

	got, err := svc.View(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, booking.StateSubmitted, got.Form.State)
}

func TestService_SubmitRollsBackWhenCompletionKeepsFailing(t *testing.T) {
	fwd := &recordingForwarder{}
	svc, store, id := newFlakyService(t, fwd)
	ctx := context.Background()

	store.failOn = map[int]error{
		3: context.DeadlineExceeded,
		4: context.DeadlineExceeded,
		5: context.DeadlineExceeded,
	}

	out, err := svc.Submit(ctx, id)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, booking.StateEditing, out.View.Form.State)

	got, err := svc.View(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, booking.StateEditing, got.Form.State)
	assert.Equal(t, "Dana", got.Form.Fields.Name)
	assert.True(t, got.Form.CanSubmit())

	out, err = svc.Submit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, booking.StateSubmitted, out.View.Form.State)
	assert.Equal(t, 2, fwd.count())
}

func TestService_ToastAndMenu(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	st, err := svc.NewView(ctx)
	require.NoError(t, err)

	st, err = svc.ShowToast(ctx, st.ID, toast.Notification{Title: "First", Message: "one"})
	require.NoError(t, err)
	st, err = svc.ShowToast(ctx, st.ID, toast.Notification{Title: "Second", Message: "two"})
	require.NoError(t, err)
	n, ok := st.Toast.Get()
	require.True(t, ok)
	assert.Equal(t, "Second", n.Title)

	st, err = svc.CloseToast(ctx, st.ID)
	require.NoError(t, err)
	assert.False(t, st.Toast.Visible())

	st, err = svc.ToggleMenu(ctx, st.ID)
	require.NoError(t, err)
	assert.True(t, st.MenuOpen)
	st, err = svc.CloseMenu(ctx, st.ID)
	require.NoError(t, err)
	assert.False(t, st.MenuOpen)

	_, err = svc.ToggleMenu(ctx, "missing")
	assert.ErrorIs(t, err, ErrViewNotFound)
}
