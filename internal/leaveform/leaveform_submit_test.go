package leaveform_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/caaaae/E-Leave/internal/api"
	"github.com/caaaae/E-Leave/internal/leaveform"
	"github.com/caaaae/E-Leave/internal/localstore"
	"github.com/caaaae/E-Leave/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

type fakeLeaveCreator struct {
	mu       sync.Mutex
	calls    int
	lastReq  api.CreateLeaveRequest
	createFn func(ctx context.Context, req api.CreateLeaveRequest) (*api.Leave, error)
}

func (f *fakeLeaveCreator) CreateLeave(ctx context.Context, req api.CreateLeaveRequest) (*api.Leave, error) {
	f.mu.Lock()
	f.calls++
	f.lastReq = req
	f.mu.Unlock()
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return &api.Leave{ID: 1, Status: "Pending"}, nil
}

func (f *fakeLeaveCreator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeLeaveCreator) last() api.CreateLeaveRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastReq
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2024-01-05", "2024-01-05"},
		{"01/05/2024", "2024-01-05"},
		{"5 Jan 2024", "5 Jan 2024"}, // unrecognized formats pass through
		{"", ""},
		{"2024/01/05", "2024/01/05"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, leaveform.NormalizeDate(tc.in))
	}
}

func fillValidForm(t *testing.T, c *leaveform.Controller) {
	t.Helper()
	assert.NoError(t, c.LoadProfile(context.Background(), fakeProfileSource{profile: &api.Profile{
		FirstName: "Jamie", LastName: "Cruz", EmployeeID: "EMP-204",
		Email: "jamie@example.com", PhoneNumber: "555-0104",
	}}))
	assert.NoError(t, c.SetField(leaveform.FieldLeaveType, "Annual Leave"))
	assert.NoError(t, c.SetField(leaveform.FieldStartDate, "2026-09-07"))
	assert.NoError(t, c.SetField(leaveform.FieldEndDate, "2026-09-11"))
	assert.NoError(t, c.SetField(leaveform.FieldReason, "family trip"))
}

func TestSubmitSuccessResetsFormAndDraft(t *testing.T) {
	kv := localstore.NewMemoryStore()
	c := newTestController(t, kv)
	fillValidForm(t, c)
	time.Sleep(settleWait) // let the autosave land first

	creator := &fakeLeaveCreator{createFn: func(_ context.Context, _ api.CreateLeaveRequest) (*api.Leave, error) {
		return &api.Leave{ID: 9, Status: "Pending", DeadlineForDocs: "2026-09-01"}, nil
	}}
	res, err := leaveform.NewPipeline(creator).Submit(context.Background(), c)
	assert.NoError(t, err)
	assert.Equal(t, 9, res.Leave.ID)
	assert.Empty(t, res.Warning)

	s := c.State()
	assert.Equal(t, "Jamie Cruz", s.EmployeeName) // profile fields retained
	assert.Equal(t, leaveform.DefaultDepartment, s.Department)
	assert.Empty(t, s.LeaveType)
	assert.Empty(t, s.StartDate)
	assert.Empty(t, s.Attachments)

	_, err = kv.Get(context.Background(), "leave_form_draft")
	assert.ErrorIs(t, err, localstore.ErrNotFound)
}

func TestSubmitFailureLeavesEverythingUntouched(t *testing.T) {
	kv := localstore.NewMemoryStore()
	c := newTestController(t, kv)
	fillValidForm(t, c)
	c.AddFiles(api.Attachment{Name: "itinerary.pdf", Content: []byte("trip")})
	time.Sleep(settleWait)

	before := c.State()
	draftBefore, err := kv.Get(context.Background(), "leave_form_draft")
	assert.NoError(t, err)

	creator := &fakeLeaveCreator{createFn: func(_ context.Context, _ api.CreateLeaveRequest) (*api.Leave, error) {
		return nil, apperror.New(apperror.CodeServerRejected, "overlapping leave exists", 409)
	}}
	_, err = leaveform.NewPipeline(creator).Submit(context.Background(), c)
	var ae *apperror.AppError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, "overlapping leave exists", ae.Message)

	assert.Equal(t, before, c.State())
	draftAfter, err := kv.Get(context.Background(), "leave_form_draft")
	assert.NoError(t, err)
	assert.Equal(t, draftBefore, draftAfter)
}

func TestSubmitNetworkFailureKeepsForm(t *testing.T) {
	c := newTestController(t, localstore.NewMemoryStore())
	fillValidForm(t, c)
	before := c.State()

	creator := &fakeLeaveCreator{createFn: func(_ context.Context, _ api.CreateLeaveRequest) (*api.Leave, error) {
		return nil, apperror.ErrNetworkUnreachable
	}}
	_, err := leaveform.NewPipeline(creator).Submit(context.Background(), c)
	assert.Equal(t, apperror.CodeNetworkUnreachable, apperror.CodeOf(err))
	assert.Equal(t, before, c.State())
}

func TestSickLeaveWithoutDocsWarnsButSubmits(t *testing.T) {
	c := newTestController(t, localstore.NewMemoryStore())
	fillValidForm(t, c)
	assert.NoError(t, c.SetField(leaveform.FieldLeaveType, "Sick Leave"))

	creator := &fakeLeaveCreator{}
	res, err := leaveform.NewPipeline(creator).Submit(context.Background(), c)
	assert.NoError(t, err)
	assert.Equal(t, leaveform.SickLeaveWarning, res.Warning)
	assert.Equal(t, 1, creator.callCount())
}

func TestSickLeaveWithDocsDoesNotWarn(t *testing.T) {
	c := newTestController(t, localstore.NewMemoryStore())
	fillValidForm(t, c)
	assert.NoError(t, c.SetField(leaveform.FieldLeaveType, "Sick Leave"))
	c.AddFiles(api.Attachment{Name: "note.pdf"})

	creator := &fakeLeaveCreator{}
	res, err := leaveform.NewPipeline(creator).Submit(context.Background(), c)
	assert.NoError(t, err)
	assert.Empty(t, res.Warning)
}

func TestSubmitNormalizesDatesAndPinsStatus(t *testing.T) {
	c := newTestController(t, localstore.NewMemoryStore())
	fillValidForm(t, c)
	assert.NoError(t, c.SetField(leaveform.FieldStartDate, "09/07/2026"))
	assert.NoError(t, c.SetField(leaveform.FieldEndDate, "09/11/2026"))

	creator := &fakeLeaveCreator{}
	_, err := leaveform.NewPipeline(creator).Submit(context.Background(), c)
	assert.NoError(t, err)

	req := creator.last()
	assert.Equal(t, "2026-09-07", req.StartDate)
	assert.Equal(t, "2026-09-11", req.EndDate)
	assert.Equal(t, leaveform.StatusPending, req.Status)
	assert.Equal(t, "EMP-204", req.EmployeeID)
}

func TestConcurrentSubmitRejected(t *testing.T) {
	c := newTestController(t, localstore.NewMemoryStore())
	fillValidForm(t, c)

	release := make(chan struct{})
	started := make(chan struct{})
	creator := &fakeLeaveCreator{createFn: func(_ context.Context, _ api.CreateLeaveRequest) (*api.Leave, error) {
		close(started)
		<-release
		return &api.Leave{ID: 1}, nil
	}}
	pipeline := leaveform.NewPipeline(creator)

	done := make(chan error, 1)
	go func() {
		_, err := pipeline.Submit(context.Background(), c)
		done <- err
	}()

	<-started
	assert.True(t, c.Submitting())
	_, err := pipeline.Submit(context.Background(), c)
	assert.ErrorIs(t, err, apperror.ErrSubmitInFlight)

	close(release)
	assert.NoError(t, <-done)
	assert.Equal(t, 1, creator.callCount())
	assert.False(t, c.Submitting())
}

func TestSubmitPanicIsContained(t *testing.T) {
	c := newTestController(t, localstore.NewMemoryStore())
	fillValidForm(t, c)
	before := c.State()

	creator := &fakeLeaveCreator{createFn: func(_ context.Context, _ api.CreateLeaveRequest) (*api.Leave, error) {
		panic("programming error")
	}}
	res, err := leaveform.NewPipeline(creator).Submit(context.Background(), c)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, apperror.ErrInternal)

	// still usable after the contained failure
	assert.Equal(t, before, c.State())
	assert.False(t, c.Submitting())
}
