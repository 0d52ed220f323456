package leaveform

import (
	"context"
	"errors"
	"regexp"

	"github.com/caaaae/E-Leave/internal/api"
	"github.com/caaaae/E-Leave/internal/shared/apperror"

	"go.uber.org/zap"
)

var (
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	usDateRe  = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
)

// NormalizeDate canonicalizes the two recognized input formats. Anything
// else passes through unchanged; required-field and range checks belong to
// the form's input constraints, not here.
func NormalizeDate(s string) string {
	if isoDateRe.MatchString(s) {
		return s
	}
	if m := usDateRe.FindStringSubmatch(s); m != nil {
		return m[3] + "-" + m[1] + "-" + m[2]
	}
	return s
}

// SickLeaveWarning is informational only; the submission proceeds.
const SickLeaveWarning = "No supporting document attached. Sick Leave documents must follow within 3 days or the request auto-expires."

// LeaveCreator is the one remote operation the pipeline needs.
type LeaveCreator interface {
	CreateLeave(ctx context.Context, req api.CreateLeaveRequest) (*api.Leave, error)
}

// Result reports a completed submission.
type Result struct {
	Leave   *api.Leave
	Warning string // non-blocking notice shown alongside the outcome
}

// Pipeline turns the controller's state into a create-leave call and maps
// the outcome back onto the form: reset on success, untouched on failure.
type Pipeline struct {
	api    LeaveCreator
	logger *zap.Logger
}

func NewPipeline(creator LeaveCreator) *Pipeline {
	return &Pipeline{
		api:    creator,
		logger: zap.L().Named("leaveform.submit"),
	}
}

// Submit runs one submission attempt. At most one attempt is in flight per
// controller; a concurrent call fails fast with ErrSubmitInFlight. Any
// failure is terminal to this attempt only: the form state and the saved
// draft stay exactly as they were so the user can correct and retry.
func (p *Pipeline) Submit(ctx context.Context, c *Controller) (res *Result, err error) {
	if !c.beginSubmit() {
		return nil, apperror.ErrSubmitInFlight
	}
	defer c.endSubmit()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("submission panicked", zap.Any("recover", r))
			res = nil
			err = apperror.ErrInternal
		}
	}()

	s := c.State()
	req := api.CreateLeaveRequest{
		EmployeeName: s.EmployeeName,
		EmployeeID:   s.EmployeeID,
		Email:        s.Email,
		PhoneNumber:  s.PhoneNumber,
		Department:   s.Department,
		LeaveType:    s.LeaveType,
		StartDate:    NormalizeDate(s.StartDate),
		EndDate:      NormalizeDate(s.EndDate),
		Reason:       s.Reason,
		Status:       StatusPending,
		Attachments:  s.Attachments,
	}

	res = &Result{}
	if s.LeaveType == LeaveTypeSick && len(s.Attachments) == 0 {
		res.Warning = SickLeaveWarning
		p.logger.Info("sick leave submitted without documents")
	}

	created, err := p.api.CreateLeave(ctx, req)
	if err != nil {
		p.logger.Warn("submission failed", zap.Error(err))
		return nil, classifySubmitError(err)
	}
	res.Leave = created

	if err := c.Reset(ctx); err != nil {
		// the request was accepted; a failed cleanup must not look like a
		// failed submission
		p.logger.Warn("draft cleanup after submit failed", zap.Error(err))
	}
	return res, nil
}

// classifySubmitError keeps already-classified outcomes (server message,
// network unreachable) and downgrades anything unexpected to the generic
// message.
func classifySubmitError(err error) error {
	var ae *apperror.AppError
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apperror.Wrap(err, apperror.CodeInternalError, apperror.ErrInternal.Message, 0)
}
