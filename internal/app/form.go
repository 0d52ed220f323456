package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/caaaae/E-Leave/internal/api"
	"github.com/caaaae/E-Leave/internal/draft"
	"github.com/caaaae/E-Leave/internal/leaveform"
	"github.com/caaaae/E-Leave/internal/shared/apperror"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var validate = apperror.NewValidator()

// submitCheck mirrors what the form refuses to send. Department and leave
// type are closed sets, dates are checked separately because their
// ordering rules need parsed values.
type submitCheck struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Department string `json:"department" validate:"required,oneof='Computer Science' 'Engineering' 'Human Resources' 'Finance' 'Marketing'"`
	LeaveType  string `json:"leave_type" validate:"required,oneof='Annual Leave' 'Sick Leave' 'Maternity Leave' 'Paternity Leave' 'Unpaid Leave'"`
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
	Reason     string `json:"reason_leave" validate:"required"`
}

// validateForm is the pre-flight check before submission. Dates are
// compared on their normalized forms so MM/DD/YYYY input gets the same
// treatment it will get on the wire.
func validateForm(s leaveform.FormState, now time.Time) error {
	check := submitCheck{
		EmployeeID: s.EmployeeID,
		Department: s.Department,
		LeaveType:  s.LeaveType,
		StartDate:  s.StartDate,
		EndDate:    s.EndDate,
		Reason:     s.Reason,
	}
	if err := validate.Struct(check); err != nil {
		return apperror.MapValidationError(err)
	}

	start, err := time.Parse("2006-01-02", leaveform.NormalizeDate(s.StartDate))
	if err != nil {
		return apperror.New(apperror.CodeInvalidInput, "start date must be YYYY-MM-DD", 0)
	}
	end, err := time.Parse("2006-01-02", leaveform.NormalizeDate(s.EndDate))
	if err != nil {
		return apperror.New(apperror.CodeInvalidInput, "end date must be YYYY-MM-DD", 0)
	}
	if end.Before(start) {
		return apperror.New(apperror.CodeInvalidInput, "end date must not be before start date", 0)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if start.Before(today) {
		return apperror.New(apperror.CodeInvalidInput, "start date must not be in the past", 0)
	}
	return nil
}

var titler = cases.Title(language.English)

// normalizeChoice forgives casing on enumerated fields: "annual leave"
// and "ANNUAL LEAVE" both land on "Annual Leave". Anything that still
// does not match an option is returned as typed and rejected later.
func normalizeChoice(input string, options []string) string {
	input = strings.TrimSpace(input)
	if slices.Contains(options, input) {
		return input
	}
	titled := titler.String(strings.ToLower(input))
	if slices.Contains(options, titled) {
		return titled
	}
	return input
}

type fieldPrompt struct {
	field   leaveform.Field
	label   string
	options []string
}

func formPrompts() []fieldPrompt {
	return []fieldPrompt{
		{leaveform.FieldDepartment, "Department", leaveform.Departments},
		{leaveform.FieldLeaveType, "Leave Type", leaveform.LeaveTypes},
		{leaveform.FieldStartDate, "Start Date (YYYY-MM-DD)", nil},
		{leaveform.FieldEndDate, "End Date (YYYY-MM-DD)", nil},
		{leaveform.FieldReason, "Reason for Leave", nil},
	}
}

// cmdApply is the interactive leave-request form. Every keystroke-level
// edit goes through the controller so the draft autosaves behind the
// prompts, and an abandoned session resumes where it stopped.
func (a *App) cmdApply(ctx context.Context) error {
	drafts := draft.NewStore(a.kv)
	c := leaveform.NewController(ctx, drafts,
		leaveform.WithSaveDelay(a.cfg.AutosaveDelay),
		leaveform.WithSaveNotify(func(st leaveform.SaveStatus) {
			fmt.Fprintf(a.out, "  (draft %s)\n", st)
		}),
	)
	defer c.Close()

	if err := c.LoadProfile(ctx, a.client); err != nil {
		a.logger.Warn("profile load failed", zap.Error(err))
		fmt.Fprintln(a.out, "Could not load your profile; identity fields may be blank.")
	}

	s := c.State()
	if s.LeaveType != "" || s.StartDate != "" || s.Reason != "" {
		fmt.Fprintln(a.out, "Resuming your saved draft.")
	}
	if s.EmployeeName != "" {
		fmt.Fprintf(a.out, "Requesting as %s (%s)\n", s.EmployeeName, s.EmployeeID)
	}

	for {
		if err := a.promptFields(c); err != nil {
			return err
		}
		a.promptAttachments(c)

		err := validateForm(c.State(), time.Now())
		if err == nil {
			break
		}
		fmt.Fprintln(a.out, "Cannot submit yet:", apperror.MessageOf(err))
		if a.inEOF {
			return err
		}
	}

	if days := c.TotalDays(); days > 0 {
		fmt.Fprintf(a.out, "Total days requested: %d\n", days)
	}
	if !a.confirm("Submit this leave request?") {
		if err := c.Flush(ctx); err != nil {
			a.logger.Warn("draft flush failed", zap.Error(err))
			fmt.Fprintln(a.out, "Not submitted. Your draft could not be saved.")
			return nil
		}
		fmt.Fprintln(a.out, "Not submitted. Your draft is saved for next time.")
		return nil
	}

	res, err := leaveform.NewPipeline(a.client).Submit(ctx, c)
	if err != nil {
		return err
	}
	if res.Warning != "" {
		fmt.Fprintln(a.out, "Warning:", res.Warning)
	}
	fmt.Fprintln(a.out, "Leave request submitted successfully!")
	if res.Leave != nil && res.Leave.DeadlineForDocs != "" {
		fmt.Fprintf(a.out, "Supporting documents are due by %s.\n", res.Leave.DeadlineForDocs)
	}
	return nil
}

func (a *App) promptFields(c *leaveform.Controller) error {
	for _, p := range formPrompts() {
		if p.options != nil {
			fmt.Fprintf(a.out, "%s (%s)\n", p.label, strings.Join(p.options, ", "))
		}
		current := fieldValue(c.State(), p.field)
		value := a.promptLine(p.label, current)
		if p.options != nil {
			value = normalizeChoice(value, p.options)
		}
		if value == current {
			continue
		}
		if err := c.SetField(p.field, value); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) promptAttachments(c *leaveform.Controller) {
	for {
		path := a.promptLine("Attach a file (path, empty to continue)", "")
		if path == "" {
			return
		}
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(a.out, "Cannot read file:", err)
			continue
		}
		name := filepath.Base(path)
		c.AddFiles(api.Attachment{Name: name, Content: content})
		fmt.Fprintf(a.out, "Attached %s (%d bytes).\n", name, len(content))
	}
}

func fieldValue(s leaveform.FormState, f leaveform.Field) string {
	switch f {
	case leaveform.FieldDepartment:
		return s.Department
	case leaveform.FieldLeaveType:
		return s.LeaveType
	case leaveform.FieldStartDate:
		return s.StartDate
	case leaveform.FieldEndDate:
		return s.EndDate
	case leaveform.FieldReason:
		return s.Reason
	default:
		return ""
	}
}
