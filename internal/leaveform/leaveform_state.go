// Package leaveform owns the in-progress leave request: the form state,
// the controller that wires edits to the debounced draft autosave, and the
// submission pipeline.
package leaveform

import (
	"strings"
	"time"

	"github.com/caaaae/E-Leave/internal/api"
	"github.com/caaaae/E-Leave/internal/draft"
	"github.com/caaaae/E-Leave/internal/shared/apperror"
)

const dateLayout = "2006-01-02"

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

const (
	DefaultDepartment = "Computer Science"
	LeaveTypeSick     = "Sick Leave"
)

var Departments = []string{
	"Computer Science",
	"Engineering",
	"Human Resources",
	"Finance",
	"Marketing",
}

var LeaveTypes = []string{
	"Annual Leave",
	"Sick Leave",
	"Maternity Leave",
	"Paternity Leave",
	"Unpaid Leave",
}

// Field names a writable form slot. The profile-derived fields and the
// status are not settable through the controller.
type Field string

const (
	FieldDepartment Field = "department"
	FieldLeaveType  Field = "leave_type"
	FieldStartDate  Field = "start_date"
	FieldEndDate    Field = "end_date"
	FieldReason     Field = "reason_leave"

	// read-only, populated from the profile fetch
	FieldEmployeeName Field = "employee_name"
	FieldEmployeeID   Field = "employee_id"
	FieldEmail        Field = "email"
	FieldPhoneNumber  Field = "phoneNumber"
)

var (
	ErrReadOnlyField = apperror.New(apperror.CodeReadOnlyField, "This field is filled from your profile and cannot be edited", 0)
	ErrUnknownField  = apperror.New(apperror.CodeInvalidInput, "Unknown form field", 0)
)

// FormState is the single source of truth for an in-progress request.
type FormState struct {
	EmployeeName string
	EmployeeID   string
	Email        string
	PhoneNumber  string
	Department   string
	LeaveType    string
	StartDate    string
	EndDate      string
	Reason       string
	Status       string
	Attachments  []api.Attachment
}

func DefaultState() FormState {
	return FormState{
		Department: DefaultDepartment,
		Status:     StatusPending,
	}
}

// stateFromRecord rebuilds form state from a saved draft. Attachments are
// always empty afterwards and the status is pinned to Pending regardless of
// what an older record carried.
func stateFromRecord(rec draft.Record) FormState {
	s := FormState{
		EmployeeName: rec.EmployeeName,
		EmployeeID:   rec.EmployeeID,
		Email:        rec.Email,
		PhoneNumber:  rec.PhoneNumber,
		Department:   rec.Department,
		LeaveType:    rec.LeaveType,
		StartDate:    rec.StartDate,
		EndDate:      rec.EndDate,
		Reason:       rec.Reason,
		Status:       StatusPending,
	}
	if s.Department == "" {
		s.Department = DefaultDepartment
	}
	return s
}

// Record is the persisted projection: scalar fields only, attachments
// stripped before every save.
func (s FormState) Record() draft.Record {
	return draft.Record{
		EmployeeName: s.EmployeeName,
		EmployeeID:   s.EmployeeID,
		Email:        s.Email,
		PhoneNumber:  s.PhoneNumber,
		Department:   s.Department,
		LeaveType:    s.LeaveType,
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		Reason:       s.Reason,
		Status:       s.Status,
	}
}

func (s FormState) Clone() FormState {
	out := s
	out.Attachments = append([]api.Attachment(nil), s.Attachments...)
	return out
}

// TotalDays is derived from the dates on every call, never stored:
// inclusive day count when both dates parse and the range is ordered,
// otherwise 0.
func (s FormState) TotalDays() int {
	start, err := time.Parse(dateLayout, s.StartDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(dateLayout, s.EndDate)
	if err != nil {
		return 0
	}
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func (s *FormState) set(f Field, v string) error {
	switch f {
	case FieldDepartment:
		s.Department = v
	case FieldLeaveType:
		s.LeaveType = v
	case FieldStartDate:
		s.StartDate = v
	case FieldEndDate:
		s.EndDate = v
	case FieldReason:
		s.Reason = v
	case FieldEmployeeName, FieldEmployeeID, FieldEmail, FieldPhoneNumber:
		return ErrReadOnlyField
	default:
		return ErrUnknownField
	}
	return nil
}

// MergeProfile patches the profile-derived fields into state. The fetch is
// the last writer for these four fields and never touches anything else,
// so a hydrated draft or a concurrent user edit is preserved.
func MergeProfile(s FormState, p api.Profile) FormState {
	if name := strings.TrimSpace(p.FirstName + " " + p.LastName); name != "" {
		s.EmployeeName = name
	}
	if p.EmployeeID != "" {
		s.EmployeeID = p.EmployeeID
	}
	if p.Email != "" {
		s.Email = p.Email
	}
	if p.PhoneNumber != "" {
		s.PhoneNumber = p.PhoneNumber
	}
	return s
}
