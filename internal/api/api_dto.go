package api

// Wire shapes match the e-leave backend: snake_case throughout, except
// phoneNumber which the server defined in camelCase.

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	EmployeeID  string `json:"employee_id,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type Profile struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	EmployeeID  string `json:"employee_id"`
	PhoneNumber string `json:"phoneNumber"`
}

type Leave struct {
	ID              int    `json:"id"`
	EmployeeName    string `json:"employee_name"`
	EmployeeID      string `json:"employee_id"`
	Email           string `json:"email"`
	Department      string `json:"department"`
	PhoneNumber     string `json:"phoneNumber"`
	LeaveType       string `json:"leave_type"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Reason          string `json:"reason_leave,omitempty"`
	Status          string `json:"leave_status"`
	SupportingDoc   string `json:"supporting_doc,omitempty"`
	DeadlineForDocs string `json:"deadline_for_docs,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// Attachment is an in-memory file selected for upload.
type Attachment struct {
	Name    string
	Content []byte
}

// CreateLeaveRequest is sent as multipart form data: every scalar as its
// own field, every attachment as a part under the shared supporting_doc
// field name, in order.
type CreateLeaveRequest struct {
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
	Attachments  []Attachment
}

// UpdateLeaveRequest deliberately has no supporting_doc field: documents
// are not replaced through the update endpoint.
type UpdateLeaveRequest struct {
	EmployeeName string `json:"employee_name"`
	EmployeeID   string `json:"employee_id"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	Department   string `json:"department"`
	LeaveType    string `json:"leave_type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Reason       string `json:"reason_leave"`
	Status       string `json:"leave_status"`
}
