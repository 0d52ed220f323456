package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
)

// attachmentField is the shared part name every attachment is appended
// under, matching the server's upload field.
const attachmentField = "supporting_doc"

// ListMyLeaves returns the caller's own leave requests.
func (c *Client) ListMyLeaves(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	if err := c.do(ctx, http.MethodGet, "/api/leaves/", nil, nil, &leaves); err != nil {
		return nil, err
	}
	return leaves, nil
}

// ListAllLeaves returns every leave request (administrative view).
func (c *Client) ListAllLeaves(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	if err := c.do(ctx, http.MethodGet, "/api/allgetleaves/", nil, nil, &leaves); err != nil {
		return nil, err
	}
	return leaves, nil
}

// CreateLeave submits a new request as multipart form data. A fresh
// Idempotency-Key guards against an accidental double POST of the same
// attempt being applied twice server-side.
func (c *Client) CreateLeave(ctx context.Context, req CreateLeaveRequest) (*Leave, error) {
	body, contentType, err := encodeLeaveForm(req)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Content-Type", contentType)
	header.Set("Idempotency-Key", uuid.NewString())

	var created Leave
	if err := c.do(ctx, http.MethodPost, "/api/createleaves/", body, header, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateLeave sends the scalar fields as JSON. The supporting document is
// never part of an update.
func (c *Client) UpdateLeave(ctx context.Context, id int, req UpdateLeaveRequest) (*Leave, error) {
	var updated Leave
	path := fmt.Sprintf("/api/leaves/update/%d/", id)
	if err := c.doJSON(ctx, http.MethodPut, path, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteLeave(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/leaves/delete/%d/", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func encodeLeaveForm(req CreateLeaveRequest) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := []struct{ name, value string }{
		{"employee_name", req.EmployeeName},
		{"employee_id", req.EmployeeID},
		{"email", req.Email},
		{"phoneNumber", req.PhoneNumber},
		{"department", req.Department},
		{"leave_type", req.LeaveType},
		{"start_date", req.StartDate},
		{"end_date", req.EndDate},
		{"reason_leave", req.Reason},
		{"leave_status", req.Status},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	for _, a := range req.Attachments {
		part, err := w.CreateFormFile(attachmentField, a.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(a.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
