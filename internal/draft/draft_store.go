// Package draft persists the in-progress leave request so it survives a
// restart. One fixed key, overwritten on every save, removed after a
// confirmed submission.
package draft

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/caaaae/E-Leave/internal/localstore"
	"github.com/caaaae/E-Leave/internal/shared/apperror"

	"go.uber.org/zap"
)

const draftKey = "leave_form_draft"

// Record is the persisted projection of the form: scalar fields only.
// File attachments are never serialized; after a reload the user attaches
// them again.
type Record struct {
	EmployeeName string `json:"employee_name"`
	EmployeeID   string `json:"employee_id"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	Department   string `json:"department"`
	LeaveType    string `json:"leave_type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Reason       string `json:"reason_leave"`
	Status       string `json:"leave_status"`
}

type Store struct {
	kv     localstore.Store
	logger *zap.Logger
}

func NewStore(kv localstore.Store) *Store {
	return &Store{kv: kv, logger: zap.L().Named("draft.store")}
}

// Save overwrites the stored draft. A failure is reported as an error for
// the caller to downgrade to a status message; it is never fatal.
func (s *Store) Save(ctx context.Context, rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeDraftSaveFailed, "Draft could not be saved", 0)
	}
	if err := s.kv.Set(ctx, draftKey, string(b)); err != nil {
		return apperror.Wrap(err, apperror.CodeDraftSaveFailed, "Draft could not be saved", 0)
	}
	return nil
}

// Load returns the stored draft, or nil when none exists. An unreadable
// draft is treated the same as an absent one; fields missing from an older
// record simply stay zero.
func (s *Store) Load(ctx context.Context) (*Record, error) {
	raw, err := s.kv.Get(ctx, draftKey)
	if errors.Is(err, localstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Warn("draft read failed, starting blank", zap.Error(err))
		return nil, nil
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		s.logger.Warn("discarding unreadable draft", zap.Error(err))
		return nil, nil
	}
	return &rec, nil
}

// Clear removes the stored draft. Clearing an absent draft is not an error.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, draftKey)
}
