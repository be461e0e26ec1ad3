package services

import (
	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/clients/rosterclient"
	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/core/model"
)

// mockNurseClient implements NurseClient
type mockNurseClient struct {
	nurses  []model.Nurse
	listErr error
	calls   int
}

func (m *mockNurseClient) ListNurses() ([]model.Nurse, error) {
	m.calls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	rosterclient.ComputeDisplayNames(m.nurses)
	return m.nurses, nil
}

func shiftPtr(shift model.ShiftKind) *model.ShiftKind {
	return &shift
}

func ptr[T any](v T) *T {
	return &v
}
