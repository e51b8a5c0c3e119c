package check_conflicts

import (
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	checkConflicts "github.com/barberbook/booking-service/internal/usecase/check_conflicts"
	"github.com/barberbook/booking-service/pkg/types"
)

// CheckConflictsRequest HTTP request model
type CheckConflictsRequest struct {
	StoreID          int64  `json:"storeId"`
	ServiceID        int64  `json:"serviceId"`
	StaffID          *int64 `json:"staffId,omitempty"`
	BookingDate      string `json:"bookingDate"` // "2026-03-02"
	StartTime        string `json:"startTime"`   // "10:00"
	ExcludeBookingID *int64 `json:"excludeBookingId,omitempty"`
}

// AlternativeSlotResponse альтернативный слот взамен конфликтующего
type AlternativeSlotResponse struct {
	StaffID   int64  `json:"staffId"`
	StaffName string `json:"staffName"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// CheckConflictsResponse HTTP response model
type CheckConflictsResponse struct {
	HasConflict  bool                      `json:"hasConflict"`
	ConflictType string                    `json:"conflictType,omitempty"`
	Detail       string                    `json:"detail,omitempty"`
	Alternatives []AlternativeSlotResponse `json:"alternatives,omitempty"`

	// Заполняются только при hasConflict=false
	StaffID   *int64  `json:"staffId,omitempty"`
	StaffName *string `json:"staffName,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckConflictsRequest) ToUseCaseRequest() (*checkConflicts.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &checkConflicts.Request{
		StoreID:          r.StoreID,
		ServiceID:        r.ServiceID,
		StaffID:          r.StaffID,
		Date:             bookingDate,
		StartTime:        startTime,
		ExcludeBookingID: r.ExcludeBookingID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkConflicts.Response) *CheckConflictsResponse {
	out := &CheckConflictsResponse{
		HasConflict:  resp.HasConflict,
		ConflictType: resp.ConflictType,
		Detail:       resp.Detail,
		StaffID:      resp.StaffID,
		StaffName:    resp.StaffName,
	}

	if resp.EndTime != nil {
		endTime := resp.EndTime.String()
		out.EndTime = &endTime
	}

	for _, alt := range resp.Alternatives {
		out.Alternatives = append(out.Alternatives, AlternativeSlotResponse{
			StaffID:   alt.StaffID,
			StaffName: alt.StaffName,
			StartTime: alt.StartTime.String(),
			EndTime:   alt.EndTime.String(),
		})
	}

	return out
}
