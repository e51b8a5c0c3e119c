package create_booking

import (
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	createBooking "github.com/barberbook/booking-service/internal/usecase/create_booking"
	"github.com/barberbook/booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StoreID        int64   `json:"storeId"`
	ServiceID      int64   `json:"serviceId"`
	StaffID        *int64  `json:"staffId,omitempty"` // nil - назначить первого свободного
	BookingDate    string  `json:"bookingDate"`       // "2026-03-02"
	StartTime      string  `json:"startTime"`         // "10:00"
	CustomerName   string  `json:"customerName"`
	CustomerLineID *string `json:"customerLineId,omitempty"`
	CustomerEmail  *string `json:"customerEmail,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	StoreID         int64   `json:"storeId"`
	StaffID         int64   `json:"staffId"`
	ServiceID       int64   `json:"serviceId"`
	CustomerID      int64   `json:"customerId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	StaffName       string  `json:"staffName"`
	CustomerName    string  `json:"customerName"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// AlternativeSlotResponse альтернативный слот в теле конфликта
type AlternativeSlotResponse struct {
	StaffID   int64  `json:"staffId"`
	StaffName string `json:"staffName"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ConflictResponse HTTP response при конфликте бронирования
type ConflictResponse struct {
	ConflictType string                    `json:"conflictType"`
	Detail       string                    `json:"detail"`
	Alternatives []AlternativeSlotResponse `json:"alternatives"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		StoreID:        r.StoreID,
		ServiceID:      r.ServiceID,
		StaffID:        r.StaffID,
		CustomerID:     customerID,
		Date:           bookingDate,
		StartTime:      startTime,
		CustomerName:   r.CustomerName,
		CustomerLineID: r.CustomerLineID,
		CustomerEmail:  r.CustomerEmail,
		Notes:          r.Notes,
	}, nil
}

// FromUseCaseBooking конвертирует созданное бронирование в HTTP response
func FromUseCaseBooking(b *createBooking.BookingData) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		StoreID:         b.StoreID,
		StaffID:         b.StaffID,
		ServiceID:       b.ServiceID,
		CustomerID:      b.CustomerID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          b.Status,
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		StaffName:       b.StaffName,
		CustomerName:    b.CustomerName,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromUseCaseConflict конвертирует конфликт в HTTP response
func FromUseCaseConflict(c *createBooking.ConflictData) *ConflictResponse {
	resp := &ConflictResponse{
		ConflictType: c.Type,
		Detail:       c.Detail,
		Alternatives: make([]AlternativeSlotResponse, 0, len(c.Alternatives)),
	}
	for _, alt := range c.Alternatives {
		resp.Alternatives = append(resp.Alternatives, AlternativeSlotResponse{
			StaffID:   alt.StaffID,
			StaffName: alt.StaffName,
			StartTime: alt.StartTime.String(),
			EndTime:   alt.EndTime.String(),
		})
	}
	return resp
}
