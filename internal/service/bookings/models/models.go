package models

import (
	"errors"
	"time"

	"github.com/barberbook/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	IsManager          bool   `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID    int64  `json:"userId"`
	IsManager bool   `json:"-"`
	Status    string `json:"status"`
}

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// GetStoreBookingsRequest запрос на получение бронирований магазина
type GetStoreBookingsRequest struct {
	UserID          int64      `json:"userId"`
	IsManager       bool       `json:"-"`
	StoreID         int64      `json:"storeId"`
	StaffID         *int64     `json:"staffId,omitempty"`         // Фильтр по мастеру (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetStoreBookingsRequest) ToDomainFilter() (domain.StoreBookingsFilter, error) {
	filter := domain.StoreBookingsFilter{
		StoreID:         r.StoreID,
		StaffID:         r.StaffID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	StoreID         int64  `json:"storeId"`
	StaffID         int64  `json:"staffId"`
	ServiceID       int64  `json:"serviceId"`
	CustomerID      int64  `json:"customerId"`
	BookingDate     string `json:"bookingDate"` // "2026-03-02"
	StartTime       string `json:"startTime"`   // "10:00"
	EndTime         string `json:"endTime"`     // "10:30"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	StaffName    string  `json:"staffName"`
	CustomerName string  `json:"customerName"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		StoreID:            b.StoreID,
		StaffID:            b.StaffID,
		ServiceID:          b.ServiceID,
		CustomerID:         b.CustomerID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice,
		StaffName:          b.StaffName,
		CustomerName:       b.CustomerName,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !domain.ValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}
