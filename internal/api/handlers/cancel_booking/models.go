package cancel_booking

import "github.com/barberbook/booking-service/internal/service/bookings/models"

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(userID int64, isManager bool) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		UserID:             userID,
		IsManager:          isManager,
		CancellationReason: r.CancellationReason,
	}
}
