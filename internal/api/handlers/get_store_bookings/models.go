package get_store_bookings

import (
	"net/http"
	"strconv"
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/internal/service/bookings/models"
)

// parseQuery собирает фильтр списка из query-параметров запроса
func parseQuery(r *http.Request, storeID, userID int64, isManager bool) (*models.GetStoreBookingsRequest, error) {
	req := &models.GetStoreBookingsRequest{
		UserID:    userID,
		IsManager: isManager,
		StoreID:   storeID,
	}

	q := r.URL.Query()

	if staffIDStr := q.Get("staffId"); staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}

	if startDateStr := q.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr := q.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status := q.Get("status"); status != "" {
		req.Status = &status
	}

	if includeInactiveStr := q.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
