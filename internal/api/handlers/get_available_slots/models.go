package get_available_slots

import (
	"net/http"
	"strconv"
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	getAvailableSlots "github.com/barberbook/booking-service/internal/usecase/get_available_slots"
)

// SlotResponse один слот в календаре мастера
type SlotResponse struct {
	StaffID     int64  `json:"staffId"`
	StaffName   string `json:"staffName"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date      string         `json:"date"`
	IsOpen    bool           `json:"isOpen"`
	OpenTime  *string        `json:"openTime,omitempty"`
	CloseTime *string        `json:"closeTime,omitempty"`
	Slots     []SlotResponse `json:"slots"`
}

// parseQuery собирает запрос use case из query-параметров
func parseQuery(r *http.Request, storeID int64) (*getAvailableSlots.Request, error) {
	q := r.URL.Query()

	serviceID, err := strconv.ParseInt(q.Get("serviceId"), 10, 64)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, q.Get("date"))
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		StoreID:   storeID,
		ServiceID: serviceID,
		Date:      date,
	}

	if staffIDStr := q.Get("staffId"); staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	out := &SlotsResponse{
		Date:   resp.Date.Format(domain.DateFormat),
		IsOpen: resp.IsOpen,
		Slots:  make([]SlotResponse, 0, len(resp.Slots)),
	}

	if resp.OpenTime != nil {
		open := resp.OpenTime.String()
		out.OpenTime = &open
	}
	if resp.CloseTime != nil {
		close := resp.CloseTime.String()
		out.CloseTime = &close
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StaffID:     slot.StaffID,
			StaffName:   slot.StaffName,
			StartTime:   slot.StartTime.String(),
			EndTime:     slot.EndTime.String(),
			IsAvailable: slot.IsAvailable,
		})
	}

	return out
}
