package models

import (
	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/pkg/types"
)

// DayHours график одного дня недели
type DayHours struct {
	Weekday   int     `json:"weekday"` // 0 = воскресенье
	IsClosed  bool    `json:"isClosed"`
	OpenTime  *string `json:"openTime,omitempty"`  // "09:00", только для открытых дней
	CloseTime *string `json:"closeTime,omitempty"` // "18:00"
}

// WeekResponse график работы магазина
type WeekResponse struct {
	StoreID int64      `json:"storeId"`
	Days    []DayHours `json:"days"`
}

// ReplaceWeekRequest запрос на полную замену графика
type ReplaceWeekRequest struct {
	UserID    int64      `json:"userId"`
	IsManager bool       `json:"-"`
	StoreID   int64      `json:"storeId"`
	Days      []DayHours `json:"days"`
}

// FromDomainWeek конвертирует domain модели в DTO
func FromDomainWeek(storeID int64, week []*domain.BusinessHours) *WeekResponse {
	resp := &WeekResponse{
		StoreID: storeID,
		Days:    make([]DayHours, 0, len(week)),
	}
	for _, bh := range week {
		day := DayHours{
			Weekday:  bh.Weekday,
			IsClosed: bh.IsClosed,
		}
		if !bh.IsClosed {
			open := bh.OpenTime.String()
			close := bh.CloseTime.String()
			day.OpenTime = &open
			day.CloseTime = &close
		}
		resp.Days = append(resp.Days, day)
	}
	return resp
}

// ToDomainWeek конвертирует DTO в domain модели
func ToDomainWeek(storeID int64, days []DayHours) []*domain.BusinessHours {
	week := make([]*domain.BusinessHours, 0, len(days))
	for _, day := range days {
		bh := &domain.BusinessHours{
			StoreID:  storeID,
			Weekday:  day.Weekday,
			IsClosed: day.IsClosed,
		}
		if day.OpenTime != nil {
			bh.OpenTime = types.TimeString(*day.OpenTime)
		}
		if day.CloseTime != nil {
			bh.CloseTime = types.TimeString(*day.CloseTime)
		}
		week = append(week, bh)
	}
	return week
}
