package models

import "github.com/barberbook/booking-service/internal/domain"

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64   `json:"id"`
	StoreID         int64   `json:"storeId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ServiceListResponse ответ со списком услуг магазина
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, svc := range services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:              svc.ID,
			StoreID:         svc.StoreID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
		})
	}
	return resp
}
