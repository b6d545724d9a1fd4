package models

import "github.com/m04kA/SMC-BarbershopService/internal/domain"

// BarberResponse публичные данные барбера
type BarberResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	PhotoURL *string `json:"photoUrl,omitempty"`
	Color    string  `json:"color"`

	// График для отображения в интерфейсе записи
	StartTime       *string `json:"startTime,omitempty"`
	EndTime         *string `json:"endTime,omitempty"`
	SecondStartTime *string `json:"secondStartTime,omitempty"`
	SecondEndTime   *string `json:"secondEndTime,omitempty"`
	WorkDays        []int   `json:"workDays"`
}

// BarberListResponse ответ со списком барберов
type BarberListResponse struct {
	Barbers []BarberResponse `json:"barbers"`
}

// ServiceResponse публичные данные услуги
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainBarber конвертирует domain модель барбера в DTO
func FromDomainBarber(b *domain.Barber) BarberResponse {
	resp := BarberResponse{
		ID:       b.ID,
		Name:     b.Name,
		PhotoURL: b.PhotoURL,
		Color:    b.Color,
		WorkDays: b.WorkDays,
	}

	if b.HasOwnHours() {
		start := b.StartTime.String()
		end := b.EndTime.String()
		resp.StartTime = &start
		resp.EndTime = &end
	}
	if b.HasSecondShift() {
		secondStart := b.SecondStartTime.String()
		secondEnd := b.SecondEndTime.String()
		resp.SecondStartTime = &secondStart
		resp.SecondEndTime = &secondEnd
	}

	return resp
}

// FromDomainBarberList конвертирует список барберов в DTO
func FromDomainBarberList(barbers []*domain.Barber) *BarberListResponse {
	result := make([]BarberResponse, 0, len(barbers))
	for _, b := range barbers {
		result = append(result, FromDomainBarber(b))
	}
	return &BarberListResponse{Barbers: result}
}

// FromDomainService конвертирует domain модель услуги в DTO
func FromDomainService(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
}

// FromDomainServiceList конвертирует список услуг в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	result := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		result = append(result, FromDomainService(s))
	}
	return &ServiceListResponse{Services: result}
}
