package create_booking

import (
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	createBooking "github.com/m04kA/SMC-BarbershopService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BarberID    int64   `json:"barberId" validate:"required,gt=0"`
	ServiceID   int64   `json:"serviceId" validate:"required,gt=0"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string  `json:"startTime" validate:"required"`
	ClientName  string  `json:"clientName" validate:"required,min=2,max=100"`
	ClientPhone string  `json:"clientPhone" validate:"required,min=6,max=20"`
	ClientEmail *string `json:"clientEmail,omitempty" validate:"omitempty,email"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64  `json:"id"`
	ClientID  *int64 `json:"clientId,omitempty"`
	BarberID  int64  `json:"barberId"`
	ServiceID int64  `json:"serviceId"`

	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`

	ClientName   string  `json:"clientName"`
	ClientEmail  *string `json:"clientEmail,omitempty"`
	ClientPhone  string  `json:"clientPhone"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`

	Notes *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		BarberID:    r.BarberID,
		ServiceID:   r.ServiceID,
		Date:        date,
		StartTime:   types.TimeString(r.StartTime),
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		ClientEmail: r.ClientEmail,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		ClientID:     resp.ClientID,
		BarberID:     resp.BarberID,
		ServiceID:    resp.ServiceID,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Status:       resp.Status,
		ClientName:   resp.ClientName,
		ClientEmail:  resp.ClientEmail,
		ClientPhone:  resp.ClientPhone,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt,
		UpdatedAt:    resp.UpdatedAt,
	}
}
