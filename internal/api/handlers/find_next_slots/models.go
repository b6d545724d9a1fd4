package find_next_slots

import (
	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	findNextSlots "github.com/m04kA/SMC-BarbershopService/internal/usecase/find_next_slots"
)

// NextSlotsResponse HTTP response model
type NextSlotsResponse struct {
	ServiceID int64      `json:"serviceId"`
	Slots     []NextSlot `json:"slots"`
	HasMore   bool       `json:"hasMore"`
}

// NextSlot ближайший свободный слот
type NextSlot struct {
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	BarberID   int64  `json:"barberId"`
	BarberName string `json:"barberName"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findNextSlots.Response) *NextSlotsResponse {
	slots := make([]NextSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = NextSlot{
			Date:       slot.Date.Format(domain.DateFormat),
			StartTime:  slot.StartTime.String(),
			BarberID:   slot.BarberID,
			BarberName: slot.BarberName,
		}
	}

	return &NextSlotsResponse{
		ServiceID: resp.ServiceID,
		Slots:     slots,
		HasMore:   resp.HasMore,
	}
}
