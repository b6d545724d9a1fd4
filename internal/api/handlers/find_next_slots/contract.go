package find_next_slots

import (
	"context"

	findNextSlots "github.com/m04kA/SMC-BarbershopService/internal/usecase/find_next_slots"
)

type FindNextSlotsUseCase interface {
	Execute(ctx context.Context, req *findNextSlots.Request) (*findNextSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
