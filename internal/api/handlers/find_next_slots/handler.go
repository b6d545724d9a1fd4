package find_next_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-BarbershopService/internal/api/handlers"
	findNextSlots "github.com/m04kA/SMC-BarbershopService/internal/usecase/find_next_slots"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingServiceID = "ID услуги обязателен"
	msgInvalidBarberID  = "некорректный ID барбера"
	msgInvalidSkip      = "некорректное значение skip"
	msgServiceNotFound  = "услуга не найдена"
	msgBarberNotFound   = "барбер не найден"
)

type Handler struct {
	useCase FindNextSlotsUseCase
	logger  Logger
}

func NewHandler(useCase FindNextSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/next-slots
// Query params: serviceId (required), barberId (optional), skip (optional, >= 0)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceIDStr := query.Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /next-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /next-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	useCaseReq := &findNextSlots.Request{ServiceID: serviceID}

	if barberIDStr := query.Get("barberId"); barberIDStr != "" {
		barberID, err := strconv.ParseInt(barberIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /next-slots - Invalid barber ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBarberID)
			return
		}
		useCaseReq.BarberID = &barberID
	}

	if skipStr := query.Get("skip"); skipStr != "" {
		skip, err := strconv.Atoi(skipStr)
		if err != nil || skip < 0 {
			h.logger.Warn("GET /next-slots - Invalid skip: %s", skipStr)
			handlers.RespondBadRequest(w, msgInvalidSkip)
			return
		}
		useCaseReq.Skip = skip
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, findNextSlots.ErrServiceNotFound):
			h.logger.Warn("GET /next-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, findNextSlots.ErrBarberNotFound):
			h.logger.Warn("GET /next-slots - Barber not found")
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, findNextSlots.ErrInvalidInput):
			h.logger.Warn("GET /next-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /next-slots - Failed to find slots: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /next-slots - Slots retrieved successfully: service_id=%d, slots_count=%d, has_more=%v",
		serviceID, len(result.Slots), result.HasMore)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
