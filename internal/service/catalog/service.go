package catalog

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BarbershopService/internal/service/catalog/models"
)

// Service сервис каталога: барберы и услуги для страницы записи
type Service struct {
	barberRepo  BarberRepository
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(barberRepo BarberRepository, serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		barberRepo:  barberRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// ListBarbers возвращает активных барберов
func (s *Service) ListBarbers(ctx context.Context) (*models.BarberListResponse, error) {
	barbers, err := s.barberRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListBarbers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBarbers - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBarbers: fetched %d barbers", len(barbers))
	return models.FromDomainBarberList(barbers), nil
}

// ListServices возвращает активные услуги в порядке сортировки
func (s *Service) ListServices(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}
