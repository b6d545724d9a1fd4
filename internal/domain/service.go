package domain

import "time"

// Service услуга барбершопа (стрижка, бритьё и т.п.)
type Service struct {
	ID              int64
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	Active          bool
	SortOrder       int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Client клиент барбершопа
// Создается автоматически при первом бронировании, ищется по телефону или email
type Client struct {
	ID          int64
	Name        string
	Email       *string
	Phone       string
	Notes       *string
	TotalVisits int
	LastVisitAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
