package entity

import "time"

// Company representa una empresa cliente (tenant) de la plataforma.
type Company struct {
	ID        string
	Name      string
	NIT       string
	Email     string
	Status    string // active, inactive, suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}
