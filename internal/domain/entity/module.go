package entity

import "time"

// Module representa un módulo SaaS de la plataforma (catálogo instalable).
// El registro de módulos es un sistema externo: este motor solo lo consulta.
// Un módulo con IsActive=false no admite nuevos grants a ningún nivel.
type Module struct {
	ID        string
	Slug      string // identificador único legible (ej. "ai-agent", "zus", "email")
	Name      string
	IsActive  bool
	CreatedAt time.Time
}
