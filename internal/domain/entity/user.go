package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"    // operador de plataforma: administra grants de módulos y limpieza
	RoleOwner    = "owner"    // dueño de empresa: otorga permisos a sus empleados
	RoleEmployee = "employee" // empleado: consume los módulos según sus permisos
)

// User representa un usuario del sistema. Siempre pertenece a una Company;
// CompanyID es la afiliación *actual* y puede cambiar (reasignación), lo que
// convierte la validez de sus permisos de módulo en una propiedad derivada.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, owner, employee
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
