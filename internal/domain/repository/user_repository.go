package repository

import "github.com/jash90/accounting-app-sub014/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// GetByID es la resolución currentCompanyOf(user): el CompanyID devuelto es
// siempre la afiliación vigente, nunca una copia cacheada.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.User, error)
	// UpdateCompany reasigna el usuario a otra empresa. Este es el camino externo
	// que puede dejar permisos huérfanos sin tocar el motor de módulos.
	UpdateCompany(userID, companyID string) error
}
