package repository

import (
	"context"

	"github.com/jash90/accounting-app-sub014/internal/domain/entity"
)

// ModuleRepository define el puerto de lectura del catálogo de módulos.
// El catálogo es de solo lectura para este motor (lo administra la plataforma).
type ModuleRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Module, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Module, error)
	List(ctx context.Context) ([]*entity.Module, error)
}
