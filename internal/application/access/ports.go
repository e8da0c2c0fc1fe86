package access

import (
	"context"

	"github.com/jash90/accounting-app-sub014/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es lo que hace atómica la revocación en
// cascada: deshabilitar el grant y borrar los permisos dependientes se
// confirman como una sola unidad o no se aplican en absoluto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		grantRepo repository.CompanyModuleRepository,
		permRepo repository.UserModulePermissionRepository,
	) error) error
}
