package repositories

import (
	"context"

	"github.com/rafabene/unusualpills/internal/domain/entities"
)

// SignupRepository define a interface para persistência dos cadastros
type SignupRepository interface {
	// Upsert insere o cadastro ou atualiza o existente com o mesmo email.
	// Retorna true quando o registro foi criado nesta chamada.
	Upsert(ctx context.Context, signup *entities.Signup) (bool, error)
	FindByEmail(ctx context.Context, email string) (*entities.Signup, error)
	Count(ctx context.Context) (int64, error)
}
