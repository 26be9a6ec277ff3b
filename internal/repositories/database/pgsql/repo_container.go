package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/secure_auth_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:          newPgxUserRepository(dbPool),
		LoginLogRepo:      newPgxLoginLogRepository(dbPool),
		PasswordResetRepo: newPgxPasswordResetRepository(dbPool),
		GenerationRepo:    newPgxGenerationRepository(dbPool),
	}
}
