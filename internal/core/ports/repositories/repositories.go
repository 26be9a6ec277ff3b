package repositories

// RepositoryProvider aggregates all repository implementations for dependency
// injection into the service container.
type RepositoryProvider struct {
	UserRepo          UserRepositoryFacade
	LoginLogRepo      LoginLogRepository
	PasswordResetRepo PasswordResetRepository
	GenerationRepo    GenerationRepository
}
