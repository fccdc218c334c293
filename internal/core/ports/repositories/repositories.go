package repositories

// RepositoryProvider bundles the repository implementations the service
// layer needs, so wiring happens in one place.
type RepositoryProvider struct {
	AccountRepo AccountRepositoryFacade
	PaymentRepo PaymentRepositoryFacade
	ParentRepo  ParentTransactionReader
}
