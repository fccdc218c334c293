package services

import (
	"github.com/dokanly/posledger/internal/core/ports/repositories"
	portssvc "github.com/dokanly/posledger/internal/core/ports/services"
)

// NewServiceContainer wires the service implementations from the repository
// provider. This is the only place services are constructed.
func NewServiceContainer(repos repositories.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account: NewAccountService(repos.AccountRepo),
		Payment: NewPaymentService(repos.PaymentRepo, repos.AccountRepo, repos.ParentRepo),
	}
}
