package services

import (
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
)

// NewServiceContainer creates the service container with properly initialized
// dependencies.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account: NewAccountService(repos.AccountRepo),
		Posting: NewPostingService(repos.TransactionRepo, repos.AccountRepo),
	}
}
