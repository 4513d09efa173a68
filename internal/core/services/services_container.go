package services

import (
	portsrepo "github.com/Musoni/mifosx-sub001/internal/core/ports/repositories"
	portssvc "github.com/Musoni/mifosx-sub001/internal/core/ports/services"
)

// NewServiceContainer wires all services from the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider, tenantTimezone string) (*portssvc.ServiceContainer, error) {
	clock, err := NewTenantClock(tenantTimezone)
	if err != nil {
		return nil, err
	}

	return &portssvc.ServiceContainer{
		Closure: NewClosureService(repos, clock),
		Clock:   clock,
	}, nil
}
