package services

import (
	portsrepo "github.com/finovabs/backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/finovabs/backoffice_app/internal/core/ports/services"
	"github.com/finovabs/backoffice_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Notifier first: the alert service dispatches through it.
	container.Notifier = NewNotificationService(
		repos.NotificationRepo,
		repos.ObligationRepo,
		repos.OrgRepo,
		cfg.DefaultResponsibleUserID,
	)

	container.Alert = NewAlertService(repos.AlertRepo, container.Notifier)

	// Approval depends on the alert service for synchronous alert removal
	// when an obligation is marked paid.
	container.Approval = NewApprovalService(repos.ObligationRepo, repos.OrgRepo, container.Alert)

	container.Monitor = NewMonitorService(repos.ObligationRepo, container.Alert)

	return container
}
