package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/finovabs/backoffice_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	obligationRepo := newPgxObligationRepository(dbPool)
	alertRepo := newPgxAlertRepository(dbPool)
	notificationRepo := newPgxNotificationRepository(dbPool)
	orgRepo := newPgxOrgRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ObligationRepo:   obligationRepo,
		AlertRepo:        alertRepo,
		NotificationRepo: notificationRepo,
		OrgRepo:          orgRepo,
	}
}
