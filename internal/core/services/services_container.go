package services

import (
	"time"

	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
)

// AuthConfig carries the token parameters the auth service needs.
type AuthConfig struct {
	JWTSecret string
	JWTExpiry time.Duration
	JWTIssuer string
}

// NewServiceContainer wires all services together from the repository
// provider. Construction order follows the dependency chain: journal
// before invoice, both before reporting.
func NewServiceContainer(repos portsrepo.RepositoryProvider, authCfg AuthConfig) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.AccountRepo)
	journalSvc := NewJournalService(repos.JournalRepo, repos.AccountRepo)
	balanceSvc := NewBalanceService(repos.AccountRepo, repos.ReportingRepo)
	reportingSvc := NewReportingService(repos.ReportingRepo, repos.InvoiceRepo)
	invoiceSvc := NewInvoiceService(repos.InvoiceRepo, repos.AccountRepo, journalSvc)
	userSvc := NewUserService(repos.UserRepo)
	authSvc := NewAuthService(repos.UserRepo, authCfg.JWTSecret, authCfg.JWTExpiry, authCfg.JWTIssuer)

	return &portssvc.ServiceContainer{
		Account:   accountSvc,
		Journal:   journalSvc,
		Balance:   balanceSvc,
		Reporting: reportingSvc,
		Invoice:   invoiceSvc,
		User:      userSvc,
		Auth:      authSvc,
	}
}
