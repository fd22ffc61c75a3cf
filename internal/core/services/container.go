package services

import (
	portsrepo "github.com/SscSPs/contas_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/contas_app/internal/core/ports/services"
)

// ContainerConfig carries the business settings services need.
type ContainerConfig struct {
	Bills           BillServiceConfig
	EvolutionMonths int
}

// NewContainer wires every service over one store. notifier may be nil.
func NewContainer(store portsrepo.TransactionManager, notifier portssvc.BillNotifier, cfg ContainerConfig, options ...ServiceOption) *portssvc.ServiceContainer {
	ledger := NewLedgerService(store, options...)

	return &portssvc.ServiceContainer{
		BankAccount: NewBankAccountService(store, options...),
		Ledger:      ledger,
		Vendor:      NewVendorService(store, options...),
		Card:        NewCardService(store, options...),
		Bill:        NewBillService(store, ledger, notifier, cfg.Bills, options...),
		Reporting:   NewReportingService(store, cfg.EvolutionMonths, options...),
	}
}
