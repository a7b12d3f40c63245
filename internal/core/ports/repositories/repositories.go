package repositories

// RepositoryProvider bundles the concrete repositories for injection into the
// service layer.
type RepositoryProvider struct {
	AccountRepo       AccountRepositoryFacade
	VoucherRepo       VoucherRepositoryFacade
	FinancialYearRepo FinancialYearRepository
	PendingChangeRepo PendingChangeRepository
	ReportingRepo     ReportingRepository
	StatsRepo         StatsRepository
}
