package services

// ServiceContainer holds instances of all the application services for
// injection into the HTTP layer.
type ServiceContainer struct {
	Account       AccountSvcFacade
	Voucher       VoucherSvcFacade
	Reporting     ReportingSvcFacade
	FinancialYear FinancialYearSvcFacade
	PendingChange PendingChangeSvcFacade
	Stats         StatsSvcFacade
}
