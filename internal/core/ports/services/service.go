package services

// ServiceContainer holds instances of all the application services.
// It is built once in main and handed to the handlers.
type ServiceContainer struct {
	Account  AccountSvcFacade
	Journal  JournalSvcFacade
	Context  ContextSvc
	Budget   BudgetSvc
	Personal PersonalFinanceSvc
	Company  CompanySvcFacade
	Customer CustomerSvc
	Auth     AuthSvc
	Export   ExportSvc
}
