package services

// ServiceContainer holds the service facades handed to the HTTP layer, so
// handlers depend on interfaces rather than concrete services.
type ServiceContainer struct {
	Expense ExpenseSvcFacade
	Debt    DebtSvcFacade
}
