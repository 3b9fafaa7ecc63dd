package services

// ServiceContainer aggregates the service facades injected into the HTTP layer.
type ServiceContainer struct {
	Currency       CurrencySvcFacade
	Rate           RateSvcFacade
	Conversion     ConversionSvcFacade
	Transfer       TransferSvcFacade
	Reconciliation ReconciliationSvcFacade
}
