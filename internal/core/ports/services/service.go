package services

// ServiceContainer bundles the service facades handed to the transport
// layer, so route registration depends on interfaces only.
type ServiceContainer struct {
	Account AccountSvcFacade
	Payment PaymentSvcFacade
}
