package handlers

// HandlerBundle groups all endpoint handlers into one struct so route
// registration takes a single argument.
type HandlerBundle struct {
	Auth          *AuthHandler
	Bookings      *BookingHandler
	QR            *QRHandler
	Exceptions    *ExceptionHandler
	Registry      *RegistryHandler
	Fleet         *FleetHandler
	Dashboards    *DashboardHandler
	Notifications *NotificationHandler
	Audit         *AuditHandler
}
