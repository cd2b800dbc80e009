package enum

// ── Order lifecycle ──

const (
	OrderStatusPending   = "PENDING"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// ── Kiosk session views ──

const (
	SessionStateHome           = "HOME"
	SessionStateMenu           = "MENU"
	SessionStateConfirmation   = "CONFIRMATION"
	SessionStateAdminDashboard = "ADMIN_DASHBOARD"
	SessionStateOrderTracking  = "ORDER_TRACKING"
)

// ── Self-selected roles (login screen) ──

const (
	UserRoleCustomer = "CUSTOMER"
	UserRoleAdmin    = "ADMIN"
)

// ── Realtime event types ──

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventCatalogUpdated     = "catalog.updated"
)

// ── Realtime rooms ──

const (
	RoomKitchen  = "kitchen"
	RoomTracking = "tracking"
)
