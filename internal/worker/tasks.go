package worker

// Task types consumed by the mux. The enqueueing services carry the same
// constants (see services.TypeWithdrawalSettle / TypeWithdrawalNotify) to
// avoid an import cycle through the consumers package.
const (
	TypeWithdrawalSettle = "withdrawal:settle"
	TypeWithdrawalNotify = "withdrawal:notify"
)
