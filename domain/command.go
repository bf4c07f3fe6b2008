package domain

// Command is a tagged union of actions the engine accepts. NewOrderCommand
// is the only variant implemented today; CancelCommand and ModifyCommand are
// sketched below so a new variant can be added without touching the
// handling of the existing ones — every dispatcher that switches on Command
// keeps a default case that reports unknown variants (MatchingEngine logs a
// warning and skips them) rather than silently dropping them.
type Command interface {
	isCommand()
}

// NewOrderCommand submits order for insertion and matching.
type NewOrderCommand struct {
	Order Order
}

func (NewOrderCommand) isCommand() {}

// CancelCommand is reserved for a future cancel-by-id dispatch path that
// goes through ProcessBatch instead of MatchingEngine.CancelOrder directly.
type CancelCommand struct {
	Symbol  string
	OrderID uint64
}

func (CancelCommand) isCommand() {}

// ModifyCommand is reserved for a future order replace/modify path. Not
// implemented: modifying a resting order is a Non-goal of this engine.
type ModifyCommand struct {
	Symbol      string
	OrderID     uint64
	NewPrice    int64
	NewQuantity uint32
}

func (ModifyCommand) isCommand() {}
