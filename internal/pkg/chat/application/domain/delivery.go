package chat

// DeliveryState is a message's position in the delivery lifecycle.
//
//	sending -> {sent, error}
//	sent -> delivered -> read
//	error -> sending (explicit retry only)
//
// read is terminal. Transitions toward a lower state are no-ops, which makes
// applying out-of-order receipts idempotent and safe.
type DeliveryState int16

const (
	StateSending   DeliveryState = 0
	StateSent      DeliveryState = 1
	StateDelivered DeliveryState = 2
	StateRead      DeliveryState = 3
	StateError     DeliveryState = 4
)

func (s DeliveryState) String() string {
	switch s {
	case StateSending:
		return "sending"
	case StateSent:
		return "sent"
	case StateDelivered:
		return "delivered"
	case StateRead:
		return "read"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// rank orders the normal lifecycle. error sits outside the chain.
func (s DeliveryState) rank() int {
	switch s {
	case StateSending:
		return 0
	case StateSent:
		return 1
	case StateDelivered:
		return 2
	case StateRead:
		return 3
	default:
		return -1
	}
}

// CanTransition reports whether moving from s to target is a legal state
// change. Self-transitions and downward moves are not.
func (s DeliveryState) CanTransition(target DeliveryState) bool {
	switch {
	case s == target:
		return false
	case s == StateError:
		// Recoverable only via an explicit retry back to sending.
		return target == StateSending
	case target == StateError:
		// Only an in-flight send can fail.
		return s == StateSending
	case s == StateSending:
		return target == StateSent
	case target == StateSending:
		return false
	default:
		// sent -> delivered -> read, with upward jumps allowed so a read
		// receipt arriving before its delivered receipt still applies.
		return target.rank() > s.rank()
	}
}

// Advance applies the transition if legal, otherwise returns s unchanged.
func (s DeliveryState) Advance(target DeliveryState) DeliveryState {
	if s.CanTransition(target) {
		return target
	}
	return s
}
