package port

// Storage is the durable key-value contract the client coordinator persists
// credentials through. Values are strings; data must survive process
// restarts. Get/Set/Remove only, mirroring web localStorage semantics.
type Storage interface {
	// Get returns the value for key, reporting misses as ErrNoValue.
	Get(key string) (string, error)

	// Set stores value at key, overwriting any previous value.
	Set(key string, value string) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(key string) error
}

// ErrNoValue signals an absent key in a typed way.
var ErrNoValue = errNoValue{}

type errNoValue struct{}

func (e errNoValue) Error() string { return "storage: no value" }
