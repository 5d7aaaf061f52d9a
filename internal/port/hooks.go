package port

// Notifier surfaces transient user-facing messages (toasts). The core calls
// it on cart mutations and order placement but does not implement it.
type Notifier interface {
	Notify(message string)
}

// Navigator switches the presentation layer to another path. The core only
// needs the capability, it does not own routing.
type Navigator interface {
	NavigateTo(path string)
}
