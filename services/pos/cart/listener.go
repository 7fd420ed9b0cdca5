package cart

//go:generate mockgen -source=listener.go -package cart -destination listener_mock.go Listener

// Listener is informed about every change so it can keep its projection of the cart up to date.
type Listener interface {
	// ItemsChanged receives the complete, current list of items.
	ItemsChanged(items []LineItem)
	// QuantityChanged receives the stored (possibly clamped) quantity of a single item.
	QuantityChanged(index int, quantity int)
	SelectionCleared()
}
