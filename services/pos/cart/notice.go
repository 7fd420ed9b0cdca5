package cart

// Notice is a user facing message. Operations return it as error, so callers can use errors.Is.
type Notice struct {
	Code    string
	Message string
}

func NewNotice(code string, message string) *Notice {
	return &Notice{
		Code:    code,
		Message: message,
	}
}

func (n *Notice) Error() string {
	return n.Message
}

var (
	ErrNothingSelected  = NewNotice("nothing_selected", "Select a product first.")
	ErrDuplicateProduct = NewNotice("duplicate_product", "This product has already been added to the sale.")
	ErrOutOfStock       = NewNotice("out_of_stock", "There is no stock available for this product.")
	ErrExceedsStock     = NewNotice("exceeds_stock", "The quantity cannot exceed the available stock.")
	ErrNoSuchItem       = NewNotice("no_such_item", "This product is no longer part of the sale.")
	ErrEmptyCart        = NewNotice("empty_cart", "Add at least one product to the sale.")
)
