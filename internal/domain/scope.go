package domain

// OrderScope decides which orders a seller may list and revise.
type OrderScope string

const (
	// OrderScopeAll lets every seller see every order.
	OrderScopeAll OrderScope = "all"
	// OrderScopeBusiness limits a seller to orders holding at least one line
	// of their own business.
	OrderScopeBusiness OrderScope = "business"
)

// BusinessFilter returns the business name a seller's order listing must be
// narrowed to. ok is false when the seller can see no orders at all.
func (s OrderScope) BusinessFilter(seller Identity) (business string, ok bool) {
	if s != OrderScopeBusiness {
		return "", true
	}
	if seller.BusinessName == "" {
		return "", false
	}
	return seller.BusinessName, true
}

// Allows reports whether seller may see and revise o.
func (s OrderScope) Allows(seller Identity, o Order) bool {
	if !seller.IsSeller() {
		return false
	}
	business, ok := s.BusinessFilter(seller)
	if !ok {
		return false
	}
	if business == "" {
		return true
	}
	for _, line := range o.Items {
		if line.BusinessName == business {
			return true
		}
	}
	return false
}
