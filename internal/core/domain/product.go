package domain

// Product is a listing offered by a seller.
// Price is free text as entered by the seller; it is never parsed.
type Product struct {
	ID          string
	Title       string
	Description string
	Price       string
	SellerID    string
}
