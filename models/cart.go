package models

import "fmt"

// Cart adalah order-in-progress milik satu sesi meja, disimpan di Redis
// dengan tmp code sebagai kunci. Bentuknya tertutup dan divalidasi di
// boundary store, bukan dipercaya begitu saja dari JSON caller.
type Cart struct {
	TmpCode      string            `json:"tmp_code"`
	Participants []CartParticipant `json:"participants"`
}

// CartParticipant mengelompokkan item milik satu peserta sesi.
type CartParticipant struct {
	Name  string     `json:"name"`
	Color string     `json:"color"`
	Items []CartItem `json:"items"`
}

type CartItem struct {
	ProductID         uint    `json:"product_id"`
	Quantity          int     `json:"quantity"`
	ModifierOptionIDs []uint  `json:"modifier_option_ids"`
	Price             float64 `json:"price"`
}

// Validate memeriksa bentuk cart sebelum ditulis ke store.
func (cart *Cart) Validate() error {
	if len(cart.Participants) == 0 {
		return fmt.Errorf("cart must have at least one participant")
	}
	for _, p := range cart.Participants {
		if p.Name == "" {
			return fmt.Errorf("participant name is required")
		}
		for _, item := range p.Items {
			if item.ProductID == 0 {
				return fmt.Errorf("cart item product_id is required")
			}
			if item.Quantity <= 0 {
				return fmt.Errorf("cart item quantity must be positive")
			}
			if item.Price < 0 {
				return fmt.Errorf("cart item price cannot be negative")
			}
		}
	}
	return nil
}

// Subtotal menjumlahkan harga seluruh item dalam cart.
func (cart *Cart) Subtotal() float64 {
	var total float64
	for _, p := range cart.Participants {
		for _, item := range p.Items {
			total += item.Price * float64(item.Quantity)
		}
	}
	return total
}
