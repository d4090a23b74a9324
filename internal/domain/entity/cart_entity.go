package entity

// CartItem is a product snapshot captured when it was added, plus a quantity.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the per-user shopping cart, keyed by the owner's email.
// It holds at most one item per product id.
type Cart struct {
	ID            string     `json:"_id"`
	Email         string     `json:"email"`
	CartItems     []CartItem `json:"cartItems"`
	PaymentOption string     `json:"paymentOption"`
}

func NewCart(email, paymentOption string, first CartItem) *Cart {
	return &Cart{
		Email:         NormalizeEmail(email),
		CartItems:     []CartItem{first},
		PaymentOption: paymentOption,
	}
}

// IndexOf returns the position of the item for productID, or -1.
func (c *Cart) IndexOf(productID string) int {
	for i, item := range c.CartItems {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) HasProduct(productID string) bool {
	return c.IndexOf(productID) >= 0
}

// AddItem appends a line item; callers check HasProduct first.
func (c *Cart) AddItem(item CartItem) {
	c.CartItems = append(c.CartItems, item)
}

// SetQuantity overwrites the quantity of an existing line item.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	i := c.IndexOf(productID)
	if i < 0 {
		return false
	}
	c.CartItems[i].Quantity = quantity
	return true
}

func (c *Cart) RemoveItem(productID string) bool {
	i := c.IndexOf(productID)
	if i < 0 {
		return false
	}
	c.CartItems = append(c.CartItems[:i], c.CartItems[i+1:]...)
	return true
}

// Clone returns a deep copy so callers can mutate without touching stored state.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	cp := *c
	cp.CartItems = make([]CartItem, len(c.CartItems))
	copy(cp.CartItems, c.CartItems)
	return &cp
}
