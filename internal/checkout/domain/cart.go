package domain

import "fmt"

// CartLine is one product entry with its requested quantity.
type CartLine struct {
	Product  *Product
	Quantity int
}

// ShoppingCart maps products (by name) to requested quantities. Lines keep
// their insertion order, and re-adding a product overwrites its quantity in
// place rather than accumulating.
type ShoppingCart struct {
	lines []CartLine
	index map[string]int
}

func NewShoppingCart() *ShoppingCart {
	return &ShoppingCart{index: make(map[string]int)}
}

// ContainsProduct reports membership using product identity by name.
func (c *ShoppingCart) ContainsProduct(product *Product) bool {
	_, ok := c.index[product.Name()]
	return ok
}

// CalculateTotal sums price times quantity over all lines. An empty cart
// totals to 0.
func (c *ShoppingCart) CalculateTotal() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Product.Price() * float64(line.Quantity)
	}
	return total
}

// AddProduct records the requested quantity for a product. Availability is
// checked at add time only; it is not re-validated later.
func (c *ShoppingCart) AddProduct(product *Product, amount int) error {
	if !product.IsAvailable(amount) {
		return fmt.Errorf("%w: product %s has only %d items",
			ErrInsufficientStock, product, product.AvailableAmount())
	}

	if i, ok := c.index[product.Name()]; ok {
		c.lines[i] = CartLine{Product: product, Quantity: amount}
		return nil
	}

	c.index[product.Name()] = len(c.lines)
	c.lines = append(c.lines, CartLine{Product: product, Quantity: amount})
	return nil
}

// RemoveProduct deletes the product's line if present and reports whether a
// removal occurred. Absence is not an error.
func (c *ShoppingCart) RemoveProduct(product *Product) bool {
	i, ok := c.index[product.Name()]
	if !ok {
		return false
	}

	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, product.Name())
	for name, j := range c.index {
		if j > i {
			c.index[name] = j - 1
		}
	}
	return true
}

// ProductIDs returns the cart's product identifiers in line order without
// touching inventory.
func (c *ShoppingCart) ProductIDs() []string {
	ids := make([]string, 0, len(c.lines))
	for _, line := range c.lines {
		ids = append(ids, line.Product.String())
	}
	return ids
}

// SubmitCartOrder is the checkout step: every line buys its quantity from
// the product's stock, then the cart is cleared. Returns the product
// identifiers in line order, one per entry.
//
// Lines cannot fail here because availability was validated when they were
// added; the stock mutation is applied per line with no rollback.
func (c *ShoppingCart) SubmitCartOrder() []string {
	ids := make([]string, 0, len(c.lines))
	for _, line := range c.lines {
		line.Product.Buy(line.Quantity)
		ids = append(ids, line.Product.String())
	}

	c.lines = nil
	c.index = make(map[string]int)
	return ids
}

// Len returns the number of lines currently in the cart.
func (c *ShoppingCart) Len() int { return len(c.lines) }
