package cart

// Client 把 Cart 和 Store 绑在一起：每次改动立刻写回，
// 进程随时退出也不丢状态。
type Client struct {
	store Store
	cart  Cart
}

func Open(store Store) (*Client, error) {
	c, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Client{store: store, cart: c}, nil
}

func (c *Client) Set(slug string, qty int) error {
	c.cart.Set(slug, qty)
	return c.store.Save(c.cart)
}

func (c *Client) Add(slug string, delta int) error {
	c.cart.Add(slug, delta)
	return c.store.Save(c.cart)
}

func (c *Client) Remove(slug string) error {
	c.cart.Remove(slug)
	return c.store.Save(c.cart)
}

func (c *Client) Clear() error {
	c.cart = Cart{}
	return c.store.Save(c.cart)
}

func (c *Client) Quantity(slug string) int { return c.cart[slug] }
func (c *Client) Count() int               { return c.cart.Count() }

func (c *Client) Subtotal(priceOf func(string) (int64, bool)) int64 {
	return c.cart.Subtotal(priceOf)
}

// Items 返回一份拷贝，调用方改不到内部状态
func (c *Client) Items() Cart {
	out := make(Cart, len(c.cart))
	for k, v := range c.cart {
		out[k] = v
	}
	return out
}
