// Package entity defines data structures used by the web layer of the librairie storefront.
package entity

// Msg represents a standard API response with success status, message text, and optional data object.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// CartLine is one enriched cart row returned to the cart page and API,
// joining the cart entry with its book.
type CartLine struct {
	CartId     int     `json:"cartId"`
	BookId     int     `json:"bookId"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Price      float64 `json:"price"`
	CoverImage string  `json:"coverImage"`
	Quantity   int     `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
}

// SearchResult is the payload of the search API.
type SearchResult struct {
	Results any `json:"results"`
	Count   int `json:"count"`
}

// ServerStatus is the admin dashboard snapshot.
type ServerStatus struct {
	Cpu       float64 `json:"cpu"`
	MemUsed   uint64  `json:"memUsed"`
	MemTotal  uint64  `json:"memTotal"`
	Uptime    uint64  `json:"uptime"`
	BookCount int64   `json:"bookCount"`
	UserCount int64   `json:"userCount"`
}
