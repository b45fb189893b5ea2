package item

import (
	"strconv"
	"strings"
)

// Number tolerates Zoho returning numeric fields as either JSON numbers
// or quoted strings, which it does inconsistently across endpoints.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

// Location is a per-warehouse stock record on an item.
type Location struct {
	LocationID             string `json:"location_id"`
	LocationName           string `json:"location_name"`
	LocationAvailableStock Number `json:"location_available_stock"`
}

// Item is the subset of a Zoho Inventory item this service reads.
type Item struct {
	ItemID           string     `json:"item_id"`
	Name             string     `json:"name"`
	Rate             Number     `json:"rate"`
	PurchaseRate     Number     `json:"purchase_rate"`
	AvailableForSale Number     `json:"available_for_sale"`
	Locations        []Location `json:"locations"`
}

// AvailableStock sums available stock across all locations.
func (i *Item) AvailableStock() float64 {
	var total float64
	for _, loc := range i.Locations {
		total += float64(loc.LocationAvailableStock)
	}
	return total
}

// StockSnapshot is the point-in-time availability for one item.
type StockSnapshot struct {
	ItemID         string
	Name           string
	PurchaseRate   float64
	AvailableStock float64
}

// PageContext mirrors Zoho's pagination envelope.
type PageContext struct {
	Page        int  `json:"page"`
	PerPage     int  `json:"per_page"`
	HasMorePage bool `json:"has_more_page"`
}
