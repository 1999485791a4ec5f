package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"shopadmin/pkg/domain"
)

// OrderSummary is one row of the admin orders table: scalar contact fields
// plus display strings derived from the order's line items.
type OrderSummary struct {
	ID            string `json:"id"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	County        string `json:"county"`
	CustomerName  string `json:"customerName"`
	IDNumber      string `json:"idNumber"`
	CustomerEmail string `json:"customerEmail"`
	TrackingID    string `json:"trackingId"`
	Products      string `json:"products"`
	Sizes         string `json:"sizes"`
	Colors        string `json:"colors"`
	TotalPrice    string `json:"totalPrice"`
	IsPaid        bool   `json:"isPaid"`
	CreatedAt     string `json:"createdAt"`
}

// BuildOrderSummary reshapes a full order into its table row. Pure function
// of the order value; recomputed on every listing.
func BuildOrderSummary(o domain.Order) OrderSummary {
	products := make([]string, 0, len(o.Items))
	var sizeNames, colorNames []string
	seenSizes := map[string]bool{}
	seenColors := map[string]bool{}
	for _, item := range o.Items {
		if item.Product == nil {
			continue
		}
		p := item.Product
		itemSizes := make([]string, 0, len(p.Sizes))
		for _, sz := range p.Sizes {
			itemSizes = append(itemSizes, sz.Name)
			if !seenSizes[sz.Name] {
				seenSizes[sz.Name] = true
				sizeNames = append(sizeNames, sz.Name)
			}
		}
		itemColors := make([]string, 0, len(p.Colors))
		for _, c := range p.Colors {
			itemColors = append(itemColors, c.Name)
			if !seenColors[c.Name] {
				seenColors[c.Name] = true
				colorNames = append(colorNames, c.Name)
			}
		}
		sizeLabel := "No size"
		if len(itemSizes) > 0 {
			sizeLabel = strings.Join(itemSizes, "/")
		}
		colorLabel := "No color"
		if len(itemColors) > 0 {
			colorLabel = strings.Join(itemColors, "/")
		}
		products = append(products, fmt.Sprintf("%s (%d) [%s] [%s]", p.Name, item.Quantity, sizeLabel, colorLabel))
	}
	return OrderSummary{
		ID:            o.ID,
		Phone:         o.Phone,
		Address:       o.Address,
		County:        o.County,
		CustomerName:  o.CustomerName,
		IDNumber:      o.IDNumber,
		CustomerEmail: o.CustomerEmail,
		TrackingID:    o.TrackingID,
		Products:      strings.Join(products, ", "),
		Sizes:         strings.Join(sizeNames, ", "),
		Colors:        strings.Join(colorNames, ", "),
		TotalPrice:    FormatCurrency(OrderTotal(o)),
		IsPaid:        o.IsPaid,
		CreatedAt:     FormatOrdinalDate(o.CreatedAt),
	}
}

// OrderTotal is the sum over line items of product price times quantity.
func OrderTotal(o domain.Order) float64 {
	var total float64
	for _, item := range o.Items {
		if item.Product == nil {
			continue
		}
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// FormatCurrency renders a USD amount like "$1,234.56".
func FormatCurrency(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	out := "$" + b.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// FormatOrdinalDate renders a timestamp like "August 31st, 2026".
func FormatOrdinalDate(t time.Time) string {
	day := t.Day()
	suffix := "th"
	switch {
	case day%100 >= 11 && day%100 <= 13:
		suffix = "th"
	case day%10 == 1:
		suffix = "st"
	case day%10 == 2:
		suffix = "nd"
	case day%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%s %d%s, %d", t.Month().String(), day, suffix, t.Year())
}
