// Package seed builds a small Northwind-style sales database so the
// service has something to query and forecast against out of the box.
// Generation is deterministic for a given seed.
package seed

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

type Customer struct {
	ID      string
	Company string
	Country string
}

type Product struct {
	ID        int
	Name      string
	Category  string
	UnitPrice float64
}

type Order struct {
	ID         int
	CustomerID string
	OrderDate  string
	Lines      []OrderLine
}

type OrderLine struct {
	ProductID int
	UnitPrice float64
	Quantity  int
	Discount  float64
}

type Generator struct {
	rnd       *rand.Rand
	months    int
	customers int
	products  int
}

var (
	countries  = []string{"Germany", "USA", "UK", "France", "Brazil", "Japan", "Mexico"}
	categories = []string{"Beverages", "Condiments", "Produce", "Seafood", "Confections"}
)

func NewGenerator(seed int64, months, customers, products int) *Generator {
	return &Generator{
		rnd:       rand.New(rand.NewSource(seed)),
		months:    months,
		customers: customers,
		products:  products,
	}
}

func (g *Generator) Customers() []Customer {
	out := make([]Customer, 0, g.customers)
	for i := 0; i < g.customers; i++ {
		out = append(out, Customer{
			ID:      fmt.Sprintf("CUST%03d", i+1),
			Company: fmt.Sprintf("Company %03d", i+1),
			Country: countries[g.rnd.Intn(len(countries))],
		})
	}
	return out
}

func (g *Generator) Products() []Product {
	out := make([]Product, 0, g.products)
	for i := 0; i < g.products; i++ {
		out = append(out, Product{
			ID:        i + 1,
			Name:      fmt.Sprintf("Product %02d", i+1),
			Category:  categories[i%len(categories)],
			UnitPrice: 5 + float64(g.rnd.Intn(9000))/100,
		})
	}
	return out
}

// Orders spreads a rising, mildly seasonal order volume over the
// configured month range ending last month, so forecast questions have
// a trend to find.
func (g *Generator) Orders(customers []Customer, products []Product) []Order {
	start := time.Now().UTC().AddDate(0, -g.months, 0)
	orderID := 10000
	out := make([]Order, 0, g.months*8)
	for m := 0; m < g.months; m++ {
		monthStart := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, m, 0)
		seasonal := 1 + 0.25*math.Sin(2*math.Pi*float64(monthStart.Month())/12)
		volume := int(float64(6+m/2) * seasonal)
		if volume < 3 {
			volume = 3
		}
		for i := 0; i < volume; i++ {
			orderID++
			day := g.rnd.Intn(28) + 1
			order := Order{
				ID:         orderID,
				CustomerID: customers[g.rnd.Intn(len(customers))].ID,
				OrderDate:  monthStart.AddDate(0, 0, day-1).Format("2006-01-02"),
			}
			lineCount := g.rnd.Intn(3) + 1
			for l := 0; l < lineCount; l++ {
				product := products[g.rnd.Intn(len(products))]
				order.Lines = append(order.Lines, OrderLine{
					ProductID: product.ID,
					UnitPrice: product.UnitPrice,
					Quantity:  g.rnd.Intn(20) + 1,
					Discount:  float64(g.rnd.Intn(3)) * 0.05,
				})
			}
			out = append(out, order)
		}
	}
	return out
}
