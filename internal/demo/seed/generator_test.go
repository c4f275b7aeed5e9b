package seed

import (
	"reflect"
	"testing"
)

func TestGeneratorIsDeterministicForSeed(t *testing.T) {
	first := NewGenerator(42, 6, 5, 4)
	second := NewGenerator(42, 6, 5, 4)

	firstCustomers := first.Customers()
	secondCustomers := second.Customers()
	if !reflect.DeepEqual(firstCustomers, secondCustomers) {
		t.Fatal("customers differ for the same seed")
	}

	firstProducts := first.Products()
	secondProducts := second.Products()
	if !reflect.DeepEqual(firstProducts, secondProducts) {
		t.Fatal("products differ for the same seed")
	}

	firstOrders := first.Orders(firstCustomers, firstProducts)
	secondOrders := second.Orders(secondCustomers, secondProducts)
	if len(firstOrders) != len(secondOrders) {
		t.Fatalf("order counts differ: %d vs %d", len(firstOrders), len(secondOrders))
	}
}

func TestGeneratorOrdersCoverEveryMonth(t *testing.T) {
	g := NewGenerator(7, 12, 10, 6)
	customers := g.Customers()
	products := g.Products()
	orders := g.Orders(customers, products)

	months := map[string]bool{}
	for _, o := range orders {
		if len(o.OrderDate) < 7 {
			t.Fatalf("bad order date %q", o.OrderDate)
		}
		months[o.OrderDate[:7]] = true
		if len(o.Lines) == 0 {
			t.Fatalf("order %d has no lines", o.ID)
		}
	}
	if len(months) != 12 {
		t.Fatalf("months covered = %d, want 12", len(months))
	}
}

func TestLoadConfigFromEnvOverridesAndValidates(t *testing.T) {
	cfg, err := LoadConfigFromEnv(func(key string) (string, bool) {
		values := map[string]string{
			"QUERYDECK_SEED_DSN":    "demo.db",
			"QUERYDECK_SEED_MONTHS": "6",
			"QUERYDECK_SEED_SEED":   "99",
		}
		value, ok := values[key]
		return value, ok
	})
	if err != nil {
		t.Fatalf("LoadConfigFromEnv() error = %v", err)
	}
	if cfg.DSN != "demo.db" || cfg.Months != 6 || cfg.Seed != 99 {
		t.Fatalf("cfg = %+v", cfg)
	}

	_, err = LoadConfigFromEnv(func(key string) (string, bool) {
		if key == "QUERYDECK_SEED_MONTHS" {
			return "0", true
		}
		return "", false
	})
	if err == nil {
		t.Fatal("expected validation error for zero months")
	}
}
