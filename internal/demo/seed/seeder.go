package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS Customers (
		CustomerID TEXT PRIMARY KEY,
		CompanyName TEXT NOT NULL,
		Country TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Products (
		ProductID INTEGER PRIMARY KEY,
		ProductName TEXT NOT NULL,
		CategoryName TEXT NOT NULL,
		UnitPrice REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Orders (
		OrderID INTEGER PRIMARY KEY,
		CustomerID TEXT NOT NULL REFERENCES Customers(CustomerID),
		OrderDate TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS "Order Details" (
		OrderID INTEGER NOT NULL REFERENCES Orders(OrderID),
		ProductID INTEGER NOT NULL REFERENCES Products(ProductID),
		UnitPrice REAL NOT NULL,
		Quantity INTEGER NOT NULL,
		Discount REAL NOT NULL
	)`,
}

// Service writes one generated dataset into the target database.
type Service struct {
	Config Config
	Logger *slog.Logger
}

func (s *Service) Run(ctx context.Context, db *sql.DB) error {
	generator := NewGenerator(s.Config.Seed, s.Config.Months, s.Config.Customers, s.Config.Products)
	customers := generator.Customers()
	products := generator.Products()
	orders := generator.Orders(customers, products)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, statement := range schemaStatements {
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	for _, c := range customers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO Customers (CustomerID, CompanyName, Country) VALUES (?, ?, ?)`,
			c.ID, c.Company, c.Country); err != nil {
			return fmt.Errorf("insert customer %s: %w", c.ID, err)
		}
	}
	for _, p := range products {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO Products (ProductID, ProductName, CategoryName, UnitPrice) VALUES (?, ?, ?, ?)`,
			p.ID, p.Name, p.Category, p.UnitPrice); err != nil {
			return fmt.Errorf("insert product %d: %w", p.ID, err)
		}
	}
	lineCount := 0
	for _, o := range orders {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO Orders (OrderID, CustomerID, OrderDate) VALUES (?, ?, ?)`,
			o.ID, o.CustomerID, o.OrderDate); err != nil {
			return fmt.Errorf("insert order %d: %w", o.ID, err)
		}
		for _, line := range o.Lines {
			lineCount++
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO "Order Details" (OrderID, ProductID, UnitPrice, Quantity, Discount) VALUES (?, ?, ?, ?, ?)`,
				o.ID, line.ProductID, line.UnitPrice, line.Quantity, line.Discount); err != nil {
				return fmt.Errorf("insert order line for order %d: %w", o.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Info("seeded sample database",
			slog.Int("customers", len(customers)),
			slog.Int("products", len(products)),
			slog.Int("orders", len(orders)),
			slog.Int("order_lines", lineCount),
		)
	}
	return nil
}
