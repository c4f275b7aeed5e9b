package translate

import (
	"regexp"
	"strings"
)

var (
	fenceOpenPattern  = regexp.MustCompile("(?is)^```sql\\s*|\\s*```$")
	fenceBlockPattern = regexp.MustCompile("(?is)```sql\\s*(.*?)```")

	dateAliasPattern  = regexp.MustCompile(`(?i)\bas\s+(month|year|period)\b`)
	valueAliasPattern = regexp.MustCompile(`(?i)\bas\s+(amount|sales|revenue|total|qty|quantity)\b`)
)

// defaultForecastSQL is the canned monthly order-count series used when
// a forecast question yields SQL with no usable period column.
const defaultForecastSQL = "SELECT strftime('%Y-%m', OrderDate) AS date, " +
	"COUNT(*) AS value FROM Orders GROUP BY strftime('%Y-%m', OrderDate) ORDER BY date;"

// CleanSQL strips markdown fences and surrounding prose from a model
// reply, keeping the first statement when the reply rambles past one.
func CleanSQL(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return s
	}
	if m := fenceBlockPattern.FindStringSubmatch(text); m != nil {
		s = strings.TrimSpace(m[1])
	} else {
		s = strings.TrimSpace(fenceOpenPattern.ReplaceAllString(s, ""))
		s = strings.TrimSpace(strings.Trim(s, "`"))
	}
	lowered := strings.ToLower(strings.TrimSpace(s))
	if strings.Contains(s, ";") && strings.Contains(s, "\n") &&
		!strings.HasPrefix(lowered, "select") && !strings.HasPrefix(lowered, "with") {
		s = strings.SplitN(s, ";", 2)[0] + ";"
	}
	return strings.TrimSpace(s)
}

// EnforceForecastColumns rewrites generated SQL so a forecast query
// returns exactly the date/value columns the forecasters expect. SQL
// with no period alias and no grouping is replaced wholesale by the
// canned monthly series.
func EnforceForecastColumns(sql string) string {
	sql = dateAliasPattern.ReplaceAllString(sql, "AS date")
	sql = valueAliasPattern.ReplaceAllString(sql, "AS value")

	lowered := strings.ToLower(sql)
	if !strings.Contains(lowered, " as date") && !strings.Contains(lowered, "group by") {
		return defaultForecastSQL
	}
	return sql
}

// FallbackSQL maps a handful of common question shapes onto canned SQL
// for the sample sales schema, used when no model is configured or the
// model call fails.
func FallbackSQL(question string) string {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "top") && strings.Contains(q, "customer"):
		return "SELECT c.CompanyName, COUNT(o.OrderID) AS TotalOrders " +
			"FROM Customers c JOIN Orders o ON c.CustomerID = o.CustomerID " +
			"GROUP BY c.CustomerID, c.CompanyName " +
			"ORDER BY TotalOrders DESC LIMIT 5;"
	case strings.Contains(q, "how many orders") || strings.Contains(q, "total orders"):
		return defaultForecastSQL
	case strings.Contains(q, "top") && strings.Contains(q, "employee"):
		return "SELECT e.FirstName || ' ' || e.LastName AS EmployeeName, COUNT(o.OrderID) AS OrdersHandled " +
			"FROM Employees e JOIN Orders o ON e.EmployeeID = o.EmployeeID " +
			"GROUP BY e.EmployeeID ORDER BY OrdersHandled DESC LIMIT 3;"
	case strings.Contains(q, "by category"):
		return "SELECT c.CategoryName AS Category, " +
			"SUM(od.UnitPrice * od.Quantity * (1 - od.Discount)) AS SalesAmount " +
			"FROM Orders o " +
			`JOIN "Order Details" od ON od.OrderID = o.OrderID ` +
			"JOIN Products p ON p.ProductID = od.ProductID " +
			"JOIN Categories c ON c.CategoryID = p.CategoryID " +
			"GROUP BY c.CategoryName ORDER BY SalesAmount DESC;"
	}
	return defaultForecastSQL
}
