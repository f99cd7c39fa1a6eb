package query

import (
	"fmt"
	"math/rand/v2"

	"queryexplorer/app/interfaces"
)

// CatalogEntry describes a predefined query for the selector dropdown
type CatalogEntry struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	RowCount int    `json:"rowCount"`
}

// predefined lists the built-in queries and the size of their result sets
var predefined = []struct {
	text string
	rows int
}{
	{"SELECT * FROM users", 10000},
	{"SELECT name, age FROM employees", 5000},
	{"SELECT email FROM customers", 2000},
}

// Catalog holds the predefined queries with rows generated once at startup
type Catalog struct {
	queries []interfaces.Query
}

// NewCatalog generates the predefined queries' rows from seed (0 = random)
func NewCatalog(seed uint64) *Catalog {
	return newCatalogWithRand(newRand(seed))
}

func newCatalogWithRand(r *rand.Rand) *Catalog {
	c := &Catalog{queries: make([]interfaces.Query, len(predefined))}
	for i, p := range predefined {
		c.queries[i] = interfaces.Query{
			ID:   i + 1,
			Text: p.text,
			Rows: GenerateRows(r, p.rows),
		}
	}
	return c
}

// Default returns the query selected when the application starts
func (c *Catalog) Default() interfaces.Query {
	return c.queries[0]
}

// Lookup returns the predefined query with the given id
func (c *Catalog) Lookup(id int) (interfaces.Query, error) {
	for _, q := range c.queries {
		if q.ID == id {
			return q, nil
		}
	}
	return interfaces.Query{}, fmt.Errorf("no predefined query with id %d", id)
}

// Entries lists the catalog for the frontend without the rows
func (c *Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, len(c.queries))
	for i, q := range c.queries {
		out[i] = CatalogEntry{ID: q.ID, Text: q.Text, RowCount: len(q.Rows)}
	}
	return out
}
