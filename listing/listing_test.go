package listing

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name      string
	Company   string
	CreatedAt time.Time
}

func rowFields(r row) []string { return []string{r.Name, r.Company} }

func sampleRows() []row {
	now := time.Now()
	return []row{
		{Name: "Shree Balaji Fuels", Company: "HPCL", CreatedAt: now.Add(-2 * time.Hour)},
		{Name: "Sagar Highway Services", Company: "IOCL", CreatedAt: now.Add(-3 * 24 * time.Hour)},
		{Name: "Maa Sharda Filling Station", Company: "BPCL", CreatedAt: now.Add(-20 * 24 * time.Hour)},
		{Name: "Balaji Service Station", Company: "HPCL", CreatedAt: now.Add(-60 * 24 * time.Hour)},
	}
}

func TestFilterText(t *testing.T) {
	rows := sampleRows()

	t.Run("case-insensitive substring", func(t *testing.T) {
		got := FilterText(rows, "balaji", rowFields)
		require.Len(t, got, 2)
		assert.Equal(t, "Shree Balaji Fuels", got[0].Name)
		assert.Equal(t, "Balaji Service Station", got[1].Name)
	})

	t.Run("empty term is a no-op", func(t *testing.T) {
		assert.Equal(t, rows, FilterText(rows, "", rowFields))
		assert.Equal(t, rows, FilterText(rows, "   ", rowFields))
	})

	t.Run("idempotent and order-preserving", func(t *testing.T) {
		once := FilterText(rows, "hpcl", rowFields)
		twice := FilterText(once, "hpcl", rowFields)
		assert.Equal(t, once, twice)
	})
}

func TestFacets(t *testing.T) {
	rows := sampleRows()
	company := func(r row) string { return r.Company }

	t.Run("all disables the facet", func(t *testing.T) {
		assert.Len(t, Apply(rows, Facet("all", company)), 4)
		assert.Len(t, Apply(rows, Facet("", company)), 4)
	})

	t.Run("exact match", func(t *testing.T) {
		got := Apply(rows, Facet("HPCL", company))
		require.Len(t, got, 2)
	})

	t.Run("facets compose with AND", func(t *testing.T) {
		got := Apply(rows,
			Facet("HPCL", company),
			DateRange("week", time.Now(), func(r row) time.Time { return r.CreatedAt }),
		)
		require.Len(t, got, 1)
		assert.Equal(t, "Shree Balaji Fuels", got[0].Name)
	})
}

func TestDateRange(t *testing.T) {
	rows := sampleRows()
	now := time.Now()
	created := func(r row) time.Time { return r.CreatedAt }

	assert.Len(t, Apply(rows, DateRange("today", now, created)), 1)
	assert.Len(t, Apply(rows, DateRange("week", now, created)), 2)
	assert.Len(t, Apply(rows, DateRange("month", now, created)), 3)
	assert.Len(t, Apply(rows, DateRange("all", now, created)), 4)

	t.Run("zero creation time never matches a window", func(t *testing.T) {
		blank := []row{{Name: "no timestamp"}}
		assert.Empty(t, Apply(blank, DateRange("month", now, created)))
	})
}

func TestWindow(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	t.Run("23 items, page 2, size 10 yields indices 20..22", func(t *testing.T) {
		got := Window(items, 2, 10)
		require.Len(t, got, 3)
		assert.Equal(t, []int{20, 21, 22}, got)
	})

	t.Run("past the end", func(t *testing.T) {
		assert.Empty(t, Window(items, 3, 10))
	})

	t.Run("invalid inputs", func(t *testing.T) {
		assert.Empty(t, Window(items, -1, 10))
		assert.Empty(t, Window(items, 0, 0))
	})
}

func TestPager(t *testing.T) {
	p := NewPager(10)
	p.SetPage(2)
	require.Equal(t, 2, p.Page())

	t.Run("changing page size resets to page 0", func(t *testing.T) {
		p.SetPageSize(5)
		assert.Equal(t, 0, p.Page())
		assert.Equal(t, 5, p.PageSize())
	})

	t.Run("same page size keeps the page", func(t *testing.T) {
		p.SetPage(3)
		p.SetPageSize(5)
		assert.Equal(t, 3, p.Page())
	})

	t.Run("filter change resets to page 0", func(t *testing.T) {
		p.SetPage(4)
		p.FilterChanged()
		assert.Equal(t, 0, p.Page())
	})
}

func TestApply_Deterministic(t *testing.T) {
	rows := sampleRows()
	pred := Facet("HPCL", func(r row) string { return r.Company })

	first := Apply(rows, pred)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Apply(rows, pred), fmt.Sprintf("run %d", i))
	}
}
