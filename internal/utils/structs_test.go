package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type inner struct {
	City *string `db:"city"`
	Zip  string  `db:"zip_code"`
}

type outer struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Skipped string `db:"-"`
	NoTag   string

	Inner inner `db:"-"`
}

type embedded struct {
	ID string `db:"id"`
	inner
	Active bool `db:"active"`
}

func TestStructTagValues(t *testing.T) {
	got := StructTagValues(outer{})
	assert.Equal(t, []string{"id", "name"}, got)
}

func TestStructTagValuesEmbedded(t *testing.T) {
	got := StructTagValues(embedded{})
	assert.ElementsMatch(t, []string{"id", "city", "zip_code", "active"}, got)
}

func TestStructToMap(t *testing.T) {
	got := StructToMap(&outer{ID: "abc", Name: "warehouse", Skipped: "x", NoTag: "y"})
	assert.Equal(t, map[string]any{"id": "abc", "name": "warehouse"}, got)
}

func TestStructToMapEmbedded(t *testing.T) {
	city := "Portland"
	got := StructToMap(embedded{ID: "abc", inner: inner{City: &city, Zip: "97201"}, Active: true})

	assert.Equal(t, "abc", got["id"])
	assert.Equal(t, &city, got["city"])
	assert.Equal(t, "97201", got["zip_code"])
	assert.Equal(t, true, got["active"])
}

func TestNanoID(t *testing.T) {
	id := NanoID()
	assert.Len(t, id, NanoidSize)
	assert.NotEqual(t, id, NanoID())
}
