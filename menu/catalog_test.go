package menu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"Pizza", "Sides", "Drinks"}, c.Categories())
	assert.True(t, c.HasItem("chicken surprise"))
	assert.True(t, c.HasItem("Fries"))
	assert.False(t, c.HasItem("sushi"))

	// Only pizza-like categories feed the flavor vocabulary.
	flavors := c.Flavors()
	assert.Contains(t, flavors, "pepperoni")
	assert.NotContains(t, flavors, "fries")
	assert.NotContains(t, flavors, "cola")
}

func TestCatalogSizes(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"small", "regular", "medium", "large", "xxl"}, c.Sizes())
	assert.Equal(t, "xxl", c.SizeAliases()["extra large"])
	assert.Equal(t, "large", c.SizeAliases()["larj"])
}

func TestSizeRequired(t *testing.T) {
	c := Default()

	assert.True(t, c.SizeRequired("Pizza"))
	assert.True(t, c.SizeRequired("Pizza Flavors"))
	assert.False(t, c.SizeRequired("Sides"))
	assert.False(t, c.SizeRequired("Drinks"))
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.csv")
	csv := "Category,Item\n" +
		"Pizza,Quattro Formaggi\n" +
		"Pizza,Diavola\n" +
		"Sides,Olives\n" +
		"Pizza, \n" + // blank item skipped
		"Drinks,Water\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Pizza", "Sides", "Drinks"}, c.Categories())
	assert.Equal(t, []string{"Quattro Formaggi", "Diavola"}, c.Items("Pizza"))
	assert.Equal(t, []string{"quattro formaggi", "diavola"}, c.Flavors())
	assert.True(t, c.HasItem("diavola"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadEmptyMenu(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.csv")
	require.NoError(t, os.WriteFile(path, []byte("Category,Item\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
