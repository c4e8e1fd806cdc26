package toolcall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddItem(t *testing.T) {
	reply := `Got it! [ADD_ITEM: {"name": "Pepperoni", "size": "Large", "quantity": 2}] Anything else?`

	calls := Parse(reply)
	require.Len(t, calls, 1)

	add, ok := calls[0].(AddItem)
	require.True(t, ok)
	assert.Equal(t, "Pepperoni", add.Name)
	assert.Equal(t, "Large", add.Size)
	assert.Equal(t, 2, add.Quantity)
	assert.False(t, add.Incomplete)
}

func TestParseAddItemPythonLiteral(t *testing.T) {
	// Models sometimes emit Python dict syntax instead of JSON.
	reply := `[ADD_ITEM: {'name': 'Chicken Surprise', 'size': 'Medium', 'quantity': 1}]`

	calls := Parse(reply)
	require.Len(t, calls, 1)

	add := calls[0].(AddItem)
	assert.Equal(t, "Chicken Surprise", add.Name)
	assert.Equal(t, "Medium", add.Size)
	assert.Equal(t, 1, add.Quantity)
}

func TestParseAddItemPlaceholders(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"ellipsis string size", `[ADD_ITEM: {"name": "Pepperoni", "size": "...", "quantity": 1}]`},
		{"bare ellipsis", `[ADD_ITEM: {'name': 'Pepperoni', 'size': ..., 'quantity': 1}]`},
		{"None size", `[ADD_ITEM: {'name': 'Pepperoni', 'size': None, 'quantity': 1}]`},
		{"missing size", `[ADD_ITEM: {"name": "Pepperoni", "quantity": 1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := Parse(tt.reply)
			require.Len(t, calls, 1)

			add := calls[0].(AddItem)
			assert.Equal(t, "Pepperoni", add.Name)
			assert.Empty(t, add.Size)
			assert.True(t, add.Incomplete)
		})
	}
}

func TestParseAddItemPlaceholderQuantity(t *testing.T) {
	reply := `[ADD_ITEM: {"name": "Pepperoni", "size": "Large", "quantity": "..."}]`

	calls := Parse(reply)
	require.Len(t, calls, 1)

	add := calls[0].(AddItem)
	assert.Equal(t, 1, add.Quantity)
	assert.False(t, add.Incomplete)
}

func TestParseSetDetails(t *testing.T) {
	reply := `Thanks! [SET_DETAILS: {"address": "123 Main Street", "phone": "03001234567"}] Confirm order?`

	calls := Parse(reply)
	require.Len(t, calls, 1)

	details, ok := calls[0].(SetDetails)
	require.True(t, ok)
	assert.True(t, details.HasAddress)
	assert.True(t, details.HasPhone)
	assert.Equal(t, "123 Main Street", details.Address)
	assert.Equal(t, "03001234567", details.Phone)
}

func TestParseSetDetailsPartial(t *testing.T) {
	calls := Parse(`[SET_DETAILS: {"address": "123 Main Street"}]`)
	require.Len(t, calls, 1)

	details := calls[0].(SetDetails)
	assert.True(t, details.HasAddress)
	assert.False(t, details.HasPhone)
}

func TestParseSetDetailsNumericPhone(t *testing.T) {
	// A bare-number phone must come back as its digit string.
	calls := Parse(`[SET_DETAILS: {"address": "123 Main Street", "phone": 3001234567}]`)
	require.Len(t, calls, 1)

	details := calls[0].(SetDetails)
	assert.Equal(t, "3001234567", details.Phone)
}

func TestParseSaveOrder(t *testing.T) {
	calls := Parse(`Order confirmed! [SAVE_ORDER]`)
	require.Len(t, calls, 1)
	assert.IsType(t, SaveOrder{}, calls[0])
}

func TestParseCombined(t *testing.T) {
	reply := `Done! [ADD_ITEM: {"name": "Pepperoni", "size": "Large", "quantity": 1}] ` +
		`[SET_DETAILS: {"address": "123 Main Street", "phone": "03001234567"}] [SAVE_ORDER]`

	calls := Parse(reply)
	require.Len(t, calls, 3)
	assert.IsType(t, AddItem{}, calls[0])
	assert.IsType(t, SetDetails{}, calls[1])
	assert.IsType(t, SaveOrder{}, calls[2])
}

func TestParseMalformedPayload(t *testing.T) {
	// Unparseable payload degrades to "no directive", never an error.
	calls := Parse(`[ADD_ITEM: {name: Pepperoni size large}]`)
	assert.Empty(t, calls)
}

func TestParseNoDirectives(t *testing.T) {
	assert.Empty(t, Parse("Sure, what size would you like?"))
	assert.Empty(t, Parse(""))
}

func TestParseDeterministic(t *testing.T) {
	reply := `[ADD_ITEM: {"name": "Pepperoni", "size": "Large", "quantity": 1}] [SAVE_ORDER]`
	first := Parse(reply)
	second := Parse(reply)
	assert.Equal(t, first, second)
}

func TestClean(t *testing.T) {
	tests := []struct {
		reply string
		want  string
	}{
		{`Got it! [ADD_ITEM: {"name": "Pepperoni", "size": "Large", "quantity": 1}] Anything else?`, "Got it! Anything else?"},
		{`[SAVE_ORDER]`, "Done."},
		{"Plain reply with no markup", "Plain reply with no markup"},
		{"  spaced   out  ", "spaced out"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Clean(tt.reply))
	}
}
