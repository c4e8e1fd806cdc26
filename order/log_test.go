package order

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLogAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.jsonl")
	fl := NewFileLog(path, nil)

	first := &ConfirmedOrder{
		OrderID:   "ORD-AAAA1111",
		Timestamp: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
		Items: []LineItem{
			{Category: "Pizza", Name: "Pepperoni", Size: "Large", Quantity: 1},
		},
		Address:    "123 Main Street",
		Phone:      "03001234567",
		TotalItems: 1,
		Status:     "confirmed",
	}
	second := &ConfirmedOrder{OrderID: "ORD-BBBB2222", TotalItems: 1, Status: "confirmed"}

	require.NoError(t, fl.Append(context.Background(), first))
	require.NoError(t, fl.Append(context.Background(), second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var got ConfirmedOrder
	require.NoError(t, sonic.UnmarshalString(lines[0], &got))
	assert.Equal(t, "ORD-AAAA1111", got.OrderID)
	assert.Equal(t, "Pepperoni", got.Items[0].Name)

	require.NoError(t, sonic.UnmarshalString(lines[1], &got))
	assert.Equal(t, "ORD-BBBB2222", got.OrderID)
}

func TestFileLogAppendBadPath(t *testing.T) {
	fl := NewFileLog(filepath.Join(t.TempDir(), "missing", "orders.jsonl"), nil)
	err := fl.Append(context.Background(), &ConfirmedOrder{OrderID: "ORD-CCCC3333"})
	assert.Error(t, err)
}
