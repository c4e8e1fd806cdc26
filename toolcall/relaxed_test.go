package toolcall

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPythonLiteralToJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"single quotes",
			`{'name': 'Pepperoni', 'quantity': 2}`,
			`{"name": "Pepperoni", "quantity": 2}`,
		},
		{
			"python constants",
			`{'size': None, 'spicy': True, 'vegan': False}`,
			`{"size": null, "spicy": true, "vegan": false}`,
		},
		{
			"bare ellipsis",
			`{'size': ...}`,
			`{"size": "..."}`,
		},
		{
			"Ellipsis literal",
			`{'size': Ellipsis}`,
			`{"size": "..."}`,
		},
		{
			"already valid JSON untouched",
			`{"name": "Pepperoni"}`,
			`{"name": "Pepperoni"}`,
		},
		{
			"None inside a string survives",
			`{"note": "None of the above"}`,
			`{"note": "None of the above"}`,
		},
		{
			"embedded double quote escaped",
			`{'name': 'The "Special"'}`,
			`{"name": "The \"Special\""}`,
		},
		{
			"escaped single quote",
			`{'name': 'O\'Brien Special'}`,
			`{"name": "O'Brien Special"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pythonLiteralToJSON(tt.in))
		})
	}
}
