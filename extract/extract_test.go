package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantity(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"I want 2 pizzas", 2},
		{"give me 10 large ones", 10},
		{"two chicken surprise pizzas", 2},
		{"make it three", 3},
		{"a pizza please", 1},
		{"", 1},
		{"0 pizzas", 1},
		{"someone said something", 1}, // "one" inside "someone" must not match
		{"I want one pepperoni", 1},
		{"ten pies", 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Quantity(tt.text), "text: %q", tt.text)
	}
}

func TestQuantityDigitBeatsWord(t *testing.T) {
	// Digit tokens take priority over number words.
	assert.Equal(t, 4, Quantity("4 pizzas, not two"))
}

func TestFlavor(t *testing.T) {
	vocab := []string{"chicken surprise", "jamaican bbq", "pepperoni", "peri peri"}

	flavor, ok := Flavor("Two Chicken Surprise pizzas please", vocab)
	assert.True(t, ok)
	assert.Equal(t, "chicken surprise", flavor)

	flavor, ok = Flavor("PERI PERI", vocab)
	assert.True(t, ok)
	assert.Equal(t, "peri peri", flavor)

	_, ok = Flavor("margherita", vocab)
	assert.False(t, ok)

	_, ok = Flavor("", vocab)
	assert.False(t, ok)
}

func TestSize(t *testing.T) {
	sizes := []string{"small", "regular", "medium", "large", "xxl"}
	aliases := map[string]string{
		"smal": "small", "reg": "regular", "med": "medium",
		"larj": "large", "xl": "xxl", "extra large": "xxl",
	}

	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"large please", "large", true},
		{"LARGE", "large", true},
		{"a larj one", "large", true},
		{"extra large", "xxl", true}, // must not resolve to "large"
		{"xl", "xxl", true},
		{"medium", "medium", true},
		{"med", "medium", true},
		{"the big one", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := Size(tt.text, sizes, aliases)
		assert.Equal(t, tt.ok, ok, "text: %q", tt.text)
		assert.Equal(t, tt.want, got, "text: %q", tt.text)
	}
}

func TestPhoneDigits(t *testing.T) {
	phone, ok := PhoneDigits("my number is 0300 123-4567")
	assert.True(t, ok)
	assert.Equal(t, "03001234567", phone)

	phone, ok = PhoneDigits("555123456")
	assert.True(t, ok)
	assert.Equal(t, "555123456", phone)

	// Too short after stripping.
	_, ok = PhoneDigits("call 12345")
	assert.False(t, ok)

	_, ok = PhoneDigits("no digits here")
	assert.False(t, ok)
}

func TestIsValidAddress(t *testing.T) {
	assert.True(t, IsValidAddress("123 Main Street, Springfield"))
	assert.False(t, IsValidAddress(""))
	assert.False(t, IsValidAddress("abc"))
	assert.False(t, IsValidAddress("123 Main Street ..."))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("03001234567"))
	assert.True(t, IsValidPhone("+92 300 1234"))
	assert.False(t, IsValidPhone(""))
	assert.False(t, IsValidPhone("12345"))
	assert.False(t, IsValidPhone("no digits at all"))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Chicken Surprise", Title("chicken surprise"))
	assert.Equal(t, "XXL", Title("xxl"))
	assert.Equal(t, "Jamaican BBQ", Title("jamaican bbq"))
	assert.Equal(t, "Large", Title("LARGE"))
}
