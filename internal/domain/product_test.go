package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("  Hammer  ", 12.5)
	require.NoError(t, err)

	assert.Equal(t, "Hammer", p.Name)
	assert.Equal(t, DefaultUnit, p.Unit)
	assert.Equal(t, "Hammer", p.Description)
	assert.Zero(t, p.ImportPrice)
	assert.NotZero(t, p.ID)
}

func TestProductValidate(t *testing.T) {
	valid := func() *Product {
		p, err := NewProduct("Hammer", 12.5)
		require.NoError(t, err)
		return p
	}

	tests := []struct {
		name    string
		mutate  func(*Product)
		wantErr error
	}{
		{"valid", func(p *Product) {}, nil},
		{"empty name", func(p *Product) { p.Name = "" }, ErrEmptyName},
		{"zero price", func(p *Product) { p.Price = 0 }, ErrInvalidPrice},
		{"negative price", func(p *Product) { p.Price = -1 }, ErrInvalidPrice},
		{"unknown unit", func(p *Product) { p.Unit = "bundle" }, ErrInvalidUnit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := valid()
			tc.mutate(p)
			err := p.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestValidUnit(t *testing.T) {
	for _, unit := range ValidUnits {
		assert.True(t, ValidUnit(unit), unit)
	}
	assert.False(t, ValidUnit("bundle"))
	assert.False(t, ValidUnit("Piece"), "unit comparison is exact")
	assert.False(t, ValidUnit(""))
}
