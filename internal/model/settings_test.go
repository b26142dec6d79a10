package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarginSettings_IsFrozenIgnoresCaseAndSpaces(t *testing.T) {
	m := MarginSettings{FrozenSuppliers: []string{"ACME", " TecnoParts "}}

	assert.True(t, m.IsFrozen("ACME"))
	assert.True(t, m.IsFrozen("acme"))
	assert.True(t, m.IsFrozen(" Acme "))
	assert.True(t, m.IsFrozen("tecnoparts"))
	assert.False(t, m.IsFrozen("Distribuidora Sur"))
	assert.False(t, MarginSettings{}.IsFrozen("ACME"))
}
