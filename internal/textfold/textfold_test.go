package textfold

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, Fold("ANNA"), Fold("anna"))
	assert.Equal(t, Fold("ÄRGER"), Fold("ärger"))
	// Precomposed vs combining acute.
	assert.Equal(t, Fold("Jos\u00e9"), Fold("JOSE\u0301"))
}

func TestContains(t *testing.T) {
	tests := []struct {
		s, fragment string
		want        bool
	}{
		{"Ann", "ann", true},
		{"ANNA", "ann", true},
		{"bob", "ann", false},
		{"Joanne", "ANN", true},
		{"anything", "", true},
		{"", "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.s+"/"+tt.fragment, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.s, tt.fragment))
		})
	}
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 0, Compare("alice", "ALICE"))
	assert.Equal(t, -1, Compare("alice", "Bob"))
	assert.Equal(t, 1, Compare("bob", "Alice"))
}
