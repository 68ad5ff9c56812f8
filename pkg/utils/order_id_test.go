package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KungRaseri/forgecraft/pkg/utils"
)

func TestGenerateOrderID_Format(t *testing.T) {
	id := utils.GenerateOrderID("steel_sword")

	assert.True(t, strings.HasPrefix(id, "craft-steel_sword-"))
	suffix := strings.TrimPrefix(id, "craft-steel_sword-")
	assert.Len(t, suffix, 8)
}

func TestGenerateOrderID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := utils.GenerateOrderID("steel_sword")
		_, dup := seen[id]
		assert.False(t, dup, "duplicate order ID generated: %s", id)
		seen[id] = struct{}{}
	}
}
