package material_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KungRaseri/forgecraft/internal/domain/material"
)

func TestNewRequirement_RejectsNonPositiveQuantity(t *testing.T) {
	_, err := material.NewRequirement(material.CategoryMetal, material.QualityCommon, 0)
	assert.Error(t, err)

	_, err = material.NewRequirement(material.CategoryMetal, material.QualityCommon, -1)
	assert.Error(t, err)
}

func TestNewRequirement_RejectsInvalidQuality(t *testing.T) {
	_, err := material.NewRequirement(material.CategoryMetal, material.Quality(99), 1)
	assert.Error(t, err)
}

func TestRequirement_IsSatisfiedBy(t *testing.T) {
	req, err := material.NewRequirement(material.CategoryMetal, material.QualityUncommon, 1)
	require.NoError(t, err)

	tests := []struct {
		name     string
		instance material.Instance
		want     bool
	}{
		{
			name:     "matching category at minimum quality",
			instance: material.Instance{Category: material.CategoryMetal, Quality: material.QualityUncommon},
			want:     true,
		},
		{
			name:     "matching category above minimum quality",
			instance: material.Instance{Category: material.CategoryMetal, Quality: material.QualityLegendary},
			want:     true,
		},
		{
			name:     "matching category below minimum quality",
			instance: material.Instance{Category: material.CategoryMetal, Quality: material.QualityCommon},
			want:     false,
		},
		{
			name:     "wrong category",
			instance: material.Instance{Category: material.CategoryWood, Quality: material.QualityLegendary},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, req.IsSatisfiedBy(tt.instance))
		})
	}
}

func TestSpecificRequirement_GatesOnMaterialID(t *testing.T) {
	req, err := material.NewSpecificRequirement(material.CategoryGem, material.QualityRare, 1, "flawless-ruby")
	require.NoError(t, err)

	matching := material.Instance{ID: "flawless-ruby", Category: material.CategoryGem, Quality: material.QualityRare}
	wrongID := material.Instance{ID: "dull-ruby", Category: material.CategoryGem, Quality: material.QualityLegendary}

	assert.True(t, req.IsSatisfiedBy(matching))
	assert.False(t, req.IsSatisfiedBy(wrongID))
}

func TestRequirement_CountSatisfiedBy(t *testing.T) {
	req, err := material.NewRequirement(material.CategoryMetal, material.QualityUncommon, 2)
	require.NoError(t, err)

	instances := []material.Instance{
		{Category: material.CategoryMetal, Quality: material.QualityCommon},
		{Category: material.CategoryMetal, Quality: material.QualityUncommon},
		{Category: material.CategoryMetal, Quality: material.QualityRare},
		{Category: material.CategoryWood, Quality: material.QualityLegendary},
	}

	assert.Equal(t, 2, req.CountSatisfiedBy(instances))
}

func TestParseQuality(t *testing.T) {
	q, err := material.ParseQuality("rare")
	require.NoError(t, err)
	assert.Equal(t, material.QualityRare, q)

	q, err = material.ParseQuality("LEGENDARY")
	require.NoError(t, err)
	assert.Equal(t, material.QualityLegendary, q)

	_, err = material.ParseQuality("mythic")
	assert.Error(t, err)
}

func TestParseCategory(t *testing.T) {
	c, err := material.ParseCategory("metal")
	require.NoError(t, err)
	assert.Equal(t, material.CategoryMetal, c)

	_, err = material.ParseCategory("plastic")
	assert.Error(t, err)
}

func TestQualityOrdering(t *testing.T) {
	assert.True(t, material.QualityCommon < material.QualityUncommon)
	assert.True(t, material.QualityUncommon < material.QualityRare)
	assert.True(t, material.QualityRare < material.QualityEpic)
	assert.True(t, material.QualityEpic < material.QualityLegendary)
}
