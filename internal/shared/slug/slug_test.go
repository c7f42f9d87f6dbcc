package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromName(t *testing.T) {
	assert.Equal(t, "summer-sale", FromName("  Summer Sale! ", "x"))
	assert.Equal(t, "ic-giyim", FromName("İç Giyim", "x"))
	assert.Equal(t, "category", FromName("!!!", "category"))
	assert.True(t, Valid(FromName("Kadın Ayakkabı 2024", "x")))
	assert.False(t, Valid("Bad Slug"))
}
