package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveURL(t *testing.T) {
	page := "https://www.ebay.com/sch/i.html?_nkw=surfboard"

	testCases := []struct {
		href     string
		expected string
	}{
		{"https://www.ebay.com/itm/123", "https://www.ebay.com/itm/123"},
		{"/itm/123", "https://www.ebay.com/itm/123"},
		{"//img.ebay.com/pic.jpg", "https://img.ebay.com/pic.jpg"},
		{"itm/123", "https://www.ebay.com/sch/itm/123"},
		{"  /itm/456  ", "https://www.ebay.com/itm/456"},
		{"", ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ResolveURL(page, tc.href), "href: %q", tc.href)
	}
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Pyzel Ghost 6'7 110L", "110l"))
	assert.True(t, ContainsFold("PYZEL GHOST", "ghost"))
	assert.False(t, ContainsFold("Pyzel Ghost", "phantom"))
	assert.True(t, ContainsFold("anything", ""))
}
