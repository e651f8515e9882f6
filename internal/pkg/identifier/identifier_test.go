package identifier

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	donationRefPattern = regexp.MustCompile(`^DON-\d{13}-[0-9A-F]{8}$`)
	orderNumberPattern = regexp.MustCompile(`^ORD-\d{13}-[0-9A-Z]{5}$`)
)

func TestNewDonationRef_Format(t *testing.T) {
	ref := NewDonationRef()
	assert.Regexp(t, donationRefPattern, ref)
}

func TestNewOrderNumber_Format(t *testing.T) {
	num := NewOrderNumber()
	assert.Regexp(t, orderNumberPattern, num)
}

func TestNewDonationRef_UniqueUnderVolume(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		ref := NewDonationRef()
		_, dup := seen[ref]
		require.False(t, dup, "duplicate donation ref %s at iteration %d", ref, i)
		seen[ref] = struct{}{}
	}
}

func TestNewOrderNumber_UniqueUnderVolume(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		num := NewOrderNumber()
		_, dup := seen[num]
		require.False(t, dup, "duplicate order number %s at iteration %d", num, i)
		seen[num] = struct{}{}
	}
}
