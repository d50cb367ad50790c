package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, 3)

	prices := map[string]int64{}
	for _, d := range catalog {
		prices[d.Name] = d.PriceCents
	}
	assert.Equal(t, int64(499), prices[Basic])
	assert.Equal(t, int64(999), prices[Pro])
	assert.Equal(t, int64(1999), prices[VIP])

	// Free 不出现在可购买目录里
	_, ok := prices[Free]
	assert.False(t, ok)
}

func TestLookup(t *testing.T) {
	d, ok := Lookup(Pro)
	require.True(t, ok)
	assert.Equal(t, Pro, d.Name)
	assert.True(t, d.Permanent)

	d, ok = Lookup(Basic)
	require.True(t, ok)
	assert.False(t, d.Permanent)

	_, ok = Lookup(Free)
	assert.False(t, ok)

	_, ok = Lookup("Diamond")
	assert.False(t, ok)
}

func TestActive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name   string
		plan   string
		expiry *time.Time
		want   bool
	}{
		{"free", Free, nil, false},
		{"unknown", "Diamond", &future, false},
		{"basic no expiry", Basic, nil, false},
		{"basic expired", Basic, &past, false},
		{"basic exactly now", Basic, &now, false},
		{"basic valid", Basic, &future, true},
		{"pro ignores expiry", Pro, &past, true},
		{"pro no expiry", Pro, nil, true},
		{"vip ignores expiry", VIP, &past, true},
		{"vip no expiry", VIP, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Active(tt.plan, tt.expiry, now))
		})
	}
}
