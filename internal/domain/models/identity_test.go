package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadataStringCoercion(t *testing.T) {
	md := Metadata{
		"name":    "Jane",
		"credits": float64(50),
		"flag":    true,
		"empty":   "",
		"nested":  map[string]interface{}{"x": 1},
	}

	v, ok := md.String("name")
	assert.True(t, ok)
	assert.Equal(t, "Jane", v)

	v, ok = md.String("credits")
	assert.True(t, ok)
	assert.Equal(t, "50", v)

	v, ok = md.String("flag")
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	_, ok = md.String("empty")
	assert.False(t, ok)

	_, ok = md.String("nested")
	assert.False(t, ok)

	_, ok = md.String("missing")
	assert.False(t, ok)
}

func TestMetadataIntCoercion(t *testing.T) {
	md := Metadata{"a": float64(42), "b": "17", "c": "nope"}

	n, ok := md.Int("a")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	n, ok = md.Int("b")
	assert.True(t, ok)
	assert.Equal(t, 17, n)

	_, ok = md.Int("c")
	assert.False(t, ok)
}

func TestBannedClassification(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.False(t, (&IdentityRecord{}).Banned(now))
	assert.True(t, (&IdentityRecord{BannedUntil: &future}).Banned(now))
	assert.False(t, (&IdentityRecord{BannedUntil: &past}).Banned(now))
}
