package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtr(t *testing.T) {
	p := Ptr(42)
	assert.NotNil(t, p)
	assert.Equal(t, 42, *p)

	s := Ptr("hello")
	assert.Equal(t, "hello", *s)
}

func TestOffer(t *testing.T) {
	o := Offer("대한항공", 58000, "08:00", "09:10")
	assert.True(t, o.Valid())
	assert.Equal(t, 58000, o.Price)
	assert.False(t, o.IsRoundTrip)
}

func TestRoundTripOffer(t *testing.T) {
	o := RoundTripOffer("제주항공", 45000, 39000, "07:30", "19:00")
	assert.True(t, o.Valid())
	assert.True(t, o.IsRoundTrip)
	assert.Equal(t, o.OutboundPrice+o.ReturnPrice, o.Price)
}

func TestQuery(t *testing.T) {
	q := Query("ICN", "CJU", "20260901")
	assert.NoError(t, q.Validate())
	assert.Equal(t, 1, q.Adults)
	assert.False(t, q.IsRoundTrip())

	rt := RoundTripQuery("GMP", "CJU", "20260901", "20260903")
	assert.NoError(t, rt.Validate())
	assert.True(t, rt.IsRoundTrip())
	assert.True(t, rt.IsDomestic())
}
