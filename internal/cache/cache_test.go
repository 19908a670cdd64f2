package cache_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/booking-client/internal/cache"
)

var _ = Describe("Cache", func() {
	var c *cache.Cache

	BeforeEach(func() {
		var err error
		c, err = cache.New(16, 100*time.Millisecond)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("New", func() {
		It("should reject a non-positive size", func() {
			_, err := cache.New(0, time.Second)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Get", func() {
		It("should return a stored value within the TTL", func() {
			c.Set("venues.list|/venues", []any{"a", "b"})
			v, ok := c.Get("venues.list|/venues")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal([]any{"a", "b"}))
		})

		It("should miss for an unknown key", func() {
			_, ok := c.Get("missing")
			Expect(ok).To(BeFalse())
		})

		It("should miss once the TTL has elapsed", func() {
			c.Set("k", "v")
			time.Sleep(120 * time.Millisecond)
			_, ok := c.Get("k")
			Expect(ok).To(BeFalse())
		})

		It("should serve a value overwritten after expiry", func() {
			c.Set("k", "old")
			time.Sleep(120 * time.Millisecond)
			c.Set("k", "new")
			v, ok := c.Get("k")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal("new"))
		})
	})

	Describe("GetStale", func() {
		It("should return an expired entry", func() {
			c.Set("k", "v")
			time.Sleep(120 * time.Millisecond)
			v, ok := c.GetStale("k")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal("v"))
		})

		It("should miss for an unknown key", func() {
			_, ok := c.GetStale("missing")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Clear", func() {
		It("should drop all entries, stale ones included", func() {
			c.Set("a", 1)
			c.Set("b", 2)
			c.Clear()
			Expect(c.Len()).To(Equal(0))
			_, ok := c.GetStale("a")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("isolation", func() {
		It("should not see mutations of the stored value", func() {
			payload := []any{map[string]any{"id": float64(1), "name": "Arena"}}
			c.Set("k", payload)

			payload[0].(map[string]any)["name"] = "changed"

			v, ok := c.Get("k")
			Expect(ok).To(BeTrue())
			Expect(v.([]any)[0]).To(HaveKeyWithValue("name", "Arena"))
		})

		It("should not see mutations of a returned value", func() {
			c.Set("k", map[string]any{"status": "confirmed"})

			v, ok := c.Get("k")
			Expect(ok).To(BeTrue())
			v.(map[string]any)["status"] = "cancelled"

			again, ok := c.GetStale("k")
			Expect(ok).To(BeTrue())
			Expect(again).To(HaveKeyWithValue("status", "confirmed"))
		})
	})

	Describe("bounded size", func() {
		It("should evict the oldest entry beyond capacity", func() {
			small, err := cache.New(2, time.Minute)
			Expect(err).NotTo(HaveOccurred())
			small.Set("a", 1)
			small.Set("b", 2)
			small.Set("c", 3)
			Expect(small.Len()).To(Equal(2))
			_, ok := small.Get("a")
			Expect(ok).To(BeFalse())
		})
	})
})
