package rope

import (
	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Sampler state machine", func() {
	var (
		src *stubSource
		s   *Sampler
	)

	BeforeEach(func() {
		src = &stubSource{
			origin:  mgl64.Vec3{0, 0, 0},
			grapple: mgl64.Vec3{0, 0, 5},
		}
		s = NewSampler(src, DefaultConfig())
	})

	Context("while the source is idle", func() {
		It("keeps the buffer empty and the spring at rest", func() {
			s.Tick(1.0 / 60.0)

			Expect(s.Active()).To(BeFalse())
			Expect(s.Points()).To(BeEmpty())
			Expect(s.Spring().Value()).To(BeZero())
			Expect(s.Spring().Velocity()).To(BeZero())
		})
	})

	Context("when the source becomes active", func() {
		BeforeEach(func() {
			src.active = true
		})

		It("allocates SampleCount+1 samples", func() {
			s.Tick(1.0 / 60.0)

			Expect(s.Active()).To(BeTrue())
			Expect(s.Points()).To(HaveLen(s.SampleCount + 1))
		})

		It("primes the spring with the configured impulse", func() {
			s.Tick(0)

			Expect(s.Spring().Velocity()).To(Equal(s.Impulse))
		})

		It("starts the tracked anchor at the origin", func() {
			s.Tick(0)

			Expect(s.Anchor()).To(Equal(src.origin))
		})
	})

	Context("when the rope detaches", func() {
		BeforeEach(func() {
			src.active = true
			for i := 0; i < 10; i++ {
				s.Tick(1.0 / 60.0)
			}
			src.active = false
		})

		It("clears the buffer and resets the spring", func() {
			s.Tick(1.0 / 60.0)

			Expect(s.Points()).To(BeEmpty())
			Expect(s.Spring().Value()).To(BeZero())
			Expect(s.Spring().Velocity()).To(BeZero())
		})

		It("is idempotent across repeated idle frames", func() {
			s.Tick(1.0 / 60.0)
			s.Tick(1.0 / 60.0)

			Expect(s.Points()).To(BeEmpty())
			Expect(s.Spring().Value()).To(BeZero())
		})

		It("re-primes the impulse on the next attach", func() {
			s.Tick(1.0 / 60.0)
			src.active = true

			s.Tick(0)

			Expect(s.Spring().Velocity()).To(Equal(s.Impulse))
		})
	})

	Context("re-entering active with a live buffer", func() {
		It("does not re-apply the impulse", func() {
			src.active = true
			s.Tick(0)
			s.Spring().SetVelocity(3)

			// A second attach without an intervening drop must hit the
			// size-check latch and carry the spring state through.
			s.attach()

			Expect(s.Spring().Velocity()).To(Equal(3.0))
			Expect(s.Points()).To(HaveLen(s.SampleCount + 1))
		})
	})

	Context("during active frames", func() {
		BeforeEach(func() {
			src.active = true
		})

		It("smooths the anchor toward the grapple point", func() {
			s.Tick(0)
			before := s.Anchor()

			s.Tick(1.0 / 60.0)
			after := s.Anchor()

			Expect(after.Sub(src.grapple).Len()).To(BeNumerically("<", before.Sub(src.grapple).Len()))
		})

		It("keeps the buffer length stable across frames", func() {
			for i := 0; i < 30; i++ {
				s.Tick(1.0 / 60.0)
				Expect(s.Points()).To(HaveLen(s.SampleCount + 1))
			}
		})
	})
})
