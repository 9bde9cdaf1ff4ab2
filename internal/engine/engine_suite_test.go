package engine_test

import (
	"math/rand"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ecosim/internal/eco"
	"github.com/san-kum/ecosim/internal/engine"
	"github.com/san-kum/ecosim/internal/integrators"
	"github.com/san-kum/ecosim/internal/stochastic"
)

func TestEngineSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Engine Suite")
}

var _ = Describe("Engine", func() {
	var (
		e   *engine.Engine
		cfg engine.Config
	)

	params := func() eco.Params {
		return eco.Params{
			Mut:    [][]float64{{0, 0}, {0, 0}},
			Comp:   [][]float64{{0, 0}, {0, 0}},
			Growth: []float64{1, 1},
			Half:   eco.UniformHalf(2, 0.1),
		}
	}

	JustBeforeEach(func() {
		var err error
		e, err = engine.New(params(), eco.State{1, 1}, cfg, integrators.NewRK4(), rand.New(rand.NewSource(11)))
		Expect(err).NotTo(HaveOccurred())
	})

	Context("with hurricanes disabled", func() {
		BeforeEach(func() {
			cfg = engine.Config{ExtinctionThreshold: 0.01, Dt: 0.01}
		})

		It("advances time without events", func() {
			_, hit := e.Step(3.0)
			Expect(hit).To(BeFalse())
			Expect(e.Time()).To(BeNumerically("==", 3.0))
			Expect(e.Events()).To(BeEmpty())
			Expect(e.Extinct()).To(BeEmpty())
		})

		It("keeps a fixed-point population exactly fixed", func() {
			e.Step(2.0)
			Expect(e.Populations()).To(Equal(eco.State{1, 1}))
		})
	})

	Context("with frequent severe hurricanes", func() {
		BeforeEach(func() {
			cfg = engine.Config{
				HurricaneRate:       100,
				Categories:          []stochastic.Category{{Label: "cat5", Probability: 1, Damage: 0.999}},
				ExtinctionThreshold: 0.01,
				Dt:                  0.01,
			}
		})

		It("drives both species extinct and logs the event", func() {
			ev, hit := e.Step(5.0)
			Expect(hit).To(BeTrue())
			Expect(ev.Label).To(Equal("cat5"))
			Expect(e.Extinct()).To(Equal([]int{0, 1}))
			Expect(e.Populations()).To(Equal(eco.State{0, 0}))
			Expect(e.Events()).To(HaveLen(1))
		})

		It("never resurrects an extinct species", func() {
			e.Step(5.0)
			Expect(e.Extinct()).To(HaveLen(2))
			for i := 0; i < 5; i++ {
				e.Step(1.0)
				Expect(e.Populations()).To(Equal(eco.State{0, 0}))
			}
		})
	})

	Context("after a reset", func() {
		BeforeEach(func() {
			cfg = engine.Config{
				HurricaneRate:       100,
				Categories:          []stochastic.Category{{Label: "cat5", Probability: 1, Damage: 0.999}},
				ExtinctionThreshold: 0.01,
				Dt:                  0.01,
			}
		})

		It("starts a fresh run at t=0", func() {
			e.Step(5.0)
			e.Reset(nil)
			Expect(e.Time()).To(BeZero())
			Expect(e.History()).To(HaveLen(1))
			Expect(e.Events()).To(BeEmpty())
			Expect(e.Extinct()).To(BeEmpty())
			Expect(e.Populations()).To(Equal(eco.State{1, 1}))
		})
	})
})
