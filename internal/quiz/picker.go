package quiz

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/gitquest/internal/questionbank"
)

// Picker selects questions from a bank. Randomness is injected so that
// selection is reproducible under a fixed seed.
type Picker struct {
	bank *questionbank.Bank
	rng  *rand.Rand
}

// NewPicker creates a Picker. A nil rng is replaced by a time-seeded one.
func NewPicker(bank *questionbank.Bank, rng *rand.Rand) *Picker {
	if rng == nil {
		rng = NewRand(uint64(time.Now().UnixNano()))
	}
	if bank == nil {
		bank = questionbank.NewBank(nil)
	}
	return &Picker{bank: bank, rng: rng}
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Pick returns a uniformly random question of level. The boolean is false
// when the bank has no question for that level, which is a normal outcome.
func (p *Picker) Pick(level questionbank.Level) (questionbank.Question, bool) {
	qs := p.bank.ByLevel(level)
	if len(qs) == 0 {
		return questionbank.Question{}, false
	}
	return qs[p.rng.IntN(len(qs))], true
}

// Draw returns up to n distinct questions of level in random order.
func (p *Picker) Draw(level questionbank.Level, n int) []questionbank.Question {
	qs := p.bank.ByLevel(level)
	p.rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
	if n < len(qs) {
		qs = qs[:max(n, 0)]
	}
	return qs
}
