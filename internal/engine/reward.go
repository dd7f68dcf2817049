package engine

import "fmt"

// RewardPolicy decides whether a challenge answer earns a gold token.
// Observe is called for every submitted answer, right or wrong.
type RewardPolicy interface {
	Observe(correct bool, r Random) bool
}

// ChanceReward grants a token on a correct answer with fixed probability.
type ChanceReward struct {
	Chance float64
}

func (c ChanceReward) Observe(correct bool, r Random) bool {
	if !correct || r == nil {
		return false
	}
	return r.Float64() < c.Chance
}

// StreakReward grants a token on every Every-th consecutive correct answer.
type StreakReward struct {
	Every int
	run   int
}

func (s *StreakReward) Observe(correct bool, _ Random) bool {
	if !correct {
		s.run = 0
		return false
	}
	s.run++
	if s.Every <= 0 || s.run < s.Every {
		return false
	}
	s.run = 0
	return true
}

// Streak returns the current run of consecutive correct answers.
func (s *StreakReward) Streak() int { return s.run }

// DefaultRewardChance matches the placeholder odds of the paper prototype.
const DefaultRewardChance = 0.3

// NewRewardPolicy builds a policy from configuration values.
func NewRewardPolicy(mode RewardMode, chance float64, every int) (RewardPolicy, error) {
	switch mode {
	case RewardChance, "":
		if chance < 0 || chance > 1 {
			return nil, fmt.Errorf("reward chance %v outside [0,1]", chance)
		}
		return ChanceReward{Chance: chance}, nil
	case RewardStreak:
		if every <= 0 {
			return nil, fmt.Errorf("reward streak must be positive, got %d", every)
		}
		return &StreakReward{Every: every}, nil
	default:
		return nil, fmt.Errorf("unknown reward mode %q", mode)
	}
}
