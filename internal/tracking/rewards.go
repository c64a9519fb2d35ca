package tracking

import (
	_ "embed"
	"fmt"
	"math"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed rewards.yaml
var rewardsYAML []byte

// Milestone is one row of the streak-milestone table. A badge fires when the
// post-grant streak equals Streak exactly, at most once per user.
type Milestone struct {
	Streak  int    `yaml:"streak"`
	Badge   string `yaml:"badge"`
	BonusXP int    `yaml:"bonus_xp"`
}

type multiplierTier struct {
	MinStreak  int     `yaml:"min_streak"`
	Multiplier float64 `yaml:"multiplier"`
}

type rewardTable struct {
	BaseXP      map[Kind]int     `yaml:"base_xp"`
	Multipliers []multiplierTier `yaml:"multipliers"`
	Milestones  []Milestone      `yaml:"milestones"`
}

var rewards = mustLoadRewards()

func mustLoadRewards() rewardTable {
	var t rewardTable
	if err := yaml.Unmarshal(rewardsYAML, &t); err != nil {
		panic(fmt.Sprintf("parse embedded rewards table: %v", err))
	}
	// Highest threshold first so the first match wins.
	sort.Slice(t.Multipliers, func(i, j int) bool {
		return t.Multipliers[i].MinStreak > t.Multipliers[j].MinStreak
	})
	return t
}

func BaseXP(kind Kind) int {
	return rewards.BaseXP[kind]
}

// Multiplier returns the streak multiplier for the grant path.
func Multiplier(streak int) float64 {
	for _, tier := range rewards.Multipliers {
		if streak >= tier.MinStreak {
			return tier.Multiplier
		}
	}
	return 1.0
}

// GrantXP is the multiplier-based XP for one completion, keyed by the streak
// after today's completion is counted.
func GrantXP(kind Kind, streak int) int {
	return int(math.Round(float64(BaseXP(kind)) * Multiplier(streak)))
}

// MilestoneAt returns the milestone matching the post-grant streak exactly.
func MilestoneAt(streak int) (Milestone, bool) {
	for _, m := range rewards.Milestones {
		if m.Streak == streak {
			return m, true
		}
	}
	return Milestone{}, false
}

// ChampionBadge is the uniquely-named badge awarded when a challenge
// enrollment reaches its target streak.
func ChampionBadge(title string) string {
	return "Challenge Champion: " + title
}
