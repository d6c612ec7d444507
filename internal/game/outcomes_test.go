package game

import (
	"math/rand"
	"testing"
)

func TestCatchFish_ValuesStayInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		fish, value := CatchFish(rng)
		if value < fish.MinValue || value > fish.MaxValue {
			t.Fatalf("caught %q worth %d, range %d..%d", fish.Name, value, fish.MinValue, fish.MaxValue)
		}
	}
}

func TestCatchFish_CommonSpeciesDominate(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	counts := map[string]int{}
	for i := 0; i < 5000; i++ {
		fish, _ := CatchFish(rng)
		counts[fish.Name]++
	}
	if counts["minnow"] <= counts["abyssal pike"] {
		t.Errorf("rarity weights look inverted: minnow %d, abyssal pike %d",
			counts["minnow"], counts["abyssal pike"])
	}
}

func TestJobEarnings_WithinWageRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	job := Jobs["miner"]
	for i := 0; i < 1000; i++ {
		wage := JobEarnings(rng, job)
		if wage < job.MinWage || wage > job.MaxWage {
			t.Fatalf("wage %d outside %d..%d", wage, job.MinWage, job.MaxWage)
		}
	}
}

func TestSlotSpin_MultiplierRules(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 1000; i++ {
		reels, multiplier := SlotSpin(rng)
		triple := reels[0] == reels[1] && reels[1] == reels[2]
		pair := reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2]
		switch {
		case triple:
			if multiplier != SlotMultipliers[reels[0]] {
				t.Fatalf("triple %v paid %d", reels, multiplier)
			}
		case pair:
			if multiplier != 1 {
				t.Fatalf("pair %v paid %d, want the bet back", reels, multiplier)
			}
		default:
			if multiplier != 0 {
				t.Fatalf("miss %v paid %d", reels, multiplier)
			}
		}
	}
}

func TestArenaFight_Resolves(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	opponent := Opponents["training dummy"]

	for i := 0; i < 200; i++ {
		p := NewPlayer("alice")
		result := ArenaFight(rng, p, opponent)
		if result.Rounds == 0 {
			t.Fatal("fight resolved in zero rounds")
		}
		if result.Victory {
			if result.Won != opponent.Reward || result.XP != opponent.XP {
				t.Fatalf("victory paid %d coins %d xp", result.Won, result.XP)
			}
			if result.DamageTaken >= p.Health {
				t.Fatalf("won while taking lethal damage %d", result.DamageTaken)
			}
		} else {
			if result.Won != 0 {
				t.Fatalf("loss paid %d coins", result.Won)
			}
			if result.DamageTaken != p.Health-1 {
				t.Fatalf("loss should leave 1 HP, damage %d of %d", result.DamageTaken, p.Health)
			}
		}
	}
}

func TestArenaFight_HighLevelBeatsTheDummy(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	p := NewPlayer("alice")
	p.Level = 20
	p.Skills["combat"] = Skill{Level: 10}

	wins := 0
	for i := 0; i < 100; i++ {
		if ArenaFight(rng, p, Opponents["training dummy"]).Victory {
			wins++
		}
	}
	if wins < 95 {
		t.Errorf("level 20 won only %d/100 against the training dummy", wins)
	}
}
