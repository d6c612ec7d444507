package game

import (
	"reflect"
	"testing"
	"time"

	"tavernbot/internal/store"
)

func TestNewPlayerDoc_Deterministic(t *testing.T) {
	a := NewPlayerDoc("alice")
	b := NewPlayerDoc("alice")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("factory is not deterministic:\n%v\n%v", a, b)
	}
	if a["coins"] != float64(StartingCoins) {
		t.Errorf("coins = %v, want %d", a["coins"], StartingCoins)
	}
}

func TestDecodePlayer_RoundTripsTheFactory(t *testing.T) {
	p, err := DecodePlayer(NewPlayerDoc("alice"))
	if err != nil {
		t.Fatalf("DecodePlayer() = %v", err)
	}
	if p.ID != "alice" || p.Coins != StartingCoins || p.Level != 1 {
		t.Errorf("decoded player = %+v", p)
	}
	if p.Health != StartingHealth || p.MaxHealth != StartingHealth {
		t.Errorf("health = %d/%d, want %d/%d", p.Health, p.MaxHealth, StartingHealth, StartingHealth)
	}
}

func TestDecodePlayer_DefaultsMissingBranches(t *testing.T) {
	// A record written before inventories, skills and cooldowns existed
	p, err := DecodePlayer(store.Doc{"id": "old-timer", "coins": 5})
	if err != nil {
		t.Fatalf("DecodePlayer() = %v", err)
	}

	if p.Coins != 5 {
		t.Errorf("coins = %d, want the stored 5", p.Coins)
	}
	if p.Level != 1 {
		t.Errorf("level = %d, want the default 1", p.Level)
	}
	if p.Inventory.Materials == nil || p.Inventory.Potions == nil {
		t.Error("inventory branches were not defaulted")
	}
	if p.Skills == nil || p.Cooldowns == nil {
		t.Error("skills/cooldowns were not defaulted")
	}
	if p.Bank != nil {
		t.Error("bank should stay absent until first use")
	}
	if p.EnsureBank().Balance != 0 {
		t.Error("EnsureBank did not produce the default bank")
	}
}

func TestGrantXP_LevelsUpAcrossThresholds(t *testing.T) {
	p := NewPlayer("alice")

	if levels := p.GrantXP(XPForLevel(1) - 1); levels != 0 {
		t.Errorf("gained %d levels below the threshold", levels)
	}
	if levels := p.GrantXP(1); levels != 1 {
		t.Errorf("gained %d levels crossing the threshold, want 1", levels)
	}
	if p.Level != 2 || p.XP != 0 {
		t.Errorf("after level up: level %d xp %d", p.Level, p.XP)
	}

	// A big grant can skip several levels at once
	p = NewPlayer("bob")
	if levels := p.GrantXP(XPForLevel(1) + XPForLevel(2)); levels != 2 {
		t.Errorf("gained %d levels, want 2", levels)
	}
}

func TestGrantSkillXP_StartsAtLevelOne(t *testing.T) {
	p := NewPlayer("alice")
	skill := p.GrantSkillXP("alchemy", 10)
	if skill.Level != 1 || skill.XP != 10 {
		t.Errorf("skill = %+v", skill)
	}
	skill = p.GrantSkillXP("alchemy", SkillXPForLevel(1))
	if skill.Level != 2 {
		t.Errorf("skill level = %d, want 2", skill.Level)
	}
	if skill.NextLevel != SkillXPForLevel(2) {
		t.Errorf("nextLevel = %d, want %d", skill.NextLevel, SkillXPForLevel(2))
	}
}

func TestCooldowns(t *testing.T) {
	p := NewPlayer("alice")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if remaining := CooldownRemaining(p, "fish", now); remaining > 0 {
		t.Errorf("fresh player has cooldown %v", remaining)
	}

	StartCooldown(p, "fish", FishingCooldown, now)
	if remaining := CooldownRemaining(p, "fish", now); remaining != FishingCooldown {
		t.Errorf("remaining = %v, want %v", remaining, FishingCooldown)
	}
	if remaining := CooldownRemaining(p, "fish", now.Add(FishingCooldown)); remaining > 0 {
		t.Errorf("cooldown did not clear: %v", remaining)
	}
}

func TestDomainErrors_MatchByTag(t *testing.T) {
	err := NewError(TagInsufficientCoins, "need %d, have %d", 50, 10)
	if tag, ok := TagOf(err); !ok || tag != TagInsufficientCoins {
		t.Errorf("TagOf = %v, %v", tag, ok)
	}
	if err.Error() != "need 50, have 10" {
		t.Errorf("detail message = %q", err.Error())
	}
}
