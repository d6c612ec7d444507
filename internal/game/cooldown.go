package game

import "time"

// Cooldowns are wall-clock deadlines stored on the record, so they
// survive a restart along with everything else in the profile.

// CooldownRemaining reports how long until the named cooldown clears.
// Zero or negative means the action is available.
func CooldownRemaining(p *Player, name string, now time.Time) time.Duration {
	deadline, ok := p.Cooldowns[name]
	if !ok {
		return 0
	}
	return time.UnixMilli(deadline).Sub(now)
}

// StartCooldown arms the named cooldown for the given duration and
// returns the updated deadlines map, ready for a partial update.
func StartCooldown(p *Player, name string, d time.Duration, now time.Time) map[string]int64 {
	p.Cooldowns[name] = now.Add(d).UnixMilli()
	return p.Cooldowns
}
