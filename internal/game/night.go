package game

import (
	"fmt"
	"strings"

	"github.com/lox/werewolfd/internal/randutil"
)

// checkForEndOfNight closes the night as soon as every living role
// reports itself finished choosing. Roles without night actions are
// vacuously finished, so they never hold the night open.
func (g *GameStage) checkForEndOfNight() {
	for _, p := range g.AlivePlayers() {
		if !p.Role().FinishedNightAction() {
			return
		}
	}
	g.resolveNight()
}

// resolveNight runs once, synchronously, when the last required role
// finishes. It folds every submitted night action into a single kill
// map, applies deaths, announces results per the configured disclosure
// settings, and either reopens the day or concludes the game. Later
// steps override earlier ones.
func (g *GameStage) resolveNight() {
	killMap := newKillMap()
	night := len(g.killHistory) + 1

	// 1. The wolf pack resolves to a single target, chosen uniformly
	// among the distinct nominations. Every wolf is a co-killer.
	wolves := g.PlayersByRole(Wolf)
	if len(wolves) > 0 {
		var nominees []*Player
		for _, w := range wolves {
			nominee := w.Role().KillTarget()
			if nominee == nil {
				continue
			}
			seen := false
			for _, n := range nominees {
				if n == nominee {
					seen = true
					break
				}
			}
			if !seen {
				nominees = append(nominees, nominee)
			}
		}
		if len(nominees) > 0 {
			target := randutil.Pick(g.session.rng, nominees)
			if !g.isProtected(target) {
				for _, w := range wolves {
					g.addKill(killMap, target, w)
				}
			}
		}
	}

	// 2. Corruption lands before any corrupted role's target is read.
	for _, p := range g.AlivePlayers() {
		if !g.isCorrupterTarget(p) {
			continue
		}
		if c, ok := p.Role().(corruptible); ok {
			c.corrupt(g)
		}
	}

	// 3. Vigilantes shoot independently; protection deflects the shot.
	for _, p := range g.PlayersByRole(Vigilante) {
		target := p.Role().KillTarget()
		if target == nil {
			continue
		}
		if g.isProtected(target) {
			g.SendTo(p, fmt.Sprintf("Your bullet bounces off of %s.", target))
			continue
		}
		g.addKill(killMap, target, p)
		g.SendTo(p, fmt.Sprintf("You shoot %s square between the eyes.", target))
	}

	// 4. Demons claim their own victims.
	for _, d := range g.PlayersByRole(Demon) {
		target := d.Role().KillTarget()
		if target != nil && !g.isProtected(target) {
			g.addKill(killMap, target, d)
		}
	}

	// 5. Anyone who targeted a demon dies instead, protection or not.
	// A wolf targeting a demon costs the pack one random wolf.
	for _, d := range g.PlayersByRole(Demon) {
		wolfTargeted := false
		for _, p := range g.AlivePlayers() {
			if p == d {
				continue
			}
			if p.Role().KillTarget() != d && p.Role().SpecialTarget() != d {
				continue
			}
			if p.Role().Type() == Wolf {
				wolfTargeted = true
				continue
			}
			g.SendTo(p, "You realize with horror that you've targeted a demon as your soul bleeds from your body.")
			g.addKill(killMap, p, d)
		}
		if wolfTargeted && len(wolves) > 0 {
			sacrifice := randutil.Pick(g.session.rng, wolves)
			g.SendTo(sacrifice, "You realize with horror that your pack has targeted a demon as your soul bleeds from your body.")
			g.addKill(killMap, sacrifice, d)
		}
	}

	// Night-end hooks fire for everyone still alive, acted or not.
	for _, p := range g.AlivePlayers() {
		p.Role().OnNightEnds(g)
	}

	g.Send("The sun dawns upon the village.")
	if !killMap.Empty() {
		g.killerNotifications(killMap)
		g.applyNightDeaths(killMap)
	} else {
		g.Send(noneDeadMsg)
	}
	g.announceVictimIdentities(killMap)

	g.killHistory = append(g.killHistory, killMap.record(night))
	g.session.bot.OnPlayersChanged()

	if g.checkForWinner() {
		return
	}

	g.daytime = true
	g.day++
	g.Send("*********************")
	g.Send(fmt.Sprintf("DAY %d", g.day))
	g.Send("*********************")
	g.unmutePlayers()
}

// addKill records a kill, guarding the invariant that the kill map
// never contains a player already dead before resolution began.
func (g *GameStage) addKill(m *KillMap, victim, killer *Player) {
	if !victim.Alive() {
		return
	}
	m.Add(victim, killer)
}

// applyNightDeaths sets the alive flags and announces the victims per
// the REVEAL_NIGHT_KILLERS setting: either per-victim flavor naming how
// they died, or a batched anonymous announcement.
func (g *GameStage) applyNightDeaths(killMap *KillMap) {
	if g.cfg.Setting(SettingRevealKillers) == "YES" {
		for _, victim := range killMap.Victims() {
			var parts []string
			wolfKill := false
			for _, killer := range killMap.Killers(victim) {
				if killer.Role().Type() == Wolf {
					wolfKill = true
					continue
				}
				parts = append(parts, killer.Role().KillMessage())
			}
			if wolfKill {
				parts = append(parts, (&wolfRole{}).KillMessage())
			}
			g.Send(fmt.Sprintf("You find that %s %s.", victim, strings.Join(parts, " and ")))
			g.applyDeath(victim)
		}
		return
	}

	victims := killMap.Victims()
	names := make([]string, len(victims))
	for i, victim := range victims {
		g.applyDeath(victim)
		names[i] = victim.Name
	}
	verb := "is dead"
	if len(victims) > 1 {
		verb = "are dead"
	}
	g.Send(fmt.Sprintf("You find that %s %s.", strings.Join(names, " and "), verb))
}

// killerNotifications privately tells each killer what they killed,
// scoped per killer faction by the TELL_*_ON_KILL settings.
func (g *GameStage) killerNotifications(killMap *KillMap) {
	for _, victim := range killMap.Victims() {
		for _, killer := range killMap.Killers(victim) {
			var mode string
			switch killer.Role().Type() {
			case Demon:
				mode = g.cfg.Setting(SettingTellDemonOnKill)
			case Wolf:
				mode = g.cfg.Setting(SettingTellWolvesOnKill)
			case Vigilante:
				mode = g.cfg.Setting(SettingTellVigOnKill)
			default:
				continue
			}
			switch mode {
			case "FACTION":
				g.SendTo(killer, fmt.Sprintf("%s was a %s.", victim, victim.Role().Faction()))
			case "ROLE":
				g.SendTo(killer, fmt.Sprintf("%s was a %s.", victim, victim.Role().Type()))
			}
		}
	}
}

// announceVictimIdentities publicly discloses each victim's faction or
// role per the NIGHT_KILL_ANNOUNCE setting.
func (g *GameStage) announceVictimIdentities(killMap *KillMap) {
	mode := g.cfg.Setting(SettingKillAnnounce)
	if mode == "NONE" {
		return
	}
	for _, victim := range killMap.Victims() {
		switch mode {
		case "FACTION":
			g.Send(fmt.Sprintf("%s was a %s.", victim, victim.Role().Faction()))
		case "ROLE":
			g.Send(fmt.Sprintf("%s was a %s.", victim, victim.Role().Type()))
		}
	}
}

// isProtected reports whether ordinary kill resolution cannot touch the
// player tonight. Demons are never killable by ordinary means; a priest
// under a corrupter's mark protects no one.
func (g *GameStage) isProtected(p *Player) bool {
	if p.Role().Type() == Demon {
		return true
	}
	for _, priest := range g.PlayersByRole(Priest) {
		if g.isCorrupterTarget(priest) {
			continue
		}
		if priest.Role().SpecialTarget() == p {
			return true
		}
	}
	return false
}

// isCorrupterTarget reports whether a living corrupter marked the
// player tonight.
func (g *GameStage) isCorrupterTarget(p *Player) bool {
	for _, c := range g.PlayersByRole(Corrupter) {
		if c.Role().SpecialTarget() == p {
			return true
		}
	}
	return false
}
