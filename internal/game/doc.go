// Package game implements the core session engine for a moderated
// hidden-role village game.
//
// The main type is Session, which owns the current Stage and serializes
// every state-mutating operation behind a single mutex. A session moves
// through three stages:
//
//	Setup -> Game (Day <-> Night) -> Concluded
//
// The SetupStage collects players and a GameConfig, the GameStage runs the
// day/night loop, and the ConcludedStage reports the outcome. Commands
// arrive as chat lines ("!vote alice") through Session.HandleCommand; the
// transport behind the Bot interface delivers everything the engine says
// back to players.
//
// # Deterministic Testing
//
// Every random decision (role assignment, wolf tie-breaks, demon
// redirects) goes through the *rand.Rand injected at session creation,
// so tests can replay exact games:
//
//	rng := randutil.New(42)
//	sess := game.NewSession(gameid.New(), bot, game.DefaultRegistry(), logger, rng, quartz.NewMock(t))
package game
