package combat_test

import (
	"testing"

	"github.com/ashfall-games/skirmish/internal/game/character"
	"github.com/ashfall-games/skirmish/internal/game/combat"
	"github.com/ashfall-games/skirmish/internal/game/weapon"
	"github.com/ashfall-games/skirmish/internal/game/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInMeleeRange_InclusiveBoundary verifies reach: a 3 foot sabre
// swings 7 feet (49 pixels), and the target silhouette grants 10.5
// pixels of allowance, so the strike connects out to a center distance
// of exactly 59.5 pixels and no further.
func TestInMeleeRange_InclusiveBoundary(t *testing.T) {
	attacker := world.NewUnit(1, character.New(1, "Abe", 1), 0, 0, world.ColorGray)
	w := testSabre()

	cases := []struct {
		x    float64
		want bool
	}{
		{30, true},
		{59.5, true},
		{59.51, false},
		{200, false},
	}
	for _, tc := range cases {
		target := world.NewUnit(2, character.New(2, "Bruno", 2), tc.x, 0, world.ColorGray)
		assert.Equal(t, tc.want, combat.InMeleeRange(attacker, target, w), "distance %.2f", tc.x)
	}
}

// TestMeleeHitChance_StacksModifiers verifies the strike chance
// arithmetic: 60 base, +3 dexterity, +5 weapon accuracy, +10 skill, no
// movement or first-attack penalty, -2 for the target's dexterity.
func TestMeleeHitChance_StacksModifiers(t *testing.T) {
	attacker := world.NewUnit(1, character.New(1, "Abe", 1), 0, 0, world.ColorGray)
	target := world.NewUnit(2, character.New(2, "Bruno", 2), 30, 0, world.ColorGray)
	attacker.Character.Dexterity = 70 // +3
	attacker.Character.Skills[character.SkillSabre] = 2
	attacker.Character.MarkAttacked(target.ID)
	target.Character.Dexterity = 65 // +2

	w := testSabre()
	w.Accuracy = 5

	chance := combat.MeleeHitChance(attacker, target, w, &stubBehavior{})
	assert.InDelta(t, 76.0, chance, 1e-9)
}

// TestMeleeHitChance_Clamps verifies the floor of 5 and ceiling of 95.
func TestMeleeHitChance_Clamps(t *testing.T) {
	attacker := world.NewUnit(1, character.New(1, "Abe", 1), 0, 0, world.ColorGray)
	target := world.NewUnit(2, character.New(2, "Bruno", 2), 30, 0, world.ColorGray)

	// 60 -20 -25 -15 -20 = -20, floored.
	attacker.Character.Dexterity = 1 // -20
	attacker.Character.Movement = character.MoveRun
	target.Character.Dexterity = 100 // +20
	assert.InDelta(t, 5.0, combat.MeleeHitChance(attacker, target, testSabre(), &stubBehavior{}), 1e-9)

	// 60 +20 +25 +25 +20 = 150, capped.
	attacker.Character.Dexterity = 100
	attacker.Character.Movement = character.MoveStationary
	attacker.Character.Skills[character.SkillSabre] = 5
	attacker.Character.MarkAttacked(target.ID)
	target.Character.Dexterity = 1 // -20
	w := testSabre()
	w.Accuracy = 25
	assert.InDelta(t, 95.0, combat.MeleeHitChance(attacker, target, w, &stubBehavior{}), 1e-9)
}

// TestResolveMeleeAttack_RollBoundary verifies the d100 comparison is
// inclusive: against a 76 percent chance a roll of 76 connects and a 77
// misses, and both leave the attacker recovering with the return to
// melee ready scheduled under his ownership.
func TestResolveMeleeAttack_RollBoundary(t *testing.T) {
	stage := func(src *scriptedSource) (*combatEnv, *world.Unit, *world.Unit, *weapon.Weapon) {
		e := newCombatEnv(src)
		attacker := e.place(t, 1, "Abe", 1, 0, 0)
		target := e.place(t, 2, "Bruno", 2, 30, 0)
		attacker.Character.Dexterity = 70
		attacker.Character.Skills[character.SkillSabre] = 2
		attacker.Character.MarkAttacked(target.ID)
		target.Character.Dexterity = 65
		w := testSabre()
		w.Accuracy = 5
		return e, attacker, target, w
	}

	// Roll 76 against chance 76: hit. Location d100 of 50 is the
	// chest, quality 50, vital band roll 75 reads light.
	e, attacker, target, w := stage(&scriptedSource{ints: []int{75, 49}, floats: []float64{0.50, 0.75}})
	e.res.ResolveMeleeAttack(attacker, target, w, 0)

	require.Len(t, target.Character.Wounds, 1)
	assert.Equal(t, character.Wound{
		Location:   character.PartChest,
		Severity:   character.WoundLight,
		Damage:     3,
		WeaponName: "sabre",
		WeaponID:   "wpn_sabre",
		Cause:      "sabre",
	}, target.Character.Wounds[0])
	assert.Equal(t, 1, attacker.Character.AttacksAttempted)
	assert.Equal(t, 1, attacker.Character.MeleeAttacksAttempted)
	assert.Equal(t, 1, attacker.Character.AttacksSuccessful)
	assert.Equal(t, 1, attacker.Character.MeleeAttacksSuccessful)
	assert.Equal(t, []string{"Bruno: wounded by sabre"}, e.stub.checks)

	assert.Equal(t, weapon.StateRecovering, attacker.Character.WeaponState)
	events := e.drain(60)
	require.Len(t, events, 1)
	assert.Equal(t, int64(60), events[0].Tick)
	assert.Equal(t, attacker.ID, events[0].OwnerID)
	assert.Equal(t, combat.WeaponTransition{UnitID: attacker.ID, ToState: weapon.StateMeleeReady}, events[0].Command)

	// Roll 77 against chance 76: miss, no stray analog, recovery still
	// scheduled.
	e, attacker, target, w = stage(&scriptedSource{ints: []int{76}})
	e.res.ResolveMeleeAttack(attacker, target, w, 0)

	assert.Empty(t, target.Character.Wounds)
	assert.Equal(t, 1, attacker.Character.AttacksAttempted)
	assert.Equal(t, 1, attacker.Character.MeleeAttacksAttempted)
	assert.Zero(t, attacker.Character.AttacksSuccessful)
	assert.Empty(t, e.stub.checks)
	assert.Equal(t, weapon.StateRecovering, attacker.Character.WeaponState)
	assert.Equal(t, 1, e.sched.PendingFor(attacker.ID))
}

// TestResolveMeleeAttack_StrengthBonus verifies the attacker's strength
// adjusts scaled damage, and the result never drops below 1.
func TestResolveMeleeAttack_StrengthBonus(t *testing.T) {
	// Strength 80 adds +2 to a serious chest strike: 8 + 2.
	src := &scriptedSource{ints: []int{0, 49}, floats: []float64{0.50, 0.35}}
	e := newCombatEnv(src)
	attacker := e.place(t, 1, "Abe", 1, 0, 0)
	target := e.place(t, 2, "Bruno", 2, 30, 0)
	attacker.Character.Strength = 80
	attacker.Character.MarkAttacked(target.ID)

	e.res.ResolveMeleeAttack(attacker, target, testSabre(), 0)
	require.Len(t, target.Character.Wounds, 1)
	assert.Equal(t, character.WoundSerious, target.Character.Wounds[0].Severity)
	assert.Equal(t, 10, target.Character.Wounds[0].Damage)

	// Strength 10 subtracts 2 from a scratch's single point; the floor
	// holds the wound at 1.
	src = &scriptedSource{ints: []int{0, 49}, floats: []float64{0.50, 0.96}}
	e = newCombatEnv(src)
	attacker = e.place(t, 1, "Abe", 1, 0, 0)
	target = e.place(t, 2, "Bruno", 2, 30, 0)
	attacker.Character.Strength = 10
	attacker.Character.MarkAttacked(target.ID)

	e.res.ResolveMeleeAttack(attacker, target, testSabre(), 0)
	require.Len(t, target.Character.Wounds, 1)
	assert.Equal(t, character.WoundScratch, target.Character.Wounds[0].Severity)
	assert.Equal(t, 1, target.Character.Wounds[0].Damage)
}

// TestResolveMeleeAttack_MarksTargetAttacked verifies the familiarity
// mark lands whether or not the strike does.
func TestResolveMeleeAttack_MarksTargetAttacked(t *testing.T) {
	src := &scriptedSource{ints: []int{99}}
	e := newCombatEnv(src)
	attacker := e.place(t, 1, "Abe", 1, 0, 0)
	target := e.place(t, 2, "Bruno", 2, 30, 0)
	require.True(t, attacker.Character.FirstAttackOn(target.ID))

	e.res.ResolveMeleeAttack(attacker, target, testSabre(), 0)

	assert.False(t, attacker.Character.FirstAttackOn(target.ID))
}

// TestResolveMeleeAttack_RangedWeaponPanics verifies the class
// precondition.
func TestResolveMeleeAttack_RangedWeaponPanics(t *testing.T) {
	e := newCombatEnv(&scriptedSource{})
	attacker := e.place(t, 1, "Abe", 1, 0, 0)
	target := e.place(t, 2, "Bruno", 2, 30, 0)

	assert.Panics(t, func() {
		e.res.ResolveMeleeAttack(attacker, target, testPistol(), 0)
	})
}
