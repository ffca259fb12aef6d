package engine

import (
	"errors"
	"fmt"

	"github.com/nathoo/retrodungeon/engine/inventory"
	"github.com/nathoo/retrodungeon/engine/state"
	"github.com/nathoo/retrodungeon/types"
)

func (e *Engine) cmdEquip(r *types.Result, name, slotWord string) {
	if name == "" {
		say(r, "Equip what?")
		return
	}

	var slot inventory.Slot
	switch slotWord {
	case "":
		slot = inventory.SlotAuto
	case "weapon":
		slot = inventory.SlotWeapon
	case "armor":
		slot = inventory.SlotArmor
	default:
		say(r, fmt.Sprintf("Use 'equip %s weapon' or 'equip %s armor'.", name, name))
		return
	}

	res, err := e.Session.Inventory.Equip(name, slot)
	switch {
	case errors.Is(err, inventory.ErrNoItem):
		say(r, "You don't have a "+name+" in your inventory.")
		return
	case errors.Is(err, inventory.ErrAmbiguousSlot):
		say(r, fmt.Sprintf("The %s can be used as weapon or armor. Use 'equip %s weapon' or 'equip %s armor'.", name, name, name))
		return
	case errors.Is(err, inventory.ErrAlreadyEquipped):
		say(r, "The "+name+" is already equipped.")
		return
	case errors.Is(err, inventory.ErrWrongSlot):
		say(r, fmt.Sprintf("The %s can't be used as %s.", name, slotPhrase(slot)))
		return
	case err != nil:
		say(r, "You can't equip that.")
		return
	}

	if res.Replaced != nil {
		// The old item lands in whatever room the player is standing in.
		room := e.Room()
		room.AddItem(*res.Replaced)
		emit(r, "item_dropped", map[string]any{"item": res.Replaced.Tag, "room": room.Tag})
		say(r, "You unequip the "+res.Replaced.Name+" and drop it.")
	}

	it := res.Item
	switch {
	case res.Slot == inventory.SlotArmor:
		say(r, fmt.Sprintf("You equip the %s as armor. (+%d protection)", it.Name, it.Armor))
	case it.Damage > 0:
		say(r, fmt.Sprintf("You equip the %s as a weapon. (+%d attack)", it.Name, it.Damage))
	default:
		say(r, fmt.Sprintf("You equip the %s. (No combat bonus)", it.Name))
	}
	emit(r, "item_equipped", map[string]any{"item": it.Tag, "slot": res.Slot.String()})
}

func slotPhrase(s inventory.Slot) string {
	if s == inventory.SlotArmor {
		return "armor"
	}
	return "a weapon"
}

func (e *Engine) cmdDrop(r *types.Result, name string) {
	if name == "" {
		say(r, "Drop what?")
		return
	}

	it, wasEquipped, err := e.Session.Inventory.Drop(name)
	if err != nil {
		say(r, "You don't have a "+name+" to drop.")
		return
	}
	if wasEquipped {
		say(r, "You unequip the "+it.Name+".")
	}
	room := e.Room()
	room.AddItem(it)
	emit(r, "item_dropped", map[string]any{"item": it.Tag, "room": room.Tag})
	say(r, "You drop the "+it.Name+".")
}

func (e *Engine) cmdStats(r *types.Result, name string) {
	if name == "" {
		say(r, "Stats for what?")
		return
	}

	s := e.Session
	i := s.Inventory.Index(name)
	if i < 0 {
		say(r, "You don't have a "+name+" in your inventory.")
		return
	}
	it := s.Inventory.Items()[i]
	asWeapon, asArmor := s.Inventory.Equipped(i)

	say(r, "=== "+it.Name+" STATS ===", it.Description, "")

	if it.Damage > 0 {
		say(r, fmt.Sprintf("WEAPON DAMAGE: +%d attack bonus", it.Damage))
		if asWeapon {
			say(r, fmt.Sprintf("Currently equipped as weapon - contributing to your %d total attack", s.TotalAttack()))
		} else {
			say(r, fmt.Sprintf("Total attack with this weapon: %d (currently: %d)", s.Player.BaseAttack+it.Damage, s.TotalAttack()))
		}
	} else {
		say(r, "WEAPON DAMAGE: +0 attack bonus")
	}

	if it.Armor > 0 {
		say(r, fmt.Sprintf("ARMOR PROTECTION: +%d armor bonus", it.Armor))
		if asArmor {
			say(r, fmt.Sprintf("Currently equipped as armor - contributing to your %d total armor", s.TotalArmor()))
		} else {
			say(r, fmt.Sprintf("Total armor with this item: %d (currently: %d)", s.Player.BaseArmor+it.Armor, s.TotalArmor()))
		}
	} else {
		say(r, "ARMOR PROTECTION: +0 armor bonus")
	}

	say(r, "")
	switch inventory.Classify(it) {
	case inventory.ClassHybrid:
		say(r, "TYPE: Hybrid (can be weapon or armor)")
	case inventory.ClassWeapon:
		say(r, "TYPE: Weapon")
	case inventory.ClassArmor:
		say(r, "TYPE: Armor")
	default:
		say(r, "TYPE: Miscellaneous item")
	}

	switch {
	case asWeapon && asArmor:
		say(r, "STATUS: EQUIPPED as weapon and armor")
	case asWeapon:
		say(r, "STATUS: EQUIPPED as weapon")
	case asArmor:
		say(r, "STATUS: EQUIPPED as armor")
	default:
		say(r, "STATUS: In inventory (not equipped)")
	}
}

// cmdUse dispatches on the item's tag and, for plot items, the room's tag.
func (e *Engine) cmdUse(r *types.Result, name string) {
	if name == "" {
		say(r, "Use what?")
		return
	}

	s := e.Session
	it, ok := s.Inventory.Find(name)
	if !ok {
		say(r, "You don't have a "+name+" to use.")
		return
	}
	here := e.Room().Tag

	switch {
	case it.Tag == itemPlaster:
		e.usePlaster(r)
	case it.Tag == itemGem && here == roomThrone:
		e.useGem(r)
	case it.Tag == itemGem:
		say(r, "The gem doesn't seem to have any effect here. Perhaps it belongs somewhere special...")
	case it.Tag == itemGold && here == roomDark:
		e.useGold(r)
	case it.Tag == itemGold:
		say(r, "The gold feels heavy in your hands, but there's nothing to spend it on here.")
	case it.Tag == itemNote:
		e.readNote(r)
	case it.Tag == itemAncientStaff && s.Flags.StaffComplete:
		e.raiseStaff(r)
	default:
		say(r, "You can't use the "+it.Name+".")
	}
}

func (e *Engine) consume(r *types.Result, tag string) {
	if _, ok := e.Session.Inventory.RemoveTag(tag); ok {
		emit(r, "item_consumed", map[string]any{"item": tag})
	}
}

func (e *Engine) usePlaster(r *types.Result) {
	p := &e.Session.Player
	if p.Health >= state.MaxHealth {
		say(r, "You are already at full health!")
		return
	}
	before := p.Health
	p.Health = min(p.Health+20, state.MaxHealth)
	e.consume(r, itemPlaster)
	say(r,
		fmt.Sprintf("You use the magical plaster and heal for %d health!", p.Health-before),
		fmt.Sprintf("Your health is now %d/%d.", p.Health, state.MaxHealth),
		"The plaster dissolves after use.",
	)
}

func (e *Engine) useGem(r *types.Result) {
	f := &e.Session.Flags
	if f.GemUsed {
		say(r, "You have already used the gem here.")
		return
	}
	f.GemUsed = true
	say(r,
		"You approach the ancient throne and notice a ruby-shaped indentation in its armrest.",
		"You carefully place the sparkling ruby into the slot...",
		"*CLICK* The gem slots perfectly into place with a satisfying sound!",
		"Suddenly, the floor trembles and ancient mechanisms whir to life!",
		"A hidden door slides open in the south wall, revealing sunlight beyond!",
	)
	e.link(r, roomThrone, "south", roomMeadow, "north")
	e.consume(r, itemGem)
	e.fired("gem")
}

func (e *Engine) useGold(r *types.Result) {
	f := &e.Session.Flags
	if f.StrangerMet {
		say(r, "You have already traded with the mysterious stranger.")
		return
	}
	f.StrangerMet = true
	f.HasTeleport = true
	say(r,
		"The mysterious stranger's eyes gleam as you offer the gold.",
		"'Excellent...' the stranger whispers, taking the gold with bony fingers.",
		"'In return, I shall grant you the ancient art of teleportation...'",
		"Dark energy swirls around you as mystical knowledge floods your mind!",
		"You have learned TELEPORT! When viewing the map, click on any explored room to instantly travel there.",
	)
	e.consume(r, itemGold)
	e.fired("gold")
}

func (e *Engine) raiseStaff(r *types.Result) {
	f := &e.Session.Flags
	say(r,
		"You raise the Ancient Staff of Power high above your head...",
		"The gems in the staff head begin to glow with intense magical energy!",
		"Suddenly, you hear a distant whistling sound from far above...",
		"The whistling grows louder and more intense...",
		"Something is dropping from the sky!",
		"",
		"The staff's power has torn a rift in the heavens themselves!",
		"A massive asteroid hurtles through the atmosphere toward the earth!",
		"You realize with horror what the staff's true power was...",
		"",
		"IMPACT!",
		"",
		"Type 'continue' to continue...",
	)
	f.GameEnding = true
	f.WaitingForContinue = true
	emit(r, "ending_started", nil)
	e.fired("staff")
}
