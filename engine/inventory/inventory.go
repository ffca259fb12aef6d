// Package inventory holds the player's ordered item list and the two equip
// slots that index into it.
//
// Slot indices are either -1 or a valid index into the item list. Every
// removal goes through Remove, which clears a slot pointing at the removed
// index and then shifts down any slot above it.
package inventory

import (
	"errors"
	"slices"
	"strings"

	"github.com/nathoo/retrodungeon/types"
)

var (
	ErrNoItem          = errors.New("item not in inventory")
	ErrAlreadyEquipped = errors.New("item already equipped in that slot")
	ErrAmbiguousSlot   = errors.New("item fits both weapon and armor slots")
	ErrWrongSlot       = errors.New("item does not fit that slot")
)

// Slot selects an equip slot.
type Slot int

const (
	SlotAuto Slot = iota
	SlotWeapon
	SlotArmor
)

func (s Slot) String() string {
	switch s {
	case SlotWeapon:
		return "weapon"
	case SlotArmor:
		return "armor"
	default:
		return "auto"
	}
}

// Class is the equip classification derived from an item's bonuses.
type Class int

const (
	ClassCosmetic Class = iota
	ClassWeapon
	ClassArmor
	ClassHybrid
)

// Classify derives the class from the damage and armor bonuses.
func Classify(it types.Item) Class {
	weapon, armor := it.Damage > 0, it.Armor > 0
	switch {
	case weapon && armor:
		return ClassHybrid
	case weapon:
		return ClassWeapon
	case armor:
		return ClassArmor
	default:
		return ClassCosmetic
	}
}

// Inventory is the player's carried items plus the two equip slots.
type Inventory struct {
	items  []types.Item
	weapon int
	armor  int
}

// New returns an empty inventory with both slots clear.
func New() *Inventory {
	return &Inventory{weapon: -1, armor: -1}
}

// Items returns a copy of the carried items in take order.
func (inv *Inventory) Items() []types.Item {
	out := make([]types.Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Len returns the number of carried items.
func (inv *Inventory) Len() int { return len(inv.items) }

// Names returns the carried item names in take order.
func (inv *Inventory) Names() []string {
	names := make([]string, len(inv.items))
	for i, it := range inv.items {
		names[i] = it.Name
	}
	return names
}

// Add appends a copy of item.
func (inv *Inventory) Add(item types.Item) {
	inv.items = append(inv.items, item)
}

// Index returns the index of the first item matching name, or -1.
func (inv *Inventory) Index(name string) int {
	for i, it := range inv.items {
		if strings.EqualFold(it.Name, name) {
			return i
		}
	}
	return -1
}

// Find returns the first item matching name.
func (inv *Inventory) Find(name string) (types.Item, bool) {
	i := inv.Index(name)
	if i < 0 {
		return types.Item{}, false
	}
	return inv.items[i], true
}

// Has reports whether an item with the given content tag is carried.
func (inv *Inventory) Has(tag string) bool {
	return inv.indexTag(tag) >= 0
}

func (inv *Inventory) indexTag(tag string) int {
	for i, it := range inv.items {
		if it.Tag == tag {
			return i
		}
	}
	return -1
}

// WeaponIndex returns the weapon slot index, or -1.
func (inv *Inventory) WeaponIndex() int { return inv.weapon }

// ArmorIndex returns the armor slot index, or -1.
func (inv *Inventory) ArmorIndex() int { return inv.armor }

// Weapon returns the equipped weapon.
func (inv *Inventory) Weapon() (types.Item, bool) {
	if inv.weapon < 0 {
		return types.Item{}, false
	}
	return inv.items[inv.weapon], true
}

// Armor returns the equipped armor.
func (inv *Inventory) Armor() (types.Item, bool) {
	if inv.armor < 0 {
		return types.Item{}, false
	}
	return inv.items[inv.armor], true
}

// Equipped reports which slot, if any, holds the item at index i.
func (inv *Inventory) Equipped(i int) (weapon, armor bool) {
	return i >= 0 && inv.weapon == i, i >= 0 && inv.armor == i
}

// Remove deletes the item at index i and keeps both slots valid.
func (inv *Inventory) Remove(i int) types.Item {
	it := inv.items[i]
	inv.weapon = shift(inv.weapon, i)
	inv.armor = shift(inv.armor, i)
	inv.items = slices.Delete(inv.items, i, i+1)
	return it
}

// shift returns the slot index after removing index removed.
func shift(slot, removed int) int {
	switch {
	case slot == removed:
		return -1
	case slot > removed:
		return slot - 1
	default:
		return slot
	}
}

// RemoveTag removes the first item with the given content tag.
func (inv *Inventory) RemoveTag(tag string) (types.Item, bool) {
	i := inv.indexTag(tag)
	if i < 0 {
		return types.Item{}, false
	}
	return inv.Remove(i), true
}

// Drop removes the first item matching name. It reports whether the item was
// equipped before the removal.
func (inv *Inventory) Drop(name string) (types.Item, bool, error) {
	i := inv.Index(name)
	if i < 0 {
		return types.Item{}, false, ErrNoItem
	}
	w, a := inv.Equipped(i)
	return inv.Remove(i), w || a, nil
}

// EquipResult describes a successful equip.
type EquipResult struct {
	Item     types.Item
	Slot     Slot
	Replaced *types.Item // previous occupant, removed from the inventory
}

// Equip puts the named item into a slot. SlotAuto picks the slot from the
// item's class; hybrids need an explicit slot and cosmetic items go into the
// weapon slot. A different item already in the slot is removed from the
// inventory and returned in Replaced for the caller to place in the room.
func (inv *Inventory) Equip(name string, slot Slot) (EquipResult, error) {
	i := inv.Index(name)
	if i < 0 {
		return EquipResult{}, ErrNoItem
	}
	item := inv.items[i]

	slot, err := resolveSlot(Classify(item), slot)
	if err != nil {
		return EquipResult{}, err
	}

	cur := inv.weapon
	if slot == SlotArmor {
		cur = inv.armor
	}
	if cur == i {
		return EquipResult{}, ErrAlreadyEquipped
	}

	res := EquipResult{Item: item, Slot: slot}
	if cur >= 0 {
		old := inv.Remove(cur)
		res.Replaced = &old
		if i > cur {
			i--
		}
	}

	if slot == SlotArmor {
		inv.armor = i
	} else {
		inv.weapon = i
	}
	return res, nil
}

func resolveSlot(class Class, slot Slot) (Slot, error) {
	switch slot {
	case SlotWeapon:
		if class == ClassArmor {
			return slot, ErrWrongSlot
		}
		return slot, nil
	case SlotArmor:
		if class != ClassArmor && class != ClassHybrid {
			return slot, ErrWrongSlot
		}
		return slot, nil
	}
	switch class {
	case ClassHybrid:
		return SlotAuto, ErrAmbiguousSlot
	case ClassArmor:
		return SlotArmor, nil
	default:
		return SlotWeapon, nil
	}
}

// TotalAttack returns base plus the equipped weapon's damage bonus.
func (inv *Inventory) TotalAttack(base int) int {
	if w, ok := inv.Weapon(); ok {
		return base + w.Damage
	}
	return base
}

// TotalArmor returns base plus the equipped armor's armor bonus.
func (inv *Inventory) TotalArmor(base int) int {
	if a, ok := inv.Armor(); ok {
		return base + a.Armor
	}
	return base
}
