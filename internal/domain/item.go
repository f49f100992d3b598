package domain

import (
	"maps"
	"slices"
)

// ItemMeta is the optional metadata attached to a game item.
// A nil pointer or empty collection means the attribute is absent.
type ItemMeta struct {
	DisplayName     *string        `json:"display_name,omitempty"`
	Lore            []string       `json:"lore,omitempty"`
	Enchantments    map[string]int `json:"enchantments,omitempty"`
	Damageable      bool           `json:"damageable,omitempty"` // item type supports durability
	Damage          *int           `json:"damage,omitempty"`
	CustomModelData *int           `json:"custom_model_data,omitempty"`
}

func (m *ItemMeta) HasDisplayName() bool     { return m.DisplayName != nil }
func (m *ItemMeta) HasLore() bool            { return len(m.Lore) > 0 }
func (m *ItemMeta) HasEnchants() bool        { return len(m.Enchantments) > 0 }
func (m *ItemMeta) HasDamage() bool          { return m.Damage != nil }
func (m *ItemMeta) HasCustomModelData() bool { return m.CustomModelData != nil }

// Clone returns a deep copy of the metadata.
func (m *ItemMeta) Clone() *ItemMeta {
	if m == nil {
		return nil
	}
	return &ItemMeta{
		DisplayName:     clonePtr(m.DisplayName),
		Lore:            slices.Clone(m.Lore),
		Enchantments:    maps.Clone(m.Enchantments),
		Damageable:      m.Damageable,
		Damage:          clonePtr(m.Damage),
		CustomModelData: clonePtr(m.CustomModelData),
	}
}

// ItemDescriptor describes the game item a listing trades: its material
// plus any cosmetic or functional metadata.
type ItemDescriptor struct {
	Material string    `json:"material" validate:"required"`
	Meta     *ItemMeta `json:"meta,omitempty"`
}

// NewItemDescriptor builds a descriptor from decoded input. Metadata with no
// attribute set is dropped so the item matches plain held items.
func NewItemDescriptor(material string, meta ItemMeta) ItemDescriptor {
	item := ItemDescriptor{Material: material}
	if !meta.IsEmpty() {
		item.Meta = &meta
	}
	return item
}

// IsEmpty reports whether no attribute is set.
func (m *ItemMeta) IsEmpty() bool {
	return !m.HasDisplayName() && !m.HasLore() && !m.HasEnchants() &&
		!m.Damageable && !m.HasDamage() && !m.HasCustomModelData()
}

// HasMeta reports whether the item carries metadata.
func (d ItemDescriptor) HasMeta() bool {
	return d.Meta != nil
}

// Clone returns a deep copy that shares no memory with d.
func (d ItemDescriptor) Clone() ItemDescriptor {
	return ItemDescriptor{
		Material: d.Material,
		Meta:     d.Meta.Clone(),
	}
}

// sameItem compares two descriptors the way a shop resolves a held item to a listing.
func sameItem(a, b *ItemDescriptor) bool {
	if b == nil {
		return false
	}
	if a.Material != b.Material {
		return false
	}
	if a.HasMeta() != b.HasMeta() {
		return false
	}
	if !a.HasMeta() {
		return true
	}

	am, bm := a.Meta, b.Meta

	if am.HasDisplayName() != bm.HasDisplayName() {
		return false
	}
	if am.HasDisplayName() && *am.DisplayName != *bm.DisplayName {
		return false
	}

	if am.HasLore() != bm.HasLore() {
		return false
	}
	if am.HasLore() && !slices.Equal(am.Lore, bm.Lore) {
		return false
	}

	if am.HasEnchants() != bm.HasEnchants() {
		return false
	}
	if am.HasEnchants() && !maps.Equal(am.Enchantments, bm.Enchantments) {
		return false
	}

	// Durability only counts when both item types support it
	if am.Damageable && bm.Damageable {
		if am.HasDamage() != bm.HasDamage() {
			return false
		}
		if am.HasDamage() && *am.Damage != *bm.Damage {
			return false
		}
	}

	if am.HasCustomModelData() != bm.HasCustomModelData() {
		return false
	}
	if am.HasCustomModelData() && *am.CustomModelData != *bm.CustomModelData {
		return false
	}

	return true
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
