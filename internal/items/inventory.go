package items

// MaxHeld caps the held set at the number of distinct stone types. A
// player carrying the lantern has to spend it before the last stone
// fits.
const MaxHeld = 3

// Inventory is the player's held set: ordered for stable serialization,
// duplicate-free, never larger than MaxHeld.
type Inventory struct {
	Held []ID `json:"held,omitempty"`
}

func NewInventory(ids ...ID) Inventory {
	inv := Inventory{}
	for _, id := range ids {
		inv.Add(id)
	}
	return inv
}

func (inv Inventory) Contains(id ID) bool {
	for _, held := range inv.Held {
		if held == id {
			return true
		}
	}
	return false
}

func (inv Inventory) Len() int {
	return len(inv.Held)
}

func (inv Inventory) Full() bool {
	return len(inv.Held) >= MaxHeld
}

// Add appends the item and reports success. Duplicates and additions beyond
// MaxHeld are refused.
func (inv *Inventory) Add(id ID) bool {
	if inv == nil || inv.Full() || inv.Contains(id) {
		return false
	}
	inv.Held = append(inv.Held, id)
	return true
}

func (inv *Inventory) Remove(id ID) bool {
	if inv == nil {
		return false
	}
	for i, held := range inv.Held {
		if held == id {
			inv.Held = append(inv.Held[:i], inv.Held[i+1:]...)
			return true
		}
	}
	return false
}

func (inv Inventory) StoneCount() int {
	count := 0
	for _, held := range inv.Held {
		if held.Stone() {
			count++
		}
	}
	return count
}

// HoldsAllStones reports whether every required stone is held.
func (inv Inventory) HoldsAllStones() bool {
	for _, stone := range Stones {
		if !inv.Contains(stone) {
			return false
		}
	}
	return true
}

// List returns the held items in insertion order with independent backing
// storage.
func (inv Inventory) List() []ID {
	if len(inv.Held) == 0 {
		return nil
	}
	cloned := make([]ID, len(inv.Held))
	copy(cloned, inv.Held)
	return cloned
}

func (inv Inventory) Clone() Inventory {
	return Inventory{Held: inv.List()}
}
