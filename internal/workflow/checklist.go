package workflow

// ChecklistItem is one named checkpoint on a stage checklist.
type ChecklistItem struct {
	Key     string
	Label   string
	Checked bool
}

// Checklist is an ordered set of checkpoints for one unit at one stage.
type Checklist struct {
	items []ChecklistItem
}

// NewChecklist builds an all-unchecked checklist from key/label pairs.
func NewChecklist(items []ChecklistItem) *Checklist {
	copied := make([]ChecklistItem, len(items))
	copy(copied, items)
	for i := range copied {
		copied[i].Checked = false
	}
	return &Checklist{items: copied}
}

// Items returns a copy of the checklist entries in order.
func (c *Checklist) Items() []ChecklistItem {
	out := make([]ChecklistItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of checkpoints.
func (c *Checklist) Len() int {
	return len(c.items)
}

// CheckedCount returns the number of ticked checkpoints.
func (c *Checklist) CheckedCount() int {
	count := 0
	for _, item := range c.items {
		if item.Checked {
			count++
		}
	}
	return count
}

// AllChecked reports whether every checkpoint is ticked.
func (c *Checklist) AllChecked() bool {
	return len(c.items) > 0 && c.CheckedCount() == len(c.items)
}

// Toggle flips a single checkpoint by key.
func (c *Checklist) Toggle(key string) bool {
	for i := range c.items {
		if c.items[i].Key == key {
			c.items[i].Checked = !c.items[i].Checked
			return true
		}
	}
	return false
}

// ToggleAll implements the select-all control: if every checkpoint is
// currently ticked it clears all of them, otherwise it ticks all of them.
// Not a per-item toggle.
func (c *Checklist) ToggleAll() {
	target := !c.AllChecked()
	for i := range c.items {
		c.items[i].Checked = target
	}
}

// Values returns checkpoint states keyed by field name.
func (c *Checklist) Values() map[string]bool {
	out := make(map[string]bool, len(c.items))
	for _, item := range c.items {
		out[item.Key] = item.Checked
	}
	return out
}
