package roster

// QuotaTable tracks how many duties of one kind each doctor still owes.
// Every assigner builds and mutates its own tables; nothing is shared
// between assigners.
type QuotaTable struct {
	order     []string
	remaining map[string]int
}

// NewQuotaTable builds a table for the given doctors, preserving their
// roster order. requiredFor resolves each doctor's required count.
func NewQuotaTable(names []string, requiredFor func(name string) int) *QuotaTable {
	table := &QuotaTable{
		order:     make([]string, 0, len(names)),
		remaining: make(map[string]int, len(names)),
	}
	for _, name := range names {
		table.order = append(table.order, name)
		table.remaining[name] = requiredFor(name)
	}
	return table
}

// Remaining returns how many duties the named doctor still owes.
func (t *QuotaTable) Remaining(name string) int {
	return t.remaining[name]
}

// Consume records one fulfilled duty for the named doctor.
func (t *QuotaTable) Consume(name string) {
	if t.remaining[name] > 0 {
		t.remaining[name]--
	}
}

// Eligible returns, in roster order, the doctors who still owe duties.
func (t *QuotaTable) Eligible() []string {
	eligible := make([]string, 0, len(t.order))
	for _, name := range t.order {
		if t.remaining[name] > 0 {
			eligible = append(eligible, name)
		}
	}
	return eligible
}

// Exhausted reports whether every doctor's requirement has been met.
func (t *QuotaTable) Exhausted() bool {
	for _, name := range t.order {
		if t.remaining[name] > 0 {
			return false
		}
	}
	return true
}
