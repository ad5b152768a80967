package sdk

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mborders/logmatic"
)

// MemoryState is the in-process State used by tests and local runs. It keeps
// the whole keyspace in a map and can snapshot it to a JSON file.
type MemoryState struct {
	db map[string]string
}

func NewMemoryState() *MemoryState {
	return &MemoryState{db: make(map[string]string)}
}

func (m *MemoryState) Set(key, value string) {
	m.db[key] = value
}

func (m *MemoryState) Get(key string) *string {
	val, ok := m.db[key]
	if !ok {
		return nil
	}
	return &val
}

func (m *MemoryState) Delete(key string) {
	delete(m.db, key)
}

// Len reports how many keys are stored, handy for residue checks in tests.
func (m *MemoryState) Len() int {
	return len(m.db)
}

// SaveToFile writes the full map to a JSON file.
func (m *MemoryState) SaveToFile(filename string) error {
	data, err := json.MarshalIndent(m.db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// LoadFromFile loads the map from a JSON file. A missing file is not an error.
func (m *MemoryState) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &m.db)
}

// MemoryBank is an in-process Bank. Draw pulls funds into the holding account,
// Transfer pays out of it. Balances never go negative.
type MemoryBank struct {
	holding  Address
	balances map[Address]map[Asset]Amount
}

func NewMemoryBank(holding Address) *MemoryBank {
	return &MemoryBank{
		holding:  holding,
		balances: make(map[Address]map[Asset]Amount),
	}
}

// Deposit credits an account directly, used to fund test identities.
func (b *MemoryBank) Deposit(addr Address, amount Amount, asset Asset) {
	if b.balances[addr] == nil {
		b.balances[addr] = make(map[Asset]Amount)
	}
	b.balances[addr][asset] += amount
}

func (b *MemoryBank) Balance(addr Address, asset Asset) Amount {
	return b.balances[addr][asset]
}

func (b *MemoryBank) Draw(from Address, amount Amount, asset Asset) error {
	if amount <= 0 {
		return fmt.Errorf("draw amount must be positive, got %d", amount)
	}
	if b.balances[from][asset] < amount {
		return fmt.Errorf("account %s holds %d %s, cannot draw %d",
			from, b.balances[from][asset], asset, amount)
	}
	b.balances[from][asset] -= amount
	b.Deposit(b.holding, amount, asset)
	return nil
}

func (b *MemoryBank) Transfer(to Address, amount Amount, asset Asset) error {
	if amount <= 0 {
		return fmt.Errorf("transfer amount must be positive, got %d", amount)
	}
	if b.balances[b.holding][asset] < amount {
		return fmt.Errorf("holding account %s holds %d %s, cannot pay out %d",
			b.holding, b.balances[b.holding][asset], asset, amount)
	}
	b.balances[b.holding][asset] -= amount
	b.Deposit(to, amount, asset)
	return nil
}

// LogSink is an EventSink that writes every line through logmatic and keeps
// the lines around so tests can assert on emitted events.
type LogSink struct {
	l     *logmatic.Logger
	lines []string
}

func NewLogSink() *LogSink {
	l := logmatic.NewLogger()
	l.SetLevel(logmatic.INFO)
	return &LogSink{l: l}
}

func (s *LogSink) Emit(line string) {
	s.lines = append(s.lines, line)
	s.l.Info("%s", line)
}

// Lines returns a copy of everything emitted so far.
func (s *LogSink) Lines() []string {
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}
