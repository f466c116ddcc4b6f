package fsm

import "fmt"

// AddState adds a node to the machine manually
// Useful for constructing the graph programmatically or during config load
func (m *Machine[T]) AddState(name string, terminal bool) (*Node[T], error) {
	if _, exists := m.byName[name]; exists {
		return nil, fmt.Errorf("state '%s' already defined", name)
	}
	m.nextID++
	node := &Node[T]{
		ID:          m.nextID,
		Name:        name,
		Terminal:    terminal,
		Transitions: make([]Transition[T], 0),
		OnEnter:     make([]Action[T], 0),
		OnExit:      make([]Action[T], 0),
	}
	m.nodes[node.ID] = node
	m.byName[name] = node.ID
	return node, nil
}

// AddTransition adds a transition to a specific node
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) {
	if node, ok := m.nodes[sourceID]; ok {
		node.Transitions = append(node.Transitions, t)
	}
}

// StateByName resolves a state name to its ID, StateNone if unknown
func (m *Machine[T]) StateByName(name string) StateID {
	return m.byName[name]
}
