package fsm

import (
	"fmt"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:     make(map[StateID]*Node[T]),
		byName:    make(map[string]StateID),
		guardReg:  make(map[string]GuardFunc[T]),
		actionReg: make(map[string]ActionFunc[T]),
	}
}

// RegisterGuard adds a predicate function to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterAction adds a side-effect function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// Init enters the initial state, running its OnEnter actions
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", m.InitialStateID)
	}

	m.activeStateID = node.ID
	m.ticksInState = 0
	for _, action := range node.OnEnter {
		action.Func(ctx, action.Args)
	}
	return nil
}

// Update evaluates tick transitions of the active state
// Returns true if a transition occurred
func (m *Machine[T]) Update(ctx T) bool {
	if m.activeStateID == StateNone {
		return false
	}

	node := m.nodes[m.activeStateID]
	if node.Terminal {
		return false
	}

	m.ticksInState++
	for _, trans := range node.Transitions {
		if trans.Guard == nil || trans.Guard(ctx) {
			m.transition(ctx, trans.TargetID)
			return true
		}
	}
	return false
}

// transition performs state change, exit actions before enter actions
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}

	target, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}

	if current, ok := m.nodes[m.activeStateID]; ok {
		for _, action := range current.OnExit {
			action.Func(ctx, action.Args)
		}
	}

	m.activeStateID = targetID
	m.ticksInState = 0

	for _, action := range target.OnEnter {
		action.Func(ctx, action.Args)
	}
}

// Reset returns FSM to the initial state
// Exit actions of the active state run first
func (m *Machine[T]) Reset(ctx T) error {
	if node, ok := m.nodes[m.activeStateID]; ok {
		for _, action := range node.OnExit {
			action.Func(ctx, action.Args)
		}
	}
	m.activeStateID = StateNone
	return m.Init(ctx)
}

// Active returns the active StateID
func (m *Machine[T]) Active() StateID {
	return m.activeStateID
}

// ActiveName returns the active state name, empty before Init
func (m *Machine[T]) ActiveName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// InTerminal reports whether the active state is terminal
func (m *Machine[T]) InTerminal() bool {
	node, ok := m.nodes[m.activeStateID]
	return ok && node.Terminal
}

// TicksInState returns Update calls since the active state was entered
func (m *Machine[T]) TicksInState() int {
	return m.ticksInState
}
