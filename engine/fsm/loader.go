package fsm

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

// LoadConfig parses a TOML byte slice and populates the Machine
// Validates all references (states, guards, actions, triggers)
// Clears existing graph data before loading
func (m *Machine[T]) LoadConfig(data []byte) error {
	// 1. Decode TOML into intermediate config
	var config RootConfig
	if _, err := toml.Decode(string(data), &config); err != nil {
		return fmt.Errorf("failed to unmarshal FSM config: %w", err)
	}

	// 2. Clear existing graph
	m.nodes = make(map[StateID]*Node[T])
	m.byName = make(map[string]StateID)
	m.nextID = StateNone
	m.activeStateID = StateNone

	// 3. First Pass: create nodes in sorted order for stable IDs
	names := make([]string, 0, len(config.States))
	for name := range config.States {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := m.AddState(name, config.States[name].Terminal); err != nil {
			return err
		}
	}

	// 4. Second Pass: actions and transitions
	for _, name := range names {
		sc := config.States[name]
		node := m.nodes[m.byName[name]]

		var err error
		if node.OnEnter, err = m.compileActions(name, sc.OnEnter); err != nil {
			return err
		}
		if node.OnExit, err = m.compileActions(name, sc.OnExit); err != nil {
			return err
		}

		for _, tc := range sc.Transitions {
			if tc.Trigger != TriggerTick {
				return fmt.Errorf("state '%s': unknown trigger '%s'", name, tc.Trigger)
			}
			targetID, ok := m.byName[tc.Target]
			if !ok {
				return fmt.Errorf("state '%s': unknown target '%s'", name, tc.Target)
			}
			var guard GuardFunc[T]
			if tc.Guard != "" {
				if guard, ok = m.guardReg[tc.Guard]; !ok {
					return fmt.Errorf("state '%s': unknown guard '%s'", name, tc.Guard)
				}
			}
			m.AddTransition(node.ID, Transition[T]{TargetID: targetID, Guard: guard})
		}
	}

	// 5. Initial state
	initialID, ok := m.byName[config.InitialState]
	if !ok {
		return fmt.Errorf("initial state '%s' not defined", config.InitialState)
	}
	m.InitialStateID = initialID

	return nil
}

// compileActions resolves action names against the registry
func (m *Machine[T]) compileActions(state string, configs []ActionConfig) ([]Action[T], error) {
	actions := make([]Action[T], 0, len(configs))
	for _, ac := range configs {
		fn, ok := m.actionReg[ac.Action]
		if !ok {
			return nil, fmt.Errorf("state '%s': unknown action '%s'", state, ac.Action)
		}
		actions = append(actions, Action[T]{Func: fn, Args: ac.Args})
	}
	return actions, nil
}
