package fsm

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
)

// TriggerTick is the only trigger name; tick transitions are evaluated on every Update
const TriggerTick = "Tick"

// Machine is a flat finite state machine runtime
// T is the context type passed to actions and guards (e.g., *sweep.Session)
type Machine[T any] struct {
	// Graph Data (Immutable after load)
	nodes  map[StateID]*Node[T]
	byName map[string]StateID
	nextID StateID

	// Configuration
	InitialStateID StateID // Stored during load for reset/init

	// Runtime State
	activeStateID StateID
	ticksInState  int

	// Dependency Injection
	guardReg  map[string]GuardFunc[T]
	actionReg map[string]ActionFunc[T]
}

// Node represents a state in the graph
type Node[T any] struct {
	ID   StateID
	Name string

	// Terminal states ignore all transitions once entered
	Terminal bool

	// Lifecycle Actions
	OnEnter []Action[T]
	OnExit  []Action[T]

	// Transitions in evaluation order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Guard    GuardFunc[T] // nil = Always true
}

// Action represents a side-effect
type Action[T any] struct {
	Func ActionFunc[T]
	Args any // Pre-compiled payload from config
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T, args any)
