package teek

// Interp is the embedded Tcl interpreter seen by the rest of the library.
//
// Every method must be invoked from the goroutine that created the
// interpreter. The bridge package enforces that affinity; implementations
// do not need their own locking.
type Interp interface {
	// Eval runs a string of Tcl code and returns the interpreter result.
	Eval(code string) (string, error)

	// Call invokes a Tcl command with one string per positional argument.
	// Arguments are passed as-is, never re-parsed as Tcl code.
	Call(words ...string) (string, error)

	CreateCommand(name string, fn CommandFunc) error
	DeleteCommand(name string) error

	GetVar(name string) (string, error)
	SetVar(name, value string) error
	UnsetVar(name string) error

	// DoOneEvent processes one pending event. It returns false when there
	// is nothing left to wait for.
	DoOneEvent(flags EventFlags) bool

	// Deleted reports whether the interpreter has been torn down.
	Deleted() bool

	Destroy()
}

// CommandFunc is a Go function exposed to Tcl as a command. It receives the
// command's arguments as raw Tcl strings and returns the command result.
type CommandFunc func(args []string) (string, error)

// EventFlags selects which event sources DoOneEvent services.
type EventFlags int

const (
	AllEvents    EventFlags = 0
	DontWait     EventFlags = 1 << 1
	WindowEvents EventFlags = 1 << 2
	FileEvents   EventFlags = 1 << 3
	TimerEvents  EventFlags = 1 << 4
	IdleEvents   EventFlags = 1 << 5
)
