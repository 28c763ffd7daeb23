package interp

/*
#cgo pkg-config: tcl tk

#include <stdint.h>
#include <stdlib.h>
#include <tcl.h>
#include <tk.h>

extern int teekCommandProc(uintptr_t handle, Tcl_Interp *interp, int objc, Tcl_Obj **objv);
extern void teekCommandDeleteProc(uintptr_t handle);

static int _teek_cmd_proc(ClientData cd, Tcl_Interp *in, int objc, Tcl_Obj *const objv[]) {
	return teekCommandProc((uintptr_t)cd, in, objc, (Tcl_Obj **)objv);
}

static void _teek_cmd_delete(ClientData cd) {
	teekCommandDeleteProc((uintptr_t)cd);
}

static Tcl_Command teek_create_command(Tcl_Interp *in, const char *name, uintptr_t handle) {
	return Tcl_CreateObjCommand(in, name, _teek_cmd_proc, (ClientData)handle, _teek_cmd_delete);
}

// Tcl's refcount operations are macros and need C wrappers.
static void teek_incr_ref(Tcl_Obj *obj) { Tcl_IncrRefCount(obj); }
static void teek_decr_ref(Tcl_Obj *obj) { Tcl_DecrRefCount(obj); }
*/
import "C"

import (
	"os"
	"runtime"
	runtimecgo "runtime/cgo"
	"sync"
	"unsafe"

	"github.com/teekgo/teek"
	"github.com/teekgo/teek/errors"
)

var findExecutableOnce sync.Once

// Interp wraps one native Tcl interpreter with Tk loaded. All methods
// must be called from the goroutine that called New.
type Interp struct {
	interp   *C.Tcl_Interp
	commands map[string]runtimecgo.Handle
}

type commandState struct {
	in   *Interp
	name string
	fn   teek.CommandFunc
}

var _ teek.Interp = (*Interp)(nil)

// New creates a Tcl interpreter and initializes Tk in it. The calling
// goroutine is locked to its OS thread; the interpreter belongs to
// that goroutine for its whole life.
func New() (*Interp, error) {
	runtime.LockOSThread()

	findExecutableOnce.Do(func() {
		exe, err := os.Executable()
		if err != nil {
			exe = os.Args[0]
		}
		cexe := C.CString(exe)
		defer C.free(unsafe.Pointer(cexe))
		C.Tcl_FindExecutable(cexe)
	})

	raw := C.Tcl_CreateInterp()
	if raw == nil {
		return nil, errors.New(errors.PhaseInit, errors.KindTclError).
			Detail("Tcl_CreateInterp failed").
			Build()
	}
	in := &Interp{
		interp:   raw,
		commands: make(map[string]runtimecgo.Handle),
	}
	if C.Tcl_Init(raw) != C.TCL_OK {
		err := errors.Tcl(errors.PhaseInit, in.result())
		C.Tcl_DeleteInterp(raw)
		return nil, err
	}
	if C.Tk_Init(raw) != C.TCL_OK {
		err := errors.Tcl(errors.PhaseInit, in.result())
		C.Tcl_DeleteInterp(raw)
		return nil, err
	}
	// the exit command would kill the whole process under us
	if _, err := in.Eval("rename exit {}"); err != nil {
		in.Destroy()
		return nil, err
	}
	return in, nil
}

func (in *Interp) result() string {
	obj := C.Tcl_GetObjResult(in.interp)
	if obj == nil {
		return ""
	}
	return C.GoString(C.Tcl_GetString(obj))
}

// Eval runs a string of Tcl code and returns the interpreter result.
func (in *Interp) Eval(code string) (string, error) {
	ccode := C.CString(code)
	defer C.free(unsafe.Pointer(ccode))

	if C.Tcl_EvalEx(in.interp, ccode, C.int(len(code)), 0) != C.TCL_OK {
		return "", errors.Tcl(errors.PhaseEval, in.result())
	}
	return in.result(), nil
}

// Call invokes a command with one Tcl_Obj per word. Words are passed
// as data, never re-parsed, so strings containing spaces or braces
// arrive in the command unchanged.
func (in *Interp) Call(words ...string) (string, error) {
	if len(words) == 0 {
		return "", errors.InvalidInput(errors.PhaseCall, "empty command")
	}

	objv := make([]*C.Tcl_Obj, len(words))
	for i, word := range words {
		cword := C.CString(word)
		objv[i] = C.Tcl_NewStringObj(cword, C.int(len(word)))
		C.free(unsafe.Pointer(cword))
		C.teek_incr_ref(objv[i])
	}
	defer func() {
		for _, obj := range objv {
			C.teek_decr_ref(obj)
		}
	}()

	status := C.Tcl_EvalObjv(in.interp, C.int(len(objv)), &objv[0], 0)
	if status != C.TCL_OK {
		return "", errors.Tcl(errors.PhaseCall, in.result())
	}
	return in.result(), nil
}

// CreateCommand registers fn as a Tcl command under name.
func (in *Interp) CreateCommand(name string, fn teek.CommandFunc) error {
	if _, exists := in.commands[name]; exists {
		return errors.New(errors.PhaseCommand, errors.KindInvalidInput).
			Detail("command %q already registered", name).
			Build()
	}

	handle := runtimecgo.NewHandle(&commandState{in: in, name: name, fn: fn})
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	if C.teek_create_command(in.interp, cname, C.uintptr_t(handle)) == nil {
		handle.Delete()
		return errors.Tcl(errors.PhaseCommand, in.result())
	}
	in.commands[name] = handle
	return nil
}

// DeleteCommand removes a command registered with CreateCommand. The
// handle cleanup happens in the delete callback Tcl invokes.
func (in *Interp) DeleteCommand(name string) error {
	if _, exists := in.commands[name]; !exists {
		return errors.NotFound(errors.PhaseCommand, "command", name)
	}
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	if C.Tcl_DeleteCommand(in.interp, cname) < 0 {
		return errors.NotFound(errors.PhaseCommand, "command", name)
	}
	return nil
}

// GetVar reads a global Tcl variable.
func (in *Interp) GetVar(name string) (string, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	value := C.Tcl_GetVar(in.interp, cname, C.TCL_GLOBAL_ONLY|C.TCL_LEAVE_ERR_MSG)
	if value == nil {
		return "", errors.Tcl(errors.PhaseEval, in.result())
	}
	return C.GoString(value), nil
}

// SetVar writes a global Tcl variable.
func (in *Interp) SetVar(name, value string) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	cvalue := C.CString(value)
	defer C.free(unsafe.Pointer(cvalue))

	if C.Tcl_SetVar(in.interp, cname, cvalue, C.TCL_GLOBAL_ONLY|C.TCL_LEAVE_ERR_MSG) == nil {
		return errors.Tcl(errors.PhaseEval, in.result())
	}
	return nil
}

// UnsetVar removes a global Tcl variable.
func (in *Interp) UnsetVar(name string) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	if C.Tcl_UnsetVar(in.interp, cname, C.TCL_GLOBAL_ONLY|C.TCL_LEAVE_ERR_MSG) != C.TCL_OK {
		return errors.Tcl(errors.PhaseEval, in.result())
	}
	return nil
}

// DoOneEvent processes one pending Tcl/Tk event. With AllEvents it
// blocks until an event arrives; it returns false when no event
// sources remain.
func (in *Interp) DoOneEvent(flags teek.EventFlags) bool {
	return C.Tcl_DoOneEvent(C.int(flags)) != 0
}

// Deleted reports whether the interpreter has been torn down.
func (in *Interp) Deleted() bool {
	if in.interp == nil {
		return true
	}
	return C.Tcl_InterpDeleted(in.interp) != 0
}

// Destroy deletes the interpreter. Registered command handles are
// released by Tcl's delete callbacks during interpreter teardown.
func (in *Interp) Destroy() {
	if in.interp == nil {
		return
	}
	C.Tcl_DeleteInterp(in.interp)
	in.interp = nil
}

// runCommand isolates the user callback so a panic becomes an error
// instead of unwinding through C frames.
func runCommand(state *commandState, args []string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.PhaseCommand, errors.KindInvalidInput).
				Detail("panic in command %q: %v", state.name, r).
				Build()
		}
	}()
	return state.fn(args)
}
