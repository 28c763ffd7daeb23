package bridge

import (
	"fmt"
	"strings"

	"github.com/teekgo/teek"
	"github.com/teekgo/teek/errors"
)

// fakeInterp is a scriptable stand-in for the cgo interpreter. It
// understands just enough of wm/after/set/unset/trace/destroy to
// exercise the bridge, and serves canned results (or canned errors)
// for anything else.
type fakeInterp struct {
	calls    [][]string
	evals    []string
	results  map[string]string
	errs     map[string]error
	vars     map[string]string
	commands map[string]teek.CommandFunc
	afters   map[string]string
	afterSeq int
	deleted  bool
}

func newFakeInterp() *fakeInterp {
	return &fakeInterp{
		results:  make(map[string]string),
		errs:     make(map[string]error),
		vars:     make(map[string]string),
		commands: make(map[string]teek.CommandFunc),
		afters:   make(map[string]string),
	}
}

var _ teek.Interp = (*fakeInterp)(nil)

func (f *fakeInterp) Call(words ...string) (string, error) {
	f.calls = append(f.calls, words)
	if err, ok := f.errs[strings.Join(words, " ")]; ok {
		return "", err
	}
	switch words[0] {
	case "wm", "trace":
		return "", nil
	case "destroy":
		return "", nil
	case "after":
		if words[1] == "cancel" {
			delete(f.afters, words[2])
			return "", nil
		}
		f.afterSeq++
		id := fmt.Sprintf("after#%d", f.afterSeq)
		f.afters[id] = words[2]
		return id, nil
	case "set":
		if len(words) == 2 {
			return f.GetVar(words[1])
		}
		f.vars[words[1]] = words[2]
		return words[2], nil
	case "unset":
		return "", f.UnsetVar(words[1])
	}
	if r, ok := f.results[strings.Join(words, " ")]; ok {
		return r, nil
	}
	return "", nil
}

func (f *fakeInterp) Eval(code string) (string, error) {
	f.evals = append(f.evals, code)
	if r, ok := f.results[code]; ok {
		return r, nil
	}
	return "", nil
}

func (f *fakeInterp) CreateCommand(name string, fn teek.CommandFunc) error {
	if _, exists := f.commands[name]; exists {
		return errors.InvalidInput(errors.PhaseCommand, "command exists")
	}
	f.commands[name] = fn
	return nil
}

func (f *fakeInterp) DeleteCommand(name string) error {
	if _, exists := f.commands[name]; !exists {
		return errors.NotFound(errors.PhaseCommand, "command", name)
	}
	delete(f.commands, name)
	return nil
}

func (f *fakeInterp) GetVar(name string) (string, error) {
	v, ok := f.vars[name]
	if !ok {
		return "", errors.Tcl(errors.PhaseEval, `can't read "`+name+`": no such variable`)
	}
	return v, nil
}

func (f *fakeInterp) SetVar(name, value string) error {
	f.vars[name] = value
	return nil
}

func (f *fakeInterp) UnsetVar(name string) error {
	if _, ok := f.vars[name]; !ok {
		return errors.Tcl(errors.PhaseEval, `can't unset "`+name+`": no such variable`)
	}
	delete(f.vars, name)
	return nil
}

// DoOneEvent fires one scheduled after timer, oldest first.
func (f *fakeInterp) DoOneEvent(teek.EventFlags) bool {
	for i := 1; i <= f.afterSeq; i++ {
		id := fmt.Sprintf("after#%d", i)
		cmd, ok := f.afters[id]
		if !ok {
			continue
		}
		delete(f.afters, id)
		if fn, ok := f.commands[cmd]; ok {
			fn(nil)
		}
		return true
	}
	return false
}

func (f *fakeInterp) Deleted() bool { return f.deleted }

func (f *fakeInterp) Destroy() { f.deleted = true }

// fireAfter runs one specific scheduled timer by id.
func (f *fakeInterp) fireAfter(id string) bool {
	cmd, ok := f.afters[id]
	if !ok {
		return false
	}
	delete(f.afters, id)
	fn, ok := f.commands[cmd]
	if !ok {
		return false
	}
	fn(nil)
	return true
}

// lastCall returns the most recent Call words.
func (f *fakeInterp) lastCall() []string {
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}
