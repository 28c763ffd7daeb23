package interp

// The preamble here carries declarations only; cgo forbids definitions
// in files with //export directives. The trampolines that route Tcl
// into these functions live in interp.go.

/*
#include <stdint.h>
#include <stdlib.h>
#include <tcl.h>
*/
import "C"

import (
	runtimecgo "runtime/cgo"
	"unsafe"

	"go.uber.org/zap"
)

//export teekCommandProc
func teekCommandProc(handle C.uintptr_t, cin *C.Tcl_Interp, objc C.int, objv **C.Tcl_Obj) C.int {
	state := runtimecgo.Handle(handle).Value().(*commandState)

	args := make([]string, 0, int(objc)-1)
	for _, obj := range unsafe.Slice(objv, int(objc))[1:] {
		args = append(args, C.GoString(C.Tcl_GetString(obj)))
	}

	result, err := runCommand(state, args)
	if err != nil {
		Logger().Error("tcl command failed",
			zap.String("command", state.name),
			zap.Error(err))
		result = ""
	}

	cresult := C.CString(result)
	obj := C.Tcl_NewStringObj(cresult, C.int(len(result)))
	C.free(unsafe.Pointer(cresult))
	C.Tcl_SetObjResult(cin, obj)
	return C.TCL_OK
}

//export teekCommandDeleteProc
func teekCommandDeleteProc(handle C.uintptr_t) {
	h := runtimecgo.Handle(handle)
	state := h.Value().(*commandState)
	delete(state.in.commands, state.name)
	h.Delete()
}
