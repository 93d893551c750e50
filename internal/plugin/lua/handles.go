// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

// Userdata type names for host handles.
const (
	viewTypeName   = "quill.View"
	windowTypeName = "quill.Window"
)

func (rt *Runtime) installHandles() {
	L := rt.L

	viewMeta := L.NewTypeMetatable(viewTypeName)
	L.SetField(viewMeta, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"id":        viewID,
		"file_name": viewFileName,
		"size":      viewSize,
		"substr":    viewSubstr,
		"insert":    viewInsert,
		"erase":     viewErase,
	}))
	L.SetField(viewMeta, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(fmt.Sprintf("View(%s)", checkView(L, 1).ID())))
		return 1
	}))
	L.SetField(viewMeta, "__eq", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(checkView(L, 1).ID() == checkView(L, 2).ID()))
		return 1
	}))

	windowMeta := L.NewTypeMetatable(windowTypeName)
	L.SetField(windowMeta, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"id":          windowID,
		"active_view": windowActiveView,
		"views":       windowViews,
	}))
	L.SetField(windowMeta, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(fmt.Sprintf("Window(%s)", checkWindow(L, 1).ID())))
		return 1
	}))
	L.SetField(windowMeta, "__eq", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(checkWindow(L, 1).ID() == checkWindow(L, 2).ID()))
		return 1
	}))
}

// WrapView returns a Lua handle for v, or nil when v is nil.
func (rt *Runtime) WrapView(v pluginpkg.View) lua.LValue {
	return wrapView(rt.L, v)
}

// WrapWindow returns a Lua handle for w, or nil when w is nil.
func (rt *Runtime) WrapWindow(w pluginpkg.Window) lua.LValue {
	return wrapWindow(rt.L, w)
}

// UnwrapView returns the view behind a handle created by WrapView.
func UnwrapView(v lua.LValue) (pluginpkg.View, bool) {
	ud, ok := v.(*lua.LUserData)
	if !ok {
		return nil, false
	}
	view, ok := ud.Value.(pluginpkg.View)
	return view, ok
}

// UnwrapWindow returns the window behind a handle created by WrapWindow.
func UnwrapWindow(v lua.LValue) (pluginpkg.Window, bool) {
	ud, ok := v.(*lua.LUserData)
	if !ok {
		return nil, false
	}
	w, ok := ud.Value.(pluginpkg.Window)
	return w, ok
}

func wrapView(L *lua.LState, v pluginpkg.View) lua.LValue {
	if v == nil {
		return lua.LNil
	}
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(viewTypeName))
	return ud
}

func wrapWindow(L *lua.LState, w pluginpkg.Window) lua.LValue {
	if w == nil {
		return lua.LNil
	}
	ud := L.NewUserData()
	ud.Value = w
	L.SetMetatable(ud, L.GetTypeMetatable(windowTypeName))
	return ud
}

func checkView(L *lua.LState, n int) pluginpkg.View {
	ud := L.CheckUserData(n)
	if v, ok := ud.Value.(pluginpkg.View); ok {
		return v
	}
	L.ArgError(n, "view expected")
	return nil
}

func checkWindow(L *lua.LState, n int) pluginpkg.Window {
	ud := L.CheckUserData(n)
	if w, ok := ud.Value.(pluginpkg.Window); ok {
		return w
	}
	L.ArgError(n, "window expected")
	return nil
}

func viewID(L *lua.LState) int {
	L.Push(lua.LString(checkView(L, 1).ID()))
	return 1
}

func viewFileName(L *lua.LState) int {
	name := checkView(L, 1).FileName()
	if name == "" {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(name))
	return 1
}

func viewSize(L *lua.LState) int {
	L.Push(lua.LNumber(checkView(L, 1).Size()))
	return 1
}

func viewSubstr(L *lua.LState) int {
	v := checkView(L, 1)
	start := L.CheckInt(2)
	end := L.OptInt(3, v.Size())
	L.Push(lua.LString(v.Substr(start, end)))
	return 1
}

func viewInsert(L *lua.LState) int {
	v := checkView(L, 1)
	n, err := v.Insert(L.CheckInt(2), L.CheckString(3))
	if err != nil {
		L.RaiseError("insert: %s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(n))
	return 1
}

func viewErase(L *lua.LState) int {
	v := checkView(L, 1)
	if err := v.Erase(L.CheckInt(2), L.CheckInt(3)); err != nil {
		L.RaiseError("erase: %s", err.Error())
	}
	return 0
}

func windowID(L *lua.LState) int {
	L.Push(lua.LString(checkWindow(L, 1).ID()))
	return 1
}

func windowActiveView(L *lua.LState) int {
	L.Push(wrapView(L, checkWindow(L, 1).ActiveView()))
	return 1
}

func windowViews(L *lua.LState) int {
	views := checkWindow(L, 1).Views()
	t := L.CreateTable(len(views), 0)
	for _, v := range views {
		t.Append(wrapView(L, v))
	}
	L.Push(t)
	return 1
}
