// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package lua

import (
	"context"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"

	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

// Raw fields marking class tables.
const (
	fieldClass   = "__class"
	fieldBases   = "__bases"
	fieldBuiltin = "__builtin"
	fieldKind    = "__kind"
)

// Names of the base classes exposed on the quill table.
const (
	BaseCommand            = "Command"
	BaseApplicationCommand = "ApplicationCommand"
	BaseWindowCommand      = "WindowCommand"
	BaseTextCommand        = "TextCommand"
	BaseEventListener      = "EventListener"
)

func (rt *Runtime) installClasses() {
	L := rt.L

	rt.classMeta = L.NewTable()
	rt.classMeta.RawSetString("__index", L.NewFunction(rt.classIndex))
	rt.newFn = L.NewFunction(rt.construct)
	rt.classMeta.RawSetString("__call", rt.newFn)

	truth := L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LTrue)
		return 1
	})

	rt.command = rt.builtin(BaseCommand, 0)
	rt.command.RawSetString("is_enabled", truth)
	rt.command.RawSetString("is_visible", truth)

	rt.builtin(BaseApplicationCommand, pluginpkg.KindApplicationCommand, rt.command)
	window := rt.builtin(BaseWindowCommand, pluginpkg.KindWindowCommand, rt.command)
	window.RawSetString("init", L.NewFunction(storeField("window")))
	text := rt.builtin(BaseTextCommand, pluginpkg.KindTextCommand, rt.command)
	text.RawSetString("init", L.NewFunction(storeField("view")))
	rt.builtin(BaseEventListener, pluginpkg.KindEventListener)

	rt.api.RawSetString("class", L.NewFunction(rt.luaClass))
	rt.api.RawSetString("isclass", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(IsClass(L.Get(1))))
		return 1
	}))
	rt.api.RawSetString("issubclass", L.NewFunction(func(L *lua.LState) int {
		cls := L.CheckTable(1)
		base := L.CheckTable(2)
		L.Push(lua.LBool(IsSubclass(cls, base)))
		return 1
	}))
}

// builtin creates a base class, registers it on the quill table and records its kind.
func (rt *Runtime) builtin(name string, kind pluginpkg.Kind, bases ...*lua.LTable) *lua.LTable {
	cls := rt.NewClass(bases...)
	cls.RawSetString(fieldBuiltin, lua.LTrue)
	cls.RawSetString(FieldName, lua.LString(name))
	if kind != 0 {
		cls.RawSetString(fieldKind, lua.LString(kind.String()))
		rt.bases[kind] = cls
		rt.kinds[cls] = kind
	}
	rt.api.RawSetString(name, cls)
	return cls
}

func storeField(field string) lua.LGFunction {
	return func(L *lua.LState) int {
		self := L.CheckTable(1)
		self.RawSetString(field, L.Get(2))
		return 0
	}
}

// NewClass returns a class table inheriting from bases in order.
func (rt *Runtime) NewClass(bases ...*lua.LTable) *lua.LTable {
	cls := rt.L.NewTable()
	list := rt.L.NewTable()
	for _, b := range bases {
		list.Append(b)
	}
	cls.RawSetString(fieldClass, lua.LTrue)
	cls.RawSetString(fieldBases, list)
	cls.RawSetString("__index", cls)
	rt.L.SetMetatable(cls, rt.classMeta)
	return cls
}

// BaseClass returns the builtin class for kind.
func (rt *Runtime) BaseClass(kind pluginpkg.Kind) (*lua.LTable, bool) {
	cls, ok := rt.bases[kind]
	return cls, ok
}

// ClassKinds returns the extension kinds cls reaches through its bases,
// in depth-first order without duplicates.
func (rt *Runtime) ClassKinds(cls *lua.LTable) []pluginpkg.Kind {
	var kinds []pluginpkg.Kind
	seen := make(map[*lua.LTable]bool)
	var walk func(t *lua.LTable)
	walk = func(t *lua.LTable) {
		if seen[t] {
			return
		}
		seen[t] = true
		if k, ok := rt.kinds[t]; ok {
			kinds = append(kinds, k)
		}
		for _, b := range bases(t) {
			walk(b)
		}
	}
	walk(cls)
	return dedupe(kinds)
}

func dedupe(kinds []pluginpkg.Kind) []pluginpkg.Kind {
	out := kinds[:0]
	seen := make(map[pluginpkg.Kind]bool, len(kinds))
	for _, k := range kinds {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// New instantiates cls, passing args to its init method.
func (rt *Runtime) New(ctx context.Context, cls *lua.LTable, args ...lua.LValue) (*lua.LTable, error) {
	rets, err := rt.Call(ctx, rt.newFn, 1, append([]lua.LValue{cls}, args...)...)
	if err != nil {
		return nil, err
	}
	obj, ok := rets[0].(*lua.LTable)
	if !ok {
		return nil, oops.In("lua").Errorf("constructor returned %s", rets[0].Type())
	}
	return obj, nil
}

// IsClass reports whether v is a table built by quill.class.
func IsClass(v lua.LValue) bool {
	t, ok := v.(*lua.LTable)
	return ok && t.RawGetString(fieldClass) == lua.LTrue
}

// IsBuiltin reports whether cls is one of the runtime's base classes.
func IsBuiltin(cls *lua.LTable) bool {
	return cls.RawGetString(fieldBuiltin) == lua.LTrue
}

// IsSubclass reports whether cls is base or inherits from it.
func IsSubclass(cls, base *lua.LTable) bool {
	if cls == base {
		return true
	}
	for _, b := range bases(cls) {
		if IsSubclass(b, base) {
			return true
		}
	}
	return false
}

func bases(cls *lua.LTable) []*lua.LTable {
	list, ok := cls.RawGetString(fieldBases).(*lua.LTable)
	if !ok {
		return nil
	}
	out := make([]*lua.LTable, 0, list.Len())
	list.ForEach(func(_, v lua.LValue) {
		if t, ok := v.(*lua.LTable); ok {
			out = append(out, t)
		}
	})
	return out
}

// classIndex resolves a missing class field by searching bases depth first.
func (rt *Runtime) classIndex(L *lua.LState) int {
	cls := L.CheckTable(1)
	key := L.Get(2)
	for _, b := range bases(cls) {
		if v := L.GetTable(b, key); v != lua.LNil {
			L.Push(v)
			return 1
		}
	}
	L.Push(lua.LNil)
	return 1
}

// construct backs calling a class: cls(...) creates an instance and runs init.
func (rt *Runtime) construct(L *lua.LState) int {
	cls := L.CheckTable(1)
	if !IsClass(cls) {
		L.ArgError(1, "class expected")
		return 0
	}
	obj := L.NewTable()
	L.SetMetatable(obj, cls)

	if init, ok := L.GetField(cls, "init").(*lua.LFunction); ok {
		top := L.GetTop()
		L.Push(init)
		L.Push(obj)
		for i := 2; i <= top; i++ {
			L.Push(L.Get(i))
		}
		L.Call(top, 0)
	}

	L.Push(obj)
	return 1
}

// luaClass implements quill.class(base, ...).
func (rt *Runtime) luaClass(L *lua.LState) int {
	top := L.GetTop()
	list := make([]*lua.LTable, 0, top)
	for i := 1; i <= top; i++ {
		v := L.Get(i)
		if !IsClass(v) {
			L.ArgError(i, "class expected, got "+v.Type().String())
			return 0
		}
		list = append(list, v.(*lua.LTable))
	}
	L.Push(rt.NewClass(list...))
	return 1
}
