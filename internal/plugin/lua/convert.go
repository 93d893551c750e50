// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package lua

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

// ToLua converts a Go value into a Lua value. Unsupported types are
// rendered with fmt so nothing is silently dropped.
func ToLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return val
	case bool:
		return lua.LBool(val)
	case string:
		return lua.LString(val)
	case int:
		return lua.LNumber(val)
	case int32:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float32:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case []string:
		t := L.CreateTable(len(val), 0)
		for _, s := range val {
			t.Append(lua.LString(s))
		}
		return t
	case []any:
		t := L.CreateTable(len(val), 0)
		for _, item := range val {
			t.Append(ToLua(L, item))
		}
		return t
	case map[string]any:
		t := L.CreateTable(0, len(val))
		for k, item := range val {
			t.RawSetString(k, ToLua(L, item))
		}
		return t
	case pluginpkg.Args:
		return ToLua(L, map[string]any(val))
	case pluginpkg.View:
		return wrapView(L, val)
	case pluginpkg.Window:
		return wrapWindow(L, val)
	default:
		return lua.LString(fmt.Sprint(val))
	}
}

// FromLua converts a Lua value into plain Go data. Sequences become
// []any, other tables become map[string]any, and host handles unwrap to
// their Go values.
func FromLua(v lua.LValue) any {
	switch val := v.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(val)
	case lua.LString:
		return string(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case *lua.LTable:
		return tableFromLua(val)
	case *lua.LUserData:
		return val.Value
	default:
		return val.String()
	}
}

func tableFromLua(t *lua.LTable) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && n == count {
		out := make([]any, 0, n)
		for i := 1; i <= n; i++ {
			out = append(out, FromLua(t.RawGetInt(i)))
		}
		return out
	}

	out := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		out[k.String()] = FromLua(v)
	})
	return out
}

// ArgsFromLua converts a Lua table into command arguments.
// Non-table values yield empty arguments.
func ArgsFromLua(v lua.LValue) pluginpkg.Args {
	t, ok := v.(*lua.LTable)
	if !ok {
		return pluginpkg.Args{}
	}
	args := pluginpkg.Args{}
	t.ForEach(func(k, v lua.LValue) {
		args[k.String()] = FromLua(v)
	})
	return args
}

// SortedKeys returns the string keys of t in order. Non-string keys are skipped.
func SortedKeys(t *lua.LTable) []string {
	var keys []string
	t.ForEach(func(k, _ lua.LValue) {
		if s, ok := k.(lua.LString); ok {
			keys = append(keys, string(s))
		}
	})
	sort.Strings(keys)
	return keys
}
