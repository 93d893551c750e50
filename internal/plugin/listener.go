// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package plugin

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/quillhost/quill/internal/event"
	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

// ListenerBinding is an instantiated event listener and the hooks it was
// subscribed for. Hooks and Subscriptions are parallel slices.
type ListenerBinding struct {
	Module        string
	Name          string
	Instance      *lua.LTable
	Hooks         []string
	Subscriptions []event.Subscription
}

// bindListener instantiates cls with no arguments and subscribes each hook
// method it has, including inherited ones. Hooks are looked up once here;
// methods added to the class afterwards are not picked up.
func (r *Registrar) bindListener(ctx context.Context, moduleName, name string, cls *lua.LTable) (*ListenerBinding, error) {
	obj, err := r.rt.New(ctx, cls)
	if err != nil {
		return nil, err
	}

	b := &ListenerBinding{Module: moduleName, Name: name, Instance: obj}
	for _, hook := range event.Hooks() {
		fn, ok := r.rt.Method(obj, hook)
		if !ok {
			continue
		}
		ch, ok := r.events.Channel(hook)
		if !ok {
			continue
		}
		sub := ch.Subscribe(r.hookObserver(obj, fn))
		b.Hooks = append(b.Hooks, hook)
		b.Subscriptions = append(b.Subscriptions, sub)
	}
	return b, nil
}

// hookObserver calls fn(obj, view) when the channel fires.
func (r *Registrar) hookObserver(obj *lua.LTable, fn *lua.LFunction) event.Observer[pluginpkg.View] {
	return func(view pluginpkg.View) error {
		_, err := r.rt.Call(context.Background(), fn, 0, obj, r.rt.WrapView(view))
		return err
	}
}
