// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	lua "github.com/yuin/gopher-lua"

	"github.com/quillhost/quill/internal/command"
	"github.com/quillhost/quill/internal/editor"
	"github.com/quillhost/quill/internal/event"
	"github.com/quillhost/quill/internal/plugin"
	"github.com/quillhost/quill/pkg/errutil"
	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

var _ = Describe("Sample plugins", func() {
	var (
		ctx        context.Context
		core       *plugin.Core
		commands   *command.Registry
		dispatcher *command.Dispatcher
		ed         *editor.Editor
		reports    []plugin.Report
	)

	BeforeEach(func() {
		ctx = context.Background()
		root, err := filepath.Abs(filepath.Join("..", "..", "plugins"))
		Expect(err).NotTo(HaveOccurred())

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		events := event.NewRegistry(event.WithLogger(logger))
		commands = command.NewRegistry(command.WithRegistryLogger(logger))
		dispatcher, err = command.NewDispatcher(commands, command.WithLogger(logger))
		Expect(err).NotTo(HaveOccurred())

		core, err = plugin.Open(ctx, plugin.Config{
			Paths:    []string{root},
			Commands: commands,
			Events:   events,
			Logger:   logger,
		})
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(core.Close)

		ed = editor.New(events, editor.WithLogger(logger))
		reports = core.Registrar.Scan(ctx)
	})

	run := func(input string, target pluginpkg.Target) error {
		return dispatcher.Dispatch(ctx, input, target)
	}

	It("loads every sample without failures", func() {
		modules := make([]string, 0, len(reports))
		for _, r := range reports {
			Expect(r.Error()).NotTo(HaveOccurred(), "module %s", r.Module)
			modules = append(modules, r.Module)
		}
		Expect(modules).To(ConsistOf("greeter", "text.case", "text.trim"))
	})

	It("registers each command under its kind", func() {
		kinds := map[string]pluginpkg.Kind{}
		for _, e := range commands.All() {
			kinds[e.Name] = e.Kind
		}
		Expect(kinds).To(Equal(map[string]pluginpkg.Kind{
			"CountViews":   pluginpkg.KindWindowCommand,
			"LowerCase":    pluginpkg.KindTextCommand,
			"Reload":       pluginpkg.KindApplicationCommand,
			"TrimTrailing": pluginpkg.KindTextCommand,
			"UpperCase":    pluginpkg.KindTextCommand,
		}))

		entry, ok := commands.Get("UpperCase")
		Expect(ok).To(BeTrue())
		Expect(entry.Source).To(Equal("text.case"))
	})

	It("does not register the imported helper module", func() {
		Expect(core.Registrar.Registered("text.util")).To(BeFalse())
		_, loaded := core.Loader.Lookup("text.util")
		Expect(loaded).To(BeTrue())
	})

	Describe("the greeter listener", func() {
		It("greets new files", func() {
			v := ed.NewWindow().NewFile()
			Expect(v.Text()).To(Equal("-- new file\n"))
		})

		It("counts loaded files", func() {
			w := ed.NewWindow()
			w.Open("a.txt", "")
			w.Open("b.txt", "")

			m, ok := core.Loader.Lookup("greeter")
			Expect(ok).To(BeTrue())
			Expect(m.Table.RawGetString("loaded")).To(Equal(lua.LNumber(2)))
		})

		It("is subscribed to exactly the hooks it defines", func() {
			listeners := core.Registrar.Listeners()
			Expect(listeners).To(HaveLen(1))
			Expect(listeners[0].Hooks).To(Equal([]string{event.HookNew, event.HookLoad}))
		})
	})

	Describe("text commands", func() {
		It("transforms the target view", func() {
			w := ed.NewWindow()
			v := w.Open("doc.txt", "Mixed Case  \nline two\t\n")
			target := pluginpkg.Target{Window: w, View: v}

			Expect(run("UpperCase", target)).To(Succeed())
			Expect(v.Text()).To(Equal("MIXED CASE  \nLINE TWO\t\n"))

			Expect(run("TrimTrailing", target)).To(Succeed())
			Expect(v.Text()).To(Equal("MIXED CASE\nLINE TWO\n"))

			Expect(run("LowerCase", target)).To(Succeed())
			Expect(v.Text()).To(Equal("mixed case\nline two\n"))
			Expect(v.Modified()).To(BeTrue())
		})

		It("refuses to run without a view", func() {
			err := run("UpperCase", pluginpkg.Target{Window: ed.NewWindow()})
			errutil.AssertErrorCode(GinkgoT(), err, plugin.CodeMissingTarget)
		})

		It("honours is_enabled", func() {
			w := ed.NewWindow()
			v := w.Open("empty.txt", "")
			err := run("LowerCase", pluginpkg.Target{Window: w, View: v})
			Expect(errutil.HasCode(err, command.CodeCommandDisabled)).To(BeTrue())
		})
	})

	Describe("application commands", func() {
		It("reloads an already registered plugin as a no-op", func() {
			Expect(run("Reload name=greeter", pluginpkg.Target{})).To(Succeed())
			Expect(core.Registrar.Listeners()).To(HaveLen(1))
		})

		It("reports a reload failure as a command failure", func() {
			err := run("Reload name=nope", pluginpkg.Target{})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("nope"))
		})
	})

	It("runs window commands against the window", func() {
		w := ed.NewWindow()
		w.NewFile()
		Expect(run("CountViews", pluginpkg.Target{Window: w})).To(Succeed())
	})
})
