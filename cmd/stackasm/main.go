package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/classgen"
	"github.com/wippyai/classgen/assembly"
	"github.com/wippyai/classgen/descriptor"
	"github.com/wippyai/classgen/recipe"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	methodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	opStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func main() {
	var (
		recipeFile  = flag.String("recipe", "", "Path to a TOML recipe")
		output      = flag.String("o", "", "Write the assembled methods as CBOR to this file")
		showHex     = flag.Bool("hex", false, "Print the encoded code array of every method")
		maxStack    = flag.Int("max-stack", assembly.MaxStackLimit, "Operand stack limit")
		maxLocals   = flag.Int("max-locals", assembly.MaxLocalsLimit, "Local variable limit")
		verbose     = flag.Bool("v", false, "Log assembly steps to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *recipeFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: stackasm -recipe <file.toml> [-o out.cbor] [-hex] [-v]")
		fmt.Fprintln(os.Stderr, "       stackasm -recipe <file.toml> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = l.Sync() }()
		assembly.SetLogger(l.Named("assembly"))
		recipe.SetLogger(l.Named("recipe"))
	}

	cfg := assembly.DefaultConfig()
	cfg.MaxStack = *maxStack
	cfg.MaxLocals = *maxLocals

	if *interactive {
		if err := runInteractive(*recipeFile, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*recipeFile, cfg, *output, *showHex); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(recipeFile string, cfg *assembly.Config, output string, showHex bool) error {
	out, err := classgen.Build(recipeFile, cfg)
	if err != nil {
		return err
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	writeListing(os.Stdout, out.Plan.Type, out.Methods, styled, showHex)

	if output == "" {
		return nil
	}
	data, err := assembly.MarshalBundle(out.Bundle())
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Printf("\nWrote %d methods (%d bytes) to %s\n", len(out.Methods), len(data), output)
	return nil
}

func writeListing(w io.Writer, typ *descriptor.TypeDescription, methods []*assembly.Method, styled, showHex bool) {
	render := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	fmt.Fprintf(w, "%s %s\n", render(titleStyle, "Type"), typ)
	for _, m := range methods {
		fmt.Fprintf(w, "\n%s\n", methodHeader(m, render))
		fmt.Fprint(w, methodBody(m, render, showHex))
	}
}

func methodHeader(m *assembly.Method, render func(lipgloss.Style, string) string) string {
	d := m.Descriptor
	return fmt.Sprintf("%s%s  %s",
		render(methodStyle, d.Name()),
		render(typeStyle, d.Descriptor()),
		render(helpStyle, fmt.Sprintf("stack=%d locals=%d", m.MaxStack, m.MaxLocals)))
}

func methodBody(m *assembly.Method, render func(lipgloss.Style, string) string, showHex bool) string {
	var b strings.Builder
	for n, ins := range m.Instructions {
		fmt.Fprintf(&b, "  %3d: %s\n", n, render(opStyle, ins.String()))
	}
	if showHex && m.Code != nil {
		fmt.Fprintf(&b, "  code: % x\n", m.Code)
	}
	return b.String()
}
