package style

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Progress prints the human-readable lines that narrate a run. A nil
// *Progress discards everything.
type Progress struct {
	out   io.Writer
	plain bool

	info    pterm.PrefixPrinter
	success pterm.PrefixPrinter
	warning pterm.PrefixPrinter
	failure pterm.PrefixPrinter
	command pterm.PrefixPrinter
}

// NewProgress returns a Progress writing to out. Output is decorated with
// pterm prefixes only when out is a colour-capable terminal.
func NewProgress(out io.Writer) *Progress {
	return &Progress{
		out:     out,
		plain:   !IsTerminal(out),
		info:    pterm.Info,
		success: pterm.Success,
		warning: pterm.Warning,
		failure: pterm.Error,
		command: pterm.PrefixPrinter{
			Prefix: pterm.Prefix{
				Text:  " $ ",
				Style: pterm.NewStyle(pterm.BgGray, pterm.FgLightWhite),
			},
			MessageStyle: pterm.NewStyle(pterm.FgGray),
		},
	}
}

// Discard returns a Progress that prints nothing.
func Discard() *Progress {
	return NewProgress(io.Discard)
}

// IsTerminal reports whether out is a terminal that accepts colour.
func IsTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok || termenv.EnvNoColor() {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// level picks the prefix printer of a line.
type level int

const (
	levelInfo level = iota
	levelSuccess
	levelWarning
	levelFailure
	levelCommand
)

func (p *Progress) printer(l level) pterm.PrefixPrinter {
	switch l {
	case levelSuccess:
		return p.success
	case levelWarning:
		return p.warning
	case levelFailure:
		return p.failure
	case levelCommand:
		return p.command
	default:
		return p.info
	}
}

func (p *Progress) print(l level, format string, args ...interface{}) {
	if p == nil || p.out == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if p.plain {
		_, _ = fmt.Fprintln(p.out, msg)
		return
	}
	printer := p.printer(l)
	_, _ = fmt.Fprint(p.out, printer.Sprintln(msg))
}

func (p *Progress) Checking(name, version string) {
	p.print(levelInfo, MsgChecking, name, version)
}

func (p *Progress) Satisfied(name, version string) {
	p.print(levelSuccess, MsgSatisfied, name, version)
}

func (p *Progress) NotSatisfied(name, version string) {
	p.print(levelWarning, MsgNotSatisfied, name, version)
}

func (p *Progress) InstallingDependencies(name, version string) {
	p.print(levelInfo, MsgInstallingDeps, name, version)
}

func (p *Progress) Dependency(ref string) {
	p.print(levelInfo, MsgDependency, ref)
}

func (p *Progress) DependencyDone(ref string) {
	p.print(levelSuccess, MsgDependencyDone, ref)
}

func (p *Progress) DependenciesFailed(name, version string) {
	p.print(levelFailure, MsgDependenciesFailed, name, version)
}

func (p *Progress) Downloading(url, dest string) {
	p.print(levelInfo, MsgDownloading, url, dest)
}

func (p *Progress) AlreadyDownloaded(url, dest string) {
	p.print(levelWarning, MsgAlreadyDownloaded, url, dest)
}

func (p *Progress) Installing(name, version string) {
	p.print(levelInfo, MsgInstalling, name, version)
}

func (p *Progress) Installed(name, version string) {
	p.print(levelSuccess, MsgInstalled, name, version)
}

func (p *Progress) InstallFailed(name, version string) {
	p.print(levelFailure, MsgInstallFailed, name, version)
}

func (p *Progress) RecipeFailed(name, version string) {
	p.print(levelFailure, MsgRecipeFailed, name, version)
}

// Command echoes a shell command line before it runs.
func (p *Progress) Command(line string) {
	p.print(levelCommand, "%s", line)
}
