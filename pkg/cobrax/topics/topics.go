// Package topics adds file-backed help topics to a Cobra application.
// Topics are read from an fs.FS, usually an embedded directory, and shown
// with "<app> help <topic>".
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// ListKeyword lists every topic when passed to help.
const ListKeyword = "topics"

// Topic is one help document.
type Topic struct {
	Name    string
	Format  string // file extension, ".md" or ".txt"
	Content string
}

// Options configures a Manager.
type Options struct {
	// Extensions considered topics. Defaults to .txt and .md.
	Extensions []string

	// Renderer defaults to PlainRenderer.
	Renderer Renderer
}

// Manager holds the topics of one application.
type Manager struct {
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// Load reads every topic file under dir in fsys.
func Load(fsys fs.FS, dir string, opts Options) (*Manager, error) {
	m := &Manager{
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}

	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := path.Ext(p)
		if !m.supported(ext) {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{Name: name, Format: ext, Content: string(content)}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}
	return m, nil
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Get returns the topic called name. A leading "-" or "--" is ignored so
// flags can have topics of their own.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	t, ok := m.topics[name]
	return t, ok
}

// Names returns the sorted topic names.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the topic formatted by the manager's renderer.
func (m *Manager) Render(name string) (string, bool) {
	t, ok := m.Get(name)
	if !ok {
		return "", false
	}
	return m.renderer.Render(t.Content, t.Format), true
}

// Print writes the list of topics to w.
func (m *Manager) Print(w io.Writer, app string) {
	names := m.Names()
	if len(names) == 0 {
		_, _ = fmt.Fprintln(w, "No help topics available.")
		return
	}
	_, _ = fmt.Fprintln(w, "Available help topics:")
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "  %s\n", name)
	}
	_, _ = fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", app)
}

// Install replaces the help command of root with one that also knows about
// the manager's topics.
func (m *Manager) Install(root *cobra.Command) {
	original := root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Type ` + root.Name() + ` help [command or topic] for full details.

To see all available help topics:
  ` + root.Name() + ` help ` + ListKeyword,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{ListKeyword}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				original(root, args)
				return
			}
			if args[0] == ListKeyword {
				m.Print(cmd.OutOrStdout(), root.Name())
				return
			}
			if rendered, ok := m.Render(args[0]); ok {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), rendered)
				return
			}
			target, _, err := root.Find(args)
			if err != nil || target == nil {
				original(root, args)
				return
			}
			original(target, args)
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)
}
