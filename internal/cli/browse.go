package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/notewerk/blocktree/pkg/block"
	"github.com/notewerk/blocktree/pkg/source"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command for interactive exploration.
func (c *CLI) browseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [file|dir]",
		Short: "Interactively explore a document's block tree",
		Long: `Browse opens an interactive view of a document's block tree.

Given a graph JSON file, it opens the tree browser directly. Given a
directory, it first shows a document picker.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			return c.runBrowse(cmd.Context(), target)
		},
	}
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, target string) error {
	if strings.HasSuffix(target, ".json") {
		g, err := block.ReadGraphFile(target)
		if err != nil {
			return err
		}
		return c.browseTree(ctx, g, findRoot(g))
	}

	src, err := source.NewFileSource(target)
	if err != nil {
		return err
	}

	sp := newSpinner(ctx, "Loading documents")
	sp.Start()
	entries, err := loadDocEntries(ctx, src)
	sp.Stop()
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if len(entries) == 0 {
		printInfo("No documents found in %s", target)
		return nil
	}

	model := NewDocListModel(entries)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	m, ok := final.(DocListModel)
	if !ok || m.Selected == nil {
		return nil
	}

	g, err := src.Load(ctx, m.Selected.ID)
	if err != nil {
		return err
	}
	rootID := m.Selected.ID
	if _, ok := g.Block(rootID); !ok {
		rootID = findRoot(g)
	}
	return c.browseTree(ctx, g, rootID)
}

func (c *CLI) browseTree(ctx context.Context, g block.Graph, rootID string) error {
	if rootID == "" {
		return fmt.Errorf("no parentless block found to root the tree")
	}
	_, err := tea.NewProgram(NewBlockTreeModel(g, rootID), tea.WithContext(ctx)).Run()
	return err
}

// docEntry describes one document in the browse list.
type docEntry struct {
	ID     string
	Title  string
	Blocks int
}

// loadDocEntries reads every document once to show titles and sizes.
func loadDocEntries(ctx context.Context, src source.Source) ([]docEntry, error) {
	ids, err := src.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]docEntry, 0, len(ids))
	for _, id := range ids {
		entry := docEntry{ID: id, Title: "—"}
		if g, err := src.Load(ctx, id); err == nil {
			entry.Blocks = len(g)
			rootID := id
			if _, ok := g.Block(rootID); !ok {
				rootID = findRoot(g)
			}
			if root, ok := g.Block(rootID); ok {
				if title := root.Title().TextContent(); title != "" {
					entry.Title = title
				}
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// =============================================================================
// DocListModel - Interactive document selection
// =============================================================================

// DocListModel is the bubbletea model for interactive document selection.
type DocListModel struct {
	Docs     []docEntry
	Cursor   int
	Selected *docEntry
	Height   int
	Offset   int
}

// NewDocListModel creates a new document list model.
func NewDocListModel(docs []docEntry) DocListModel {
	return DocListModel{
		Docs:   docs,
		Height: 15,
	}
}

func (m DocListModel) Init() tea.Cmd {
	return nil
}

func (m DocListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Docs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			doc := m.Docs[m.Cursor]
			m.Selected = &doc
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DocListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Document"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Docs) {
		end = len(m.Docs)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		d := m.Docs[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, d.ID, d.Title, fmt.Sprintf("%d", d.Blocks)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Document", "Title", "Blocks").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(m.Docs) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if actualIdx == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			if col == 3 {
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Docs))))

	return b.String()
}

// =============================================================================
// BlockTreeModel - Interactive block tree browsing
// =============================================================================

// treeRow is one visible line of the tree.
type treeRow struct {
	id    string
	depth int
	kids  bool
}

// BlockTreeModel is the bubbletea model for browsing a block tree with
// expand/collapse navigation.
type BlockTreeModel struct {
	Graph    block.Graph
	RootID   string
	Expanded map[string]bool
	Cursor   int
	Height   int
	Offset   int

	rows []treeRow
}

// NewBlockTreeModel creates a tree model with the root expanded.
func NewBlockTreeModel(g block.Graph, rootID string) BlockTreeModel {
	m := BlockTreeModel{
		Graph:    g,
		RootID:   rootID,
		Expanded: map[string]bool{rootID: true},
		Height:   20,
	}
	m.rows = m.flatten()
	return m
}

// flatten computes the visible rows, descending only into expanded
// blocks. A visited set keeps cyclic graphs from looping.
func (m BlockTreeModel) flatten() []treeRow {
	var rows []treeRow
	visited := map[string]bool{}

	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		b, ok := m.Graph.Block(id)
		if !ok || visited[id] {
			return
		}
		visited[id] = true
		rows = append(rows, treeRow{id: id, depth: depth, kids: len(b.ContentIDs) > 0})
		if m.Expanded[id] {
			for _, childID := range b.ContentIDs {
				walk(childID, depth+1)
			}
		}
	}
	walk(m.RootID, 0)
	return rows
}

func (m BlockTreeModel) Init() tea.Cmd {
	return nil
}

func (m BlockTreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "right", "l":
			if row := m.current(); row != nil && row.kids {
				m.Expanded[row.id] = true
				m.rows = m.flatten()
			}
		case "left", "h":
			if row := m.current(); row != nil && m.Expanded[row.id] {
				delete(m.Expanded, row.id)
				m.rows = m.flatten()
			}
		case "enter", " ":
			if row := m.current(); row != nil && row.kids {
				if m.Expanded[row.id] {
					delete(m.Expanded, row.id)
				} else {
					m.Expanded[row.id] = true
				}
				m.rows = m.flatten()
				if m.Cursor >= len(m.rows) {
					m.Cursor = len(m.rows) - 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 5
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m *BlockTreeModel) current() *treeRow {
	if m.Cursor < 0 || m.Cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.Cursor]
}

func (m BlockTreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Block Tree"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  →/← expand/collapse  ⏎ toggle  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.Offset; i < end; i++ {
		row := m.rows[i]
		blk, _ := m.Graph.Block(row.id)

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		marker := "· "
		if row.kids {
			if m.Expanded[row.id] {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}

		line := cursor + strings.Repeat("  ", row.depth) + marker +
			string(blk.Type) + " " + treeLabel(blk)

		if i == m.Cursor {
			b.WriteString(lipgloss.NewStyle().Foreground(colorGreen).Bold(true).Render(line))
		} else {
			b.WriteString(StyleValue.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))

	return b.String()
}

// treeLabel builds a short title preview for one block.
func treeLabel(b *block.Block) string {
	title := b.Title().TextContent()
	if title == "" {
		return StyleDim.Render(b.ID)
	}
	runes := []rune(title)
	if len(runes) > 40 {
		title = string(runes[:40]) + "…"
	}
	return StyleDim.Render(title)
}
