package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/levelgraph/pkg/graph"
)

func browseGraph(t *testing.T) *graph.Graph[string] {
	t.Helper()
	g, err := graph.FromSequences([][]string{
		{"fetch", "build", "test", "release"},
		{"lint", "test"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m browseModel, keys ...string) browseModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(browseModel)
	}
	return m
}

func TestBrowseModelRows(t *testing.T) {
	m, err := newBrowseModel(browseGraph(t))
	if err != nil {
		t.Fatal(err)
	}
	if m.levels != 4 {
		t.Errorf("levels = %d, want 4", m.levels)
	}
	var got []string
	for _, r := range m.rows {
		got = append(got, r.node.Value())
	}
	if strings.Join(got, " ") != "fetch build lint test release" {
		t.Errorf("rows = %v", got)
	}
}

func TestBrowseModelNavigation(t *testing.T) {
	m, _ := newBrowseModel(browseGraph(t))

	m = press(m, "up")
	if m.cursor != 0 {
		t.Errorf("cursor moved above first row: %d", m.cursor)
	}
	m = press(m, "down", "j", "down", "down", "down", "down")
	if m.cursor != len(m.rows)-1 {
		t.Errorf("cursor = %d, want clamp at %d", m.cursor, len(m.rows)-1)
	}
	m = press(m, "k")
	if m.rows[m.cursor].node.Value() != "test" {
		t.Errorf("selected %q, want test", m.rows[m.cursor].node.Value())
	}
}

func TestBrowseModelDetail(t *testing.T) {
	m, _ := newBrowseModel(browseGraph(t))
	m = press(m, "down", "down", "down") // test

	view := m.View()
	for _, want := range []string{"Levels (4)", "level 2", "immediate-precedents", "build", "lint"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m = press(m, "tab")
	if browseModes[m.mode] != "immediate-descendants" {
		t.Errorf("mode = %s after tab", browseModes[m.mode])
	}
	if !strings.Contains(m.detail(), "release") {
		t.Errorf("descendant detail missing release:\n%s", m.detail())
	}
}

func TestBrowseModelQuit(t *testing.T) {
	m, _ := newBrowseModel(browseGraph(t))
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestBrowseModelEmptyGraph(t *testing.T) {
	m, err := newBrowseModel(graph.New[string]())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(m.View(), "graph is empty") {
		t.Errorf("empty view = %q", m.View())
	}
}
