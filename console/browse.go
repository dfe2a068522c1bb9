package console

import (
	"fmt"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/nrawrx3/jamdeck/table"
)

type browser struct {
	tbl    *table.Table
	list   *widgets.List
	detail *widgets.Paragraph
	grid   *ui.Grid
}

func listRows(tbl *table.Table) []string {
	rows := make([]string, 0, tbl.Count())
	for id := 0; id < tbl.Count(); id++ {
		best, err := tbl.BestKnownSolutionSize(id)
		if err != nil {
			rows = append(rows, fmt.Sprintf("%5d  ?", id))
			continue
		}
		rows = append(rows, fmt.Sprintf("%5d  %3d", id, best))
	}
	return rows
}

func (b *browser) initWidgetObjects() {
	b.list = widgets.NewList()
	b.list.Title = fmt.Sprintf("Configurations (%d)", b.tbl.Count())
	b.list.Rows = listRows(b.tbl)
	b.list.SelectedRowStyle = ui.NewStyle(ui.ColorYellow)
	b.list.WrapText = false

	b.detail = widgets.NewParagraph()
	b.detail.Title = "Deck"
	b.updateDetail()
}

func (b *browser) updateDetail() {
	if b.tbl.Count() == 0 {
		b.detail.Text = "empty table"
		return
	}
	text, err := describeConfiguration(b.tbl, b.list.SelectedRow)
	if err != nil {
		text = err.Error()
	}
	b.detail.Text = text
}

// Browse shows the table full screen until q or Ctrl-C is pressed.
func Browse(tbl *table.Table) error {
	if err := ui.Init(); err != nil {
		return fmt.Errorf("failed to initialize termui: %w", err)
	}
	defer ui.Close()

	b := &browser{tbl: tbl}
	b.initWidgetObjects()

	b.grid = ui.NewGrid()
	termWidth, termHeight := ui.TerminalDimensions()
	b.grid.SetRect(0, 0, termWidth, termHeight)
	b.grid.Set(
		ui.NewRow(1.0,
			ui.NewCol(0.25, b.list),
			ui.NewCol(0.75, b.detail)),
	)
	ui.Render(b.grid)

	for e := range ui.PollEvents() {
		switch e.ID {
		case "q", "<C-c>":
			return nil
		case "j", "<Down>":
			b.list.ScrollDown()
		case "k", "<Up>":
			b.list.ScrollUp()
		case "<PageDown>":
			b.list.ScrollPageDown()
		case "<PageUp>":
			b.list.ScrollPageUp()
		case "g", "<Home>":
			b.list.ScrollTop()
		case "G", "<End>":
			b.list.ScrollBottom()
		case "<Resize>":
			payload := e.Payload.(ui.Resize)
			b.grid.SetRect(0, 0, payload.Width, payload.Height)
			ui.Clear()
		}
		b.updateDetail()
		ui.Render(b.grid)
	}
	return nil
}
