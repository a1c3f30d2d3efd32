package tui

import (
	"fmt"
	"strconv"
	"strings"

	"taskdeck-cli/internal/collection"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// listState binds one collection controller to its table widget, page
// indicator and loading spinner. It owns no business state of its own: sort
// and pagination live in the controller, the widgets mirror it.
type listState[T any] struct {
	ctrl *collection.Controller[T]
	idOf func(T) string
	row  func(T) table.Row

	tbl   table.Model
	pager paginator.Model
	spin  spinner.Model

	loading bool
	errText string
	width   int
	height  int
}

func newListState[T any](ctrl *collection.Controller[T], idOf func(T) string, row func(T) table.Row) *listState[T] {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	pg := paginator.New()
	pg.Type = paginator.Dots
	pg.ActiveDot = lipgloss.NewStyle().Foreground(colorSelectedFg).Render("•")
	pg.InactiveDot = styleMuted().Render("•")

	ls := &listState[T]{
		ctrl:  ctrl,
		idOf:  idOf,
		row:   row,
		pager: pg,
		spin:  sp,
	}
	ls.tbl = table.New(
		table.WithColumns(ls.columns(80)),
		table.WithFocused(true),
		table.WithHeight(collection.DefaultPageSize),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.Bold(true).Foreground(colorChromeMutedFg)
	st.Selected = st.Selected.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	ls.tbl.SetStyles(st)
	return ls
}

// columns derives table columns from the controller's field declarations,
// decorating the active sort column with a direction marker.
func (ls *listState[T]) columns(width int) []table.Column {
	fields := ls.ctrl.Fields()
	if len(fields) == 0 {
		return nil
	}
	per := width / len(fields)
	if per < 8 {
		per = 8
	}
	sortState := ls.ctrl.Sort()
	cols := make([]table.Column, 0, len(fields))
	for i, f := range fields {
		title := fmt.Sprintf("%d %s", i+1, f.Label)
		if f.Key == sortState.Key {
			if sortState.Dir == collection.Asc {
				title += " ↑"
			} else {
				title += " ↓"
			}
		}
		cols = append(cols, table.Column{Title: title, Width: per - 2})
	}
	return cols
}

// refresh re-derives rows, columns, height and the page indicator from the
// controller. Call after any controller mutation.
func (ls *listState[T]) refresh() {
	slice := ls.ctrl.Slice()
	rows := make([]table.Row, 0, len(slice))
	for _, it := range slice {
		rows = append(rows, ls.row(it))
	}
	w := ls.width
	if w <= 0 {
		w = 80
	}
	ls.tbl.SetColumns(ls.columns(w))
	ls.tbl.SetRows(rows)
	ls.tbl.SetHeight(ls.ctrl.PerPage() + 1)
	if cur := ls.tbl.Cursor(); cur >= len(rows) && len(rows) > 0 {
		ls.tbl.SetCursor(len(rows) - 1)
	}

	ls.pager.TotalPages = ls.ctrl.TotalPages()
	ls.pager.Page = ls.ctrl.Page() - 1
}

func (ls *listState[T]) resize(width, height int) {
	ls.width = width
	ls.height = height
	ls.tbl.SetWidth(width)
	ls.refresh()
}

// selected returns the item under the cursor.
func (ls *listState[T]) selected() (T, bool) {
	var zero T
	slice := ls.ctrl.Slice()
	cur := ls.tbl.Cursor()
	if cur < 0 || cur >= len(slice) {
		return zero, false
	}
	return slice[cur], true
}

// startLoad begins a fetch for the list and returns the command that runs
// it. makeMsg wraps the result into the resource's typed message.
func startLoad[T any](ls *listState[T], makeMsg func(target *collection.Controller[T], gen uint64, items []T, err error) tea.Msg) tea.Cmd {
	gen, run := ls.ctrl.StartLoad(loadContext())
	ls.loading = true
	ls.errText = ""
	ctrl := ls.ctrl
	return tea.Batch(ls.spin.Tick, func() tea.Msg {
		items, err := run()
		return makeMsg(ctrl, gen, items, err)
	})
}

// finishLoad applies a fetch result; stale generations are dropped by the
// controller and leave the widgets untouched.
func (ls *listState[T]) finishLoad(gen uint64, items []T, err error) {
	if !ls.ctrl.Apply(gen, items, err) {
		return
	}
	ls.loading = false
	if err != nil {
		ls.errText = err.Error()
	}
	ls.refresh()
}

// handleKey consumes the list-control keys: digits re-sort, brackets page,
// "p" cycles the page size. Everything else falls through to the table for
// cursor movement.
func (ls *listState[T]) handleKey(key string) bool {
	switch key {
	case "[":
		ls.ctrl.SetPage(ls.ctrl.Page() - 1)
		ls.refresh()
		return true
	case "]":
		ls.ctrl.SetPage(ls.ctrl.Page() + 1)
		ls.refresh()
		return true
	case "p":
		ls.cyclePerPage()
		return true
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(ls.ctrl.Fields()) {
		ls.ctrl.SortBy(ls.ctrl.Fields()[n-1].Key)
		ls.refresh()
		return true
	}
	return false
}

func (ls *listState[T]) cyclePerPage() {
	sizes := collection.PageSizes
	cur := ls.ctrl.PerPage()
	next := sizes[0]
	for i, s := range sizes {
		if s == cur {
			next = sizes[(i+1)%len(sizes)]
			break
		}
	}
	ls.ctrl.SetPerPage(next)
	ls.refresh()
}

func (ls *listState[T]) update(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case spinner.TickMsg:
		if !ls.loading {
			return nil
		}
		var cmd tea.Cmd
		ls.spin, cmd = ls.spin.Update(msg)
		return cmd
	default:
		var cmd tea.Cmd
		ls.tbl, cmd = ls.tbl.Update(msg)
		return cmd
	}
}

// render draws the list body: title with item count, the table or a
// loading/error line, and the pagination footer.
func (ls *listState[T]) render(title string) string {
	head := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%s (%d)", title, ls.ctrl.Len()))

	var body string
	switch {
	case ls.loading:
		body = ls.spin.View() + " loading..."
	case ls.errText != "":
		body = styleError().Render(ls.errText)
	case ls.ctrl.Len() == 0:
		body = styleMuted().Render("Nothing here yet.")
	default:
		body = ls.tbl.View()
	}

	footer := fmt.Sprintf("%s  page %d/%d  per-page %d",
		ls.pager.View(), ls.ctrl.Page(), ls.ctrl.TotalPages(), ls.ctrl.PerPage())
	return strings.Join([]string{head, body, styleMuted().Render(footer)}, "\n\n")
}
