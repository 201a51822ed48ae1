package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gridview/internal/config"
	"gridview/internal/db"
	"gridview/table"
)

var (
	flagDSN    string
	flagQuery  string
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:   "gridview [file.csv]",
	Short: "Sortable, scrollable table viewer",
	Long: `gridview displays tabular data in an interactive terminal table:
click a column header to sort (click again to reverse), move the pointer
to highlight rows, scroll with the mouse wheel.

Data comes from a CSV file (first record is the header), from a
PostgreSQL query (--dsn with --query), or from built-in sample data when
neither is given. When stdout is not a terminal the table is printed
plainly instead.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flagDSN, "dsn", "", "PostgreSQL connection URI")
	rootCmd.Flags().StringVar(&flagQuery, "query", "", "query to display (requires --dsn)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "appearance config file (TOML)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	var (
		cols []table.Column
		rows [][]string
	)
	switch {
	case flagDSN != "":
		cols, rows, err = queryData(cmd.Context(), flagDSN, flagQuery)
	case len(args) == 1:
		cols, rows, err = csvData(args[0])
	default:
		cols, rows = sampleData()
	}
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		names := make([]string, len(cols))
		for i, c := range cols {
			names[i] = c.Name
		}
		fmt.Print(table.Plain(names, rows))
		return nil
	}

	grid, err := table.New(cols, rows, table.WithStyles(cfg.Styles()))
	if err != nil {
		return err
	}

	p := tea.NewProgram(appModel{grid: grid},
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if a, ok := final.(appModel); ok && a.err != nil {
		return a.err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Data sources
// ---------------------------------------------------------------------------

func queryData(ctx context.Context, dsn, query string) ([]table.Column, [][]string, error) {
	if query == "" {
		return nil, nil, fmt.Errorf("--dsn requires --query")
	}
	conn, err := db.Connect(dsn)
	if err != nil {
		return nil, nil, err
	}
	defer conn.Close()

	res, err := conn.Query(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	cols := make([]table.Column, len(res.Columns))
	for i, name := range res.Columns {
		kind := table.Text
		if db.NumericType(res.ColumnTypes[i]) {
			kind = table.Numeric
		}
		cols[i] = table.Column{Name: name, Kind: kind}
	}
	return cols, res.Rows, nil
}

func csvData(path string) ([]table.Column, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: empty file, expected a header record", path)
	}

	header := records[0]
	rows := records[1:]
	cols := make([]table.Column, len(header))
	for i, name := range header {
		cols[i] = table.Column{Name: name, Kind: inferKind(rows, i)}
	}
	return cols, rows, nil
}

// inferKind declares a CSV column Numeric only when every value in it
// parses as a number. Sorting never has to guess from a sample.
func inferKind(rows [][]string, col int) table.Kind {
	if len(rows) == 0 {
		return table.Text
	}
	for _, row := range rows {
		if col >= len(row) {
			return table.Text
		}
		if _, err := strconv.ParseFloat(row[col], 64); err != nil {
			return table.Text
		}
	}
	return table.Numeric
}

func sampleData() ([]table.Column, [][]string) {
	cols := []table.Column{
		{Name: "Name", Kind: table.Text},
		{Name: "Language", Kind: table.Text},
		{Name: "Stars", Kind: table.Numeric},
		{Name: "Open Issues", Kind: table.Numeric},
	}
	rows := [][]string{
		{"linux", "C", "180000", "345"},
		{"kubernetes", "Go", "108000", "1892"},
		{"rust", "Rust", "95000", "9214"},
		{"cpython", "Python", "61000", "7031"},
		{"postgres", "C", "15800", "0"},
		{"redis", "C", "66000", "2104"},
		{"git", "C", "51000", "96"},
		{"sqlite", "C", "6800", "12"},
	}
	return cols, rows
}

// ---------------------------------------------------------------------------
// App model
// ---------------------------------------------------------------------------

type keyMap struct {
	Quit key.Binding
}

var appKeys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// appModel is the host program: it hands every event to the grid widget
// and owns the keys the widget deliberately has none of.
type appModel struct {
	grid *table.Model
	err  error
}

func (a appModel) Init() tea.Cmd { return nil }

func (a appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, appKeys.Quit) {
			return a, tea.Quit
		}
		return a, nil
	case table.SortErrorMsg:
		// A failed sort is fatal here; nothing to recover mid-session.
		a.err = msg.Err
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.grid, cmd = a.grid.Update(msg)
	return a, cmd
}

func (a appModel) View() string {
	return a.grid.View()
}
