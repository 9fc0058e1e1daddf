package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gdamore/tcell/v2"

	"github.com/kiselovlex/keye-interactive-grid/internal/config"
	"github.com/kiselovlex/keye-interactive-grid/internal/dataset"
	"github.com/kiselovlex/keye-interactive-grid/internal/grid"
	"github.com/kiselovlex/keye-interactive-grid/internal/logger"
	"github.com/kiselovlex/keye-interactive-grid/internal/session"
	"github.com/kiselovlex/keye-interactive-grid/internal/store"
)

// App is the top-level runtime for keyegrid.
type App struct {
	cfg       config.Config
	datasetID string
}

func New(cfg config.Config, datasetID string) *App {
	if datasetID == "" {
		datasetID = cfg.Grid.Dataset
	}
	return &App{cfg: cfg, datasetID: datasetID}
}

// OpenStore opens the configured SQLite store, defaulting to the XDG data
// directory when no path is configured.
func OpenStore(cfg config.Config) (store.Store, error) {
	path := cfg.Grid.Database
	if path == "" {
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			dataDir = filepath.Join(home, ".local", "share")
		}
		dir := filepath.Join(dataDir, "keyegrid")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "keyegrid.db")
	}
	return store.OpenSQLite(path)
}

// LoadDataset fetches id from st, seeding a demo dataset on first run.
func LoadDataset(ctx context.Context, st store.Store, id string) (*dataset.Dataset, error) {
	ds, err := st.FetchDataset(ctx, id)
	if err == nil {
		return ds, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	ds = demoDataset(id)
	if err := st.WriteDataset(ctx, id, ds.Sections); err != nil {
		return nil, err
	}
	logger.Info("seeded demo dataset", "id", id)
	return ds, nil
}

func (a *App) Run() error {
	runtime.LockOSThread()
	ctx := context.Background()

	st, err := OpenStore(a.cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ds, err := LoadDataset(ctx, st, a.datasetID)
	if err != nil {
		return err
	}
	stored, err := st.FetchAllCellMetadata(ctx)
	if err != nil {
		return err
	}

	g := grid.New(a.cfg, grid.NewModel(ds, stored), st)

	sm, err := session.NewManager()
	if err != nil {
		logger.Warn("session manager unavailable", "err", err)
		sm = nil
	} else {
		defer func() { _ = sm.Close() }()
		if vs, ok := sm.GetViewState(a.datasetID); ok {
			pos := dataset.Position{Row: vs.ActiveRow, Col: vs.ActiveCol}
			if g.Model().Contains(pos) {
				g.Selection().SelectCell(pos)
			}
			g.SetScroll(vs.Scroll)
		}
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.EnableMouse()
	defer s.Fini()

	g.Render(s)
	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if g.Edit() == nil && (ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyCtrlQ) {
				return nil
			}
			g.HandleKey(ev)
		case *tcell.EventMouse:
			g.HandleMouse(ev)
		case *tcell.EventResize:
			s.Sync()
		}
		if sm != nil {
			a.rememberView(sm, g)
		}
		g.Render(s)
	}
}

func (a *App) rememberView(sm *session.Manager, g *grid.Grid) {
	pos, ok := g.Selection().ActiveCell()
	if !ok {
		return
	}
	sm.SetViewState(a.datasetID, session.ViewState{
		ActiveRow: pos.Row,
		ActiveCol: pos.Col,
		Scroll:    g.Scroll(),
	})
}

func demoDataset(id string) *dataset.Dataset {
	products := []string{"Widgets", "Gadgets", "Gizmos", "Total"}
	values := []map[string]any{
		{"product": "Widgets", "2022": 12400.0, "2023": 14100.0, "2024": 16800.0},
		{"product": "Gadgets", "2022": 8800.0, "2023": 9300.0, "2024": 11050.0},
		{"product": "Gizmos", "2022": 4100.0, "2023": 5200.0, "2024": 4900.0},
		{"product": "Total", "2022": 25300.0, "2023": 28600.0, "2024": 32750.0},
	}
	growth := []map[string]any{
		{"product": "Widgets", "2023": 0.137, "2024": 0.191},
		{"product": "Gadgets", "2023": 0.057, "2024": 0.188},
		{"product": "Gizmos", "2023": 0.268, "2024": -0.058},
		{"product": "Total", "2023": 0.130, "2024": 0.145},
	}
	share := make([]map[string]any, 0, len(products))
	totals := map[string]float64{"2022": 25300, "2023": 28600, "2024": 32750}
	for _, item := range values {
		row := map[string]any{"product": item["product"]}
		for year, total := range totals {
			if v, ok := item[year].(float64); ok {
				row[year] = v / total
			}
		}
		share = append(share, row)
	}

	yearCols := func() []dataset.Column {
		return []dataset.Column{
			{Key: "product", Name: "Product"},
			{Key: "2022", Name: "2022"},
			{Key: "2023", Name: "2023"},
			{Key: "2024", Name: "2024"},
		}
	}
	growthCols := []dataset.Column{
		{Key: "product", Name: "Product"},
		{Key: "2023", Name: "YoY 2023"},
		{Key: "2024", Name: "YoY 2024"},
	}

	return &dataset.Dataset{
		ID: id,
		Sections: map[string]dataset.Section{
			dataset.SectionValues:         {Columns: yearCols(), Items: values},
			dataset.SectionYoYGrowth:      {Columns: growthCols, Items: growth},
			dataset.SectionPercentOfTotal: {Columns: yearCols(), Items: share},
		},
	}
}
