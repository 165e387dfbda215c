// Package csvstore persists the demo datasets as CSV snapshots on disk and
// serves the in-memory copy to the rest of the application. The dataset is
// replaced wholesale on refresh; readers always see a consistent snapshot.
package csvstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/datagen"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
)

// ErrMissingDataset signals that no dataset has been loaded or generated yet.
var ErrMissingDataset = errors.New("no dataset loaded")

const (
	inventoryFile  = "inventory_data.csv"
	machineryFile  = "machinery_data.csv"
	demandFile     = "demand_history.csv"
	operationsFile = "operations_data.csv"
)

var (
	inventoryHeader  = []string{"product_id", "product_name", "current_stock", "safety_stock", "unit", "unit_cost", "lead_time_days"}
	machineryHeader  = []string{"machine_id", "machine_name", "temperature", "vibration", "operational_hours", "production_rate", "last_maintenance"}
	demandHeader     = []string{"date", "product_id", "demand"}
	operationsHeader = []string{"area", "utilization", "productivity_score", "downtime_hours", "efficiency_rate", "throughput"}
)

// timeLayouts are accepted when parsing timestamps out of snapshots. Files
// written by this package use RFC3339; the other layouts keep hand-edited
// snapshots loadable.
var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// Store owns the active dataset and its on-disk CSV snapshot.
type Store struct {
	dir      string
	seed     int64
	autosave bool
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.RWMutex
	dataset *models.Dataset
}

// New builds a store rooted at dir. The dataset is empty until LoadOrGenerate
// or Refresh runs.
func New(dir string, seed int64, autosave bool, logger *zap.Logger) *Store {
	return &Store{
		dir:      dir,
		seed:     seed,
		autosave: autosave,
		logger:   logger,
		now:      time.Now,
	}
}

// LoadOrGenerate loads the four CSV snapshots from disk. When any of them is
// missing or unreadable it falls back to generating fresh demo data, so the
// service always starts with a complete dataset.
func (s *Store) LoadOrGenerate() *models.Dataset {
	ds, err := s.load()
	if err != nil {
		s.logger.Warn("loading csv snapshot failed, regenerating demo data",
			zap.String("dir", s.dir),
			zap.Int64("seed", s.seed),
			zap.Error(err))
		ds = datagen.Generate(s.seed, s.now())
		if s.autosave {
			if err := s.save(ds); err != nil {
				s.logger.Warn("saving regenerated dataset failed", zap.Error(err))
			}
		}
	} else {
		s.logger.Info("loaded dataset from csv snapshot",
			zap.String("dir", s.dir),
			zap.Int("inventory_items", len(ds.Inventory)),
			zap.Int("machines", len(ds.Machines)),
			zap.Int("demand_records", len(ds.Demand)))
	}

	s.mu.Lock()
	s.dataset = ds
	s.mu.Unlock()
	return ds
}

// Dataset returns the active dataset snapshot. Callers must treat it as
// read-only.
func (s *Store) Dataset() *models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// Refresh regenerates the demo data with the given seed and swaps it in
// atomically. A seed of zero reuses the store's configured seed.
func (s *Store) Refresh(seed int64) *models.Dataset {
	if seed == 0 {
		seed = s.seed
	}
	ds := datagen.Generate(seed, s.now())

	s.mu.Lock()
	s.dataset = ds
	s.mu.Unlock()

	s.logger.Info("dataset refreshed", zap.Int64("seed", seed))
	if s.autosave {
		if err := s.save(ds); err != nil {
			s.logger.Warn("saving refreshed dataset failed", zap.Error(err))
		}
	}
	return ds
}

// Save persists the active dataset to the four CSV snapshot files, creating
// the data directory when needed.
func (s *Store) Save() error {
	ds := s.Dataset()
	if ds == nil {
		return ErrMissingDataset
	}
	return s.save(ds)
}

func (s *Store) load() (*models.Dataset, error) {
	inventory, err := s.loadInventory()
	if err != nil {
		return nil, err
	}
	machines, err := s.loadMachinery()
	if err != nil {
		return nil, err
	}
	demand, err := s.loadDemand()
	if err != nil {
		return nil, err
	}
	operations, err := s.loadOperations()
	if err != nil {
		return nil, err
	}

	return &models.Dataset{
		Inventory:   inventory,
		Machines:    machines,
		Operations:  operations,
		Demand:      demand,
		GeneratedAt: s.now(),
		Seed:        s.seed,
	}, nil
}

func (s *Store) loadInventory() ([]models.InventoryItem, error) {
	rows, err := s.readFile(inventoryFile, inventoryHeader)
	if err != nil {
		return nil, err
	}

	items := make([]models.InventoryItem, 0, len(rows))
	for i, row := range rows {
		productID, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, rowErr(inventoryFile, i, "product_id", err)
		}
		currentStock, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, rowErr(inventoryFile, i, "current_stock", err)
		}
		safetyStock, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, rowErr(inventoryFile, i, "safety_stock", err)
		}
		unitCost, err := decimal.NewFromString(row[5])
		if err != nil {
			return nil, rowErr(inventoryFile, i, "unit_cost", err)
		}
		leadTime, err := strconv.Atoi(row[6])
		if err != nil {
			return nil, rowErr(inventoryFile, i, "lead_time_days", err)
		}

		items = append(items, models.InventoryItem{
			ProductID:    productID,
			ProductName:  row[1],
			CurrentStock: currentStock,
			SafetyStock:  safetyStock,
			Unit:         row[4],
			UnitCost:     unitCost,
			LeadTimeDays: leadTime,
		})
	}
	return items, nil
}

func (s *Store) loadMachinery() ([]models.Machine, error) {
	rows, err := s.readFile(machineryFile, machineryHeader)
	if err != nil {
		return nil, err
	}

	machines := make([]models.Machine, 0, len(rows))
	for i, row := range rows {
		machineID, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, rowErr(machineryFile, i, "machine_id", err)
		}
		temperature, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, rowErr(machineryFile, i, "temperature", err)
		}
		vibration, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, rowErr(machineryFile, i, "vibration", err)
		}
		hours, err := strconv.Atoi(row[4])
		if err != nil {
			return nil, rowErr(machineryFile, i, "operational_hours", err)
		}
		rate, err := strconv.Atoi(row[5])
		if err != nil {
			return nil, rowErr(machineryFile, i, "production_rate", err)
		}
		lastMaintenance, err := parseTime(row[6])
		if err != nil {
			return nil, rowErr(machineryFile, i, "last_maintenance", err)
		}

		machines = append(machines, models.Machine{
			MachineID:        machineID,
			MachineName:      row[1],
			Temperature:      temperature,
			Vibration:        vibration,
			OperationalHours: hours,
			ProductionRate:   rate,
			LastMaintenance:  lastMaintenance,
		})
	}
	return machines, nil
}

func (s *Store) loadDemand() ([]models.DemandRecord, error) {
	rows, err := s.readFile(demandFile, demandHeader)
	if err != nil {
		return nil, err
	}

	records := make([]models.DemandRecord, 0, len(rows))
	for i, row := range rows {
		date, err := parseTime(row[0])
		if err != nil {
			return nil, rowErr(demandFile, i, "date", err)
		}
		productID, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, rowErr(demandFile, i, "product_id", err)
		}
		demand, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, rowErr(demandFile, i, "demand", err)
		}

		records = append(records, models.DemandRecord{
			Date:      date,
			ProductID: productID,
			Demand:    demand,
		})
	}
	return records, nil
}

func (s *Store) loadOperations() ([]models.OperationsArea, error) {
	rows, err := s.readFile(operationsFile, operationsHeader)
	if err != nil {
		return nil, err
	}

	areas := make([]models.OperationsArea, 0, len(rows))
	for i, row := range rows {
		utilization, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, rowErr(operationsFile, i, "utilization", err)
		}
		productivity, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, rowErr(operationsFile, i, "productivity_score", err)
		}
		downtime, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, rowErr(operationsFile, i, "downtime_hours", err)
		}
		efficiency, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, rowErr(operationsFile, i, "efficiency_rate", err)
		}
		throughput, err := strconv.Atoi(row[5])
		if err != nil {
			return nil, rowErr(operationsFile, i, "throughput", err)
		}

		areas = append(areas, models.OperationsArea{
			Area:              row[0],
			Utilization:       utilization,
			ProductivityScore: productivity,
			DowntimeHours:     downtime,
			EfficiencyRate:    efficiency,
			Throughput:        throughput,
		})
	}
	return areas, nil
}

// readFile reads a CSV snapshot and validates its header before returning the
// data rows.
func (s *Store) readFile(name string, wantHeader []string) ([][]string, error) {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(wantHeader)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: file is empty", path)
	}

	header := records[0]
	for i, want := range wantHeader {
		if header[i] != want {
			return nil, fmt.Errorf("read %s: unexpected header column %d: got %q, want %q", path, i, header[i], want)
		}
	}
	return records[1:], nil
}

func (s *Store) save(ds *models.Dataset) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", s.dir, err)
	}

	if err := s.writeFile(inventoryFile, inventoryHeader, inventoryRows(ds.Inventory)); err != nil {
		return err
	}
	if err := s.writeFile(machineryFile, machineryHeader, machineryRows(ds.Machines)); err != nil {
		return err
	}
	if err := s.writeFile(demandFile, demandHeader, demandRows(ds.Demand)); err != nil {
		return err
	}
	if err := s.writeFile(operationsFile, operationsHeader, operationsRows(ds.Operations)); err != nil {
		return err
	}

	s.logger.Info("dataset snapshot saved", zap.String("dir", s.dir))
	return nil
}

func (s *Store) writeFile(name string, header []string, rows [][]string) error {
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

func inventoryRows(items []models.InventoryItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.Itoa(item.ProductID),
			item.ProductName,
			strconv.Itoa(item.CurrentStock),
			strconv.Itoa(item.SafetyStock),
			item.Unit,
			item.UnitCost.StringFixed(2),
			strconv.Itoa(item.LeadTimeDays),
		})
	}
	return rows
}

func machineryRows(machines []models.Machine) [][]string {
	rows := make([][]string, 0, len(machines))
	for _, m := range machines {
		rows = append(rows, []string{
			strconv.Itoa(m.MachineID),
			m.MachineName,
			formatFloat(m.Temperature),
			formatFloat(m.Vibration),
			strconv.Itoa(m.OperationalHours),
			strconv.Itoa(m.ProductionRate),
			m.LastMaintenance.Format(time.RFC3339),
		})
	}
	return rows
}

func demandRows(records []models.DemandRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Date.Format("2006-01-02"),
			strconv.Itoa(rec.ProductID),
			strconv.Itoa(rec.Demand),
		})
	}
	return rows
}

func operationsRows(areas []models.OperationsArea) [][]string {
	rows := make([][]string, 0, len(areas))
	for _, a := range areas {
		rows = append(rows, []string{
			a.Area,
			formatFloat(a.Utilization),
			formatFloat(a.ProductivityScore),
			formatFloat(a.DowntimeHours),
			formatFloat(a.EfficiencyRate),
			strconv.Itoa(a.Throughput),
		})
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func rowErr(file string, row int, column string, err error) error {
	return fmt.Errorf("%s row %d: parse %s: %w", file, row+1, column, err)
}
