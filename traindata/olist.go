package traindata

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/sbwhitecap/tqdm"
	"github.com/sbwhitecap/tqdm/iterators"
)

// Olist export tables the transform consumes.
const (
	OrdersCSV = "olist_orders_dataset.csv"
	ItemsCSV  = "olist_order_items_dataset.csv"
)

// DefaultOlistDirs is the ordered list of directories probed for the Olist
// export when no explicit input directory is given.
var DefaultOlistDirs = []string{
	"olist_data",
	filepath.Join("data", "olist_data"),
	filepath.Join("..", "olist_data"),
}

// FindOlistDir returns the first directory in dirs containing the orders
// table.
func FindOlistDir(dirs []string) (string, bool) {
	for _, dir := range dirs {
		if _, err := os.Stat(filepath.Join(dir, OrdersCSV)); err == nil {
			return dir, true
		}
	}
	return "", false
}

// TransformOptions control the Olist transform.
type TransformOptions struct {
	// MaxSamples caps the emitted samples, MaxRealSamples if unset.
	MaxSamples int
	// Seed drives the simulated workflow fields.
	Seed int64
}

// olistOrder and olistItem pick out the columns we use from the Olist
// exports, gocsv ignores the rest. Timestamps stay as strings since the
// export mixes full timestamps with bare dates.
type olistOrder struct {
	OrderID   string `csv:"order_id"`
	Status    string `csv:"order_status"`
	Purchase  string `csv:"order_purchase_timestamp"`
	Delivered string `csv:"order_delivered_customer_date"`
	Estimated string `csv:"order_estimated_delivery_date"`
}

type olistItem struct {
	OrderID  string `csv:"order_id"`
	SellerID string `csv:"seller_id"`
}

// TransformOlist converts the Olist orders and items tables in dir into
// delay training samples. Only delivered orders with parseable purchase,
// delivery and estimate timestamps are kept, at most opts.MaxSamples of
// them, in table order. Workflow fields with no Olist counterpart (priority,
// staff workload, candidate count, channel) are simulated from opts.Seed, so
// the same directory and seed always produce the same dataset.
func TransformOlist(dir string, opts TransformOptions) ([]Sample, error) {
	if opts.MaxSamples <= 0 {
		opts.MaxSamples = MaxRealSamples
	}

	quantities, sellers, err := scanItems(filepath.Join(dir, ItemsCSV))
	if err != nil {
		return nil, err
	}
	orders, err := readOrders(filepath.Join(dir, OrdersCSV))
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	var samples []Sample
	err = tqdm.With(iterators.Interval(0, len(orders)), "Scanning orders", func(v interface{}) (brk bool) {
		row := orders[v.(int)]
		if row.Status != "delivered" {
			return
		}
		delivered, ok := parseOlistDate(row.Delivered)
		if !ok {
			return
		}
		estimated, ok := parseOlistDate(row.Estimated)
		if !ok {
			return
		}
		purchase, ok := parseOlistDate(row.Purchase)
		if !ok {
			return
		}

		quantity := quantities[row.OrderID]
		if quantity < 1 {
			quantity = 1
		}
		if quantity > maxQuantity {
			quantity = maxQuantity
		}

		delayed := 0
		if delivered.After(estimated) {
			delayed = 1
		}

		hours := estimated.Sub(purchase).Hours()
		if hours < minWindowHours {
			hours = minWindowHours
		}
		if hours > maxWindowHours {
			hours = maxWindowHours
		}

		priority := rng.Intn(4)

		// each seller routes through a separate fulfillment queue, so
		// the simulated workload grows with the distinct seller count
		load := float64(len(sellers[row.OrderID]))*1.5 + rng.Float64()*2
		if load > maxStaffLoad {
			load = maxStaffLoad
		}

		samples = append(samples, Sample{
			Quantity:      quantity,
			Priority:      priority,
			TimeHours:     round2(hours),
			HasDeadline:   1,
			StaffWorkload: round1(load),
			NumTasks:      fixedNumTasks,
			NumCandidates: 1 + rng.Intn(3),
			Channel:       rng.Intn(2),
			Delayed:       delayed,
		})
		return len(samples) >= opts.MaxSamples
	})
	if err != nil {
		return nil, err
	}
	return samples, nil
}

func readOrders(path string) ([]olistOrder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening orders table")
	}
	defer f.Close()

	var orders []olistOrder
	if err := gocsv.UnmarshalFile(f, &orders); err != nil {
		return nil, errors.Wrapf(err, "error parsing %s", path)
	}
	return orders, nil
}

// scanItems aggregates the order items table into per-order item counts and
// distinct seller sets.
func scanItems(path string) (map[string]int, map[string]map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "error opening order items table")
	}
	defer f.Close()

	var items []olistItem
	if err := gocsv.UnmarshalFile(f, &items); err != nil {
		return nil, nil, errors.Wrapf(err, "error parsing %s", path)
	}

	quantities := make(map[string]int)
	sellers := make(map[string]map[string]bool)
	for _, it := range items {
		oid := strings.TrimSpace(it.OrderID)
		if oid == "" {
			continue
		}
		quantities[oid]++
		sid := strings.TrimSpace(it.SellerID)
		if sid == "" {
			continue
		}
		set := sellers[oid]
		if set == nil {
			set = make(map[string]bool)
			sellers[oid] = set
		}
		set[sid] = true
	}
	return quantities, sellers, nil
}

const (
	olistTimestampLayout = "2006-01-02 15:04:05"
	olistDateLayout      = "2006-01-02"
)

// parseOlistDate parses an Olist timestamp. Values that are not full
// timestamps are retried as bare dates after truncating to the date prefix,
// anything else counts as missing and the row is dropped.
func parseOlistDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(olistTimestampLayout, s); err == nil {
		return t, true
	}
	if len(s) > len(olistDateLayout) {
		s = s[:len(olistDateLayout)]
	}
	t, err := time.Parse(olistDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
