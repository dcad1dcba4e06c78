package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"

	"merchant-insights/model"
)

var log = logging.MustGetLogger("log")

const timestampLayout = "2006-01-02 15:04:05"

const (
	transactionsFile = "transaction_data.csv"
	lineItemsFile    = "transaction_items.csv"
	itemsFile        = "items.csv"
	merchantsFile    = "merchant.csv"
)

// LoadDataset reads the four source tables from dir and returns the immutable
// snapshot the analyzer is constructed over. Optional columns (stock_level,
// promotion_id, discount_amount) are detected from the headers and recorded
// as capability flags. Malformed rows are logged and skipped, never fatal.
func LoadDataset(dir string) (*model.Dataset, error) {
	ds := &model.Dataset{}

	if err := loadTransactions(filepath.Join(dir, transactionsFile), ds); err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	if err := loadLineItems(filepath.Join(dir, lineItemsFile), ds); err != nil {
		return nil, fmt.Errorf("loading transaction items: %w", err)
	}
	if err := loadItems(filepath.Join(dir, itemsFile), ds); err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	if err := loadMerchants(filepath.Join(dir, merchantsFile), ds); err != nil {
		return nil, fmt.Errorf("loading merchants: %w", err)
	}

	log.Infof("Loaded dataset: %d transactions, %d line items, %d items, %d merchants",
		len(ds.Transactions), len(ds.LineItems), len(ds.Items), len(ds.Merchants))
	return ds, nil
}

type table struct {
	header []string
	rows   [][]string
}

// col returns the index of name in the header, or -1 when the column is
// absent.
func (t *table) col(name string) int {
	for i, h := range t.header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func readTable(path string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
	}

	return &table{header: header, rows: rows}, nil
}

func loadTransactions(path string, ds *model.Dataset) error {
	t, err := readTable(path)
	if err != nil {
		return err
	}

	orderID := t.col("order_id")
	merchantID := t.col("merchant_id")
	orderTime := t.col("order_time")
	orderValue := t.col("order_value")
	promotionID := t.col("promotion_id")
	discount := t.col("discount_amount")

	if orderID == -1 || merchantID == -1 || orderTime == -1 || orderValue == -1 {
		return fmt.Errorf("missing required transaction columns in %s", path)
	}

	ds.HasPromotionID = promotionID != -1
	ds.HasDiscount = discount != -1

	for _, row := range t.rows {
		ts, err := time.Parse(timestampLayout, strings.TrimSpace(row[orderTime]))
		if err != nil {
			log.Warningf("Skipping transaction %s: bad order_time %q", row[orderID], row[orderTime])
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row[orderValue]), 64)
		if err != nil || value < 0 {
			log.Warningf("Skipping transaction %s: bad order_value %q", row[orderID], row[orderValue])
			continue
		}

		tx := model.Transaction{
			OrderID:    row[orderID],
			MerchantID: row[merchantID],
			OrderTime:  ts,
			OrderValue: value,
		}
		if promotionID != -1 {
			if p := strings.TrimSpace(row[promotionID]); p != "" {
				tx.PromotionID = &p
			}
		}
		if discount != -1 {
			if d, err := strconv.ParseFloat(strings.TrimSpace(row[discount]), 64); err == nil {
				tx.DiscountAmount = &d
			}
		}
		ds.Transactions = append(ds.Transactions, tx)
	}
	return nil
}

func loadLineItems(path string, ds *model.Dataset) error {
	t, err := readTable(path)
	if err != nil {
		return err
	}

	orderID := t.col("order_id")
	itemID := t.col("item_id")
	quantity := t.col("quantity")
	itemPrice := t.col("item_price")

	if orderID == -1 || itemID == -1 {
		return fmt.Errorf("missing required line item columns in %s", path)
	}

	for _, row := range t.rows {
		id, err := strconv.Atoi(strings.TrimSpace(row[itemID]))
		if err != nil {
			log.Warningf("Skipping line item for order %s: bad item_id %q", row[orderID], row[itemID])
			continue
		}

		li := model.LineItem{
			OrderID:  row[orderID],
			ItemID:   id,
			Quantity: 1,
		}
		if quantity != -1 {
			if q, err := strconv.Atoi(strings.TrimSpace(row[quantity])); err == nil && q > 0 {
				li.Quantity = q
			}
		}
		if itemPrice != -1 {
			if p, err := strconv.ParseFloat(strings.TrimSpace(row[itemPrice]), 64); err == nil {
				li.ItemPrice = p
			}
		}
		ds.LineItems = append(ds.LineItems, li)
	}
	return nil
}

func loadItems(path string, ds *model.Dataset) error {
	t, err := readTable(path)
	if err != nil {
		return err
	}

	itemID := t.col("item_id")
	itemName := t.col("item_name")
	cuisineTag := t.col("cuisine_tag")
	basePrice := t.col("item_price")
	if basePrice == -1 {
		basePrice = t.col("price")
	}
	stockLevel := t.col("stock_level")

	if itemID == -1 || itemName == -1 {
		return fmt.Errorf("missing required item columns in %s", path)
	}

	ds.HasStockLevel = stockLevel != -1

	for _, row := range t.rows {
		id, err := strconv.Atoi(strings.TrimSpace(row[itemID]))
		if err != nil {
			log.Warningf("Skipping item %q: bad item_id %q", row[itemName], row[itemID])
			continue
		}

		item := model.Item{
			ItemID:   id,
			ItemName: row[itemName],
		}
		if cuisineTag != -1 {
			item.CuisineTag = row[cuisineTag]
		}
		if basePrice != -1 {
			if p, err := strconv.ParseFloat(strings.TrimSpace(row[basePrice]), 64); err == nil {
				item.BasePrice = p
			}
		}
		if stockLevel != -1 {
			if s, err := strconv.Atoi(strings.TrimSpace(row[stockLevel])); err == nil {
				item.StockLevel = &s
			}
		}
		ds.Items = append(ds.Items, item)
	}
	return nil
}

func loadMerchants(path string, ds *model.Dataset) error {
	t, err := readTable(path)
	if err != nil {
		return err
	}

	merchantID := t.col("merchant_id")
	merchantName := t.col("merchant_name")
	merchantType := t.col("merchant_type")
	businessSize := t.col("business_size")

	if merchantID == -1 {
		return fmt.Errorf("missing required merchant columns in %s", path)
	}

	for _, row := range t.rows {
		m := model.Merchant{MerchantID: row[merchantID]}
		if merchantName != -1 {
			m.MerchantName = row[merchantName]
		}
		if merchantType != -1 {
			m.MerchantType = row[merchantType]
		}
		if businessSize != -1 {
			m.BusinessSize = row[businessSize]
		}
		ds.Merchants = append(ds.Merchants, m)
	}
	return nil
}
