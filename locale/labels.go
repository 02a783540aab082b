package locale

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

type label struct {
	en, bn string
}

var builtinLabels = map[string]label{
	"active":          {"Active", "সক্রিয়"},
	"shipped":         {"Shipped", "পাঠানো হয়েছে"},
	"delivered":       {"Delivered", "ডেলিভারি হয়েছে"},
	"cancelled":       {"Cancelled", "বাতিল"},
	"insideDhaka":     {"Inside Dhaka", "ঢাকার ভিতরে"},
	"outsideDhaka":    {"Outside Dhaka", "ঢাকার বাইরে"},
	"invoice":         {"Invoice", "চালান"},
	"order_number":    {"Order No.", "অর্ডার নং"},
	"date":            {"Date", "তারিখ"},
	"customer":        {"Customer", "গ্রাহক"},
	"phone":           {"Phone", "ফোন"},
	"address":         {"Address", "ঠিকানা"},
	"note":            {"Note", "নোট"},
	"product":         {"Product", "পণ্য"},
	"quantity":        {"Qty", "পরিমাণ"},
	"price":           {"Price", "মূল্য"},
	"line_total":      {"Total", "মোট"},
	"sub_total":       {"Subtotal", "উপমোট"},
	"delivery_charge": {"Delivery charge", "ডেলিভারি চার্জ"},
	"grand_total":     {"Grand total", "সর্বমোট"},
	"payment_method":  {"Payment", "পেমেন্ট"},
	"status":          {"Status", "অবস্থা"},
	"thank_you":       {"Thank you for shopping with us", "আমাদের সাথে কেনাকাটার জন্য ধন্যবাদ"},
}

var (
	overrides map[string]label
	labelsMu  sync.RWMutex
)

// LoadLabelsFile reads label overrides from a code,en,bn CSV. A UTF-8 BOM is tolerated
// and a header row starting with "code" is skipped. The overrides replace any loaded before.
func LoadLabelsFile(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("LoadLabelsFile: open %s: %w", path, err)
	}
	defer file.Close()

	m, err := readLabels(file)
	if err != nil {
		return 0, fmt.Errorf("LoadLabelsFile: read %s: %w", path, err)
	}

	labelsMu.Lock()
	overrides = m
	labelsMu.Unlock()
	return len(m), nil
}

func readLabels(r io.Reader) (map[string]label, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := csv.NewReader(transform.NewReader(r, decoder))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	m := make(map[string]label)
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(record[0]), "code") {
				continue
			}
		}
		if len(record) < 3 || strings.TrimSpace(record[0]) == "" {
			continue
		}
		m[strings.TrimSpace(record[0])] = label{en: record[1], bn: record[2]}
	}
	return m, nil
}

// Label resolves a status, zone or invoice caption. Unknown codes come back unchanged.
func Label(tag language.Tag, code string) string {
	labelsMu.RLock()
	l, ok := overrides[code]
	labelsMu.RUnlock()
	if !ok {
		l, ok = builtinLabels[code]
	}
	if !ok {
		return code
	}
	if isBengali(tag) && l.bn != "" {
		return l.bn
	}
	if l.en != "" {
		return l.en
	}
	return code
}

// Labels returns every known caption in the given language.
func Labels(tag language.Tag) map[string]string {
	out := make(map[string]string, len(builtinLabels))
	for code := range builtinLabels {
		out[code] = Label(tag, code)
	}
	labelsMu.RLock()
	codes := make([]string, 0, len(overrides))
	for code := range overrides {
		codes = append(codes, code)
	}
	labelsMu.RUnlock()
	for _, code := range codes {
		out[code] = Label(tag, code)
	}
	return out
}

// GetLabelsHandler serves the caption map for ?lang= / Accept-Language.
func GetLabelsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := Negotiate(r)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"lang":   tag.String(),
			"labels": Labels(tag),
		})
	}
}
