// Package loader prepares the database and bulk-loads catalog data.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"feriwala/admin"
	"feriwala/database"
	"feriwala/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"
)

var productColumns = []string{"name", "category", "description", "regularPrice", "discountPrice", "images", "code"}

// InitDatabase applies pending migrations and moves the order counter past any stored order number.
func InitDatabase(db *sqlx.DB) error {
	zap.S().Info("Applying database migrations...")
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	ctx := context.Background()
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for sequence initialization: %w", err)
	}
	defer tx.Rollback()

	if err := database.InitializeOrderSequence(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sequence initialization: %w", err)
	}
	zap.S().Info("Order sequence initialized.")
	return nil
}

// ImportProductsCSV loads products from a CSV file. See ImportProducts for the format.
func ImportProductsCSV(db *sqlx.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer f.Close()
	return ImportProducts(context.Background(), db, f)
}

// ImportProducts reads name,category,description,regularPrice,discountPrice,images,code rows.
// The images column is "|"-separated. A leading UTF-8 BOM and a header row are skipped.
// Missing categories are created. Either every row is stored or none is.
func ImportProducts(ctx context.Context, db *sqlx.DB, src io.Reader) (count int, err error) {
	r := csv.NewReader(transform.NewReader(src, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			zap.S().Warnw("Rolling back product import", "error", err)
			tx.Rollback()
			count = 0
		} else {
			err = tx.Commit()
			if err != nil {
				count = 0
				err = fmt.Errorf("failed to commit product import: %w", err)
			}
		}
	}()

	line := 0
	for {
		row, readErr := r.Read()
		if readErr == io.EOF {
			break
		}
		line++
		if readErr != nil {
			return 0, fmt.Errorf("line %d: %w", line, readErr)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(row[0]), productColumns[0]) {
			continue
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		if len(row) < len(productColumns)-1 {
			return 0, fmt.Errorf("line %d: expected %d columns, got %d", line, len(productColumns), len(row))
		}

		p, rowErr := productFromRow(row)
		if rowErr != nil {
			return 0, fmt.Errorf("line %d: %w", line, rowErr)
		}
		c, catErr := database.EnsureCategoryInTx(ctx, tx, p.Category)
		if catErr != nil {
			return 0, fmt.Errorf("line %d: %w", line, catErr)
		}
		p.Category = c.Name
		if insErr := database.InsertProduct(ctx, tx, p); insErr != nil {
			return 0, fmt.Errorf("line %d: %w", line, insErr)
		}
		count++
	}

	zap.S().Infof("Imported %d products", count)
	return count, nil
}

func productFromRow(row []string) (*model.Product, error) {
	field := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	in := model.ProductInput{
		Name:        field(0),
		Category:    field(1),
		Description: field(2),
		Code:        field(6),
	}
	var err error
	if in.RegularPrice, err = decimal.NewFromString(field(3)); err != nil {
		return nil, model.NewValidationError(model.MsgInvalidPrice, "regularPrice")
	}
	if in.DiscountPrice, err = decimal.NewFromString(field(4)); err != nil {
		return nil, model.NewValidationError(model.MsgInvalidPrice, "discountPrice")
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	images := model.StringList{}
	for _, img := range strings.Split(field(5), "|") {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}

	now := time.Now().UTC()
	return &model.Product{
		ID:            uuid.Must(uuid.NewV7()),
		Name:          in.Name,
		Category:      in.Category,
		Description:   in.Description,
		RegularPrice:  in.RegularPrice,
		DiscountPrice: in.DiscountPrice,
		Images:        images,
		Code:          in.Code,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Seed is the YAML document read by LoadSeedFile.
type Seed struct {
	DeliveryCharge *struct {
		InsideDhaka  string `yaml:"insideDhaka"`
		OutsideDhaka string `yaml:"outsideDhaka"`
	} `yaml:"deliveryCharge"`
	Categories []struct {
		Name  string `yaml:"name"`
		Image string `yaml:"image"`
	} `yaml:"categories"`
	Sliders  []string `yaml:"sliders"`
	Products []struct {
		Name          string   `yaml:"name"`
		Category      string   `yaml:"category"`
		Description   string   `yaml:"description"`
		RegularPrice  string   `yaml:"regularPrice"`
		DiscountPrice string   `yaml:"discountPrice"`
		Images        []string `yaml:"images"`
		Code          string   `yaml:"code"`
	} `yaml:"products"`
	Admins []struct {
		Email    string     `yaml:"email"`
		Password string     `yaml:"password"`
		Role     model.Role `yaml:"role"`
	} `yaml:"admins"`
}

// SeedResult counts what LoadSeedFile stored.
type SeedResult struct {
	Categories int
	Sliders    int
	Products   int
	Admins     int
}

// LoadSeedFile reads a YAML seed and stores its records. Existing admins are left alone.
func LoadSeedFile(db *sqlx.DB, path string) (SeedResult, error) {
	var res SeedResult
	raw, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("could not read seed %s: %w", path, err)
	}
	var seed Seed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return res, fmt.Errorf("could not parse seed %s: %w", path, err)
	}

	ctx := context.Background()
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if dc := seed.DeliveryCharge; dc != nil {
		inside, err1 := decimal.NewFromString(dc.InsideDhaka)
		outside, err2 := decimal.NewFromString(dc.OutsideDhaka)
		if err1 != nil || err2 != nil {
			return res, model.NewValidationError(model.MsgInvalidDeliveryCharge, "deliveryCharge")
		}
		c := model.DeliveryCharge{InsideDhaka: inside, OutsideDhaka: outside}
		if err := c.Validate(); err != nil {
			return res, err
		}
		if err := database.UpsertDeliveryCharge(ctx, tx, c); err != nil {
			return res, err
		}
	}

	for _, sc := range seed.Categories {
		name := strings.TrimSpace(sc.Name)
		if name == "" {
			return res, model.NewValidationError(model.MsgNameRequired, "categories")
		}
		if _, err := database.GetCategoryByName(ctx, tx, name); err == nil {
			continue
		}
		c := model.Category{ID: uuid.Must(uuid.NewV7()), Name: name, Image: sc.Image, CreatedAt: time.Now().UTC()}
		if err := database.InsertCategory(ctx, tx, &c); err != nil {
			return res, err
		}
		res.Categories++
	}

	for _, img := range seed.Sliders {
		now := time.Now().UTC()
		s := model.SliderImage{ID: uuid.Must(uuid.NewV7()), ImageURL: img, CreatedAt: now, UpdatedAt: now}
		if err := database.InsertSliderImage(ctx, tx, &s); err != nil {
			return res, err
		}
		res.Sliders++
	}

	for i, sp := range seed.Products {
		p, err := productFromRow([]string{
			sp.Name, sp.Category, sp.Description, sp.RegularPrice, sp.DiscountPrice,
			strings.Join(sp.Images, "|"), sp.Code,
		})
		if err != nil {
			return res, fmt.Errorf("product %d: %w", i+1, err)
		}
		c, err := database.EnsureCategoryInTx(ctx, tx, p.Category)
		if err != nil {
			return res, err
		}
		p.Category = c.Name
		if err := database.InsertProduct(ctx, tx, p); err != nil {
			return res, err
		}
		res.Products++
	}

	for _, sa := range seed.Admins {
		role := sa.Role
		if role == "" {
			role = model.RoleAdmin
		}
		if _, err := admin.Create(ctx, tx, sa.Email, sa.Password, role); err != nil {
			if errors.Is(err, database.ErrConflict) {
				zap.S().Infow("seed admin exists, skipping", "email", sa.Email)
				continue
			}
			return res, fmt.Errorf("admin %s: %w", sa.Email, err)
		}
		res.Admins++
	}

	if err := tx.Commit(); err != nil {
		return SeedResult{}, fmt.Errorf("failed to commit seed: %w", err)
	}
	zap.S().Infow("Seed loaded", "categories", res.Categories, "sliders", res.Sliders,
		"products", res.Products, "admins", res.Admins)
	return res, nil
}
