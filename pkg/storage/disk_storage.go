package storage

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"path"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/taxonomy"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/types"
)

const productsFile = "products.jz"
const taxonomyFile = "taxonomy.json"
const specSchemaFile = "spec-schemas.json"

// DiskStorage snapshots the catalog and taxonomy to a data directory.
// Writes go through a temp file and a rename so a crash mid-save never
// corrupts the previous snapshot.
type DiskStorage struct {
	Path string
}

func NewDiskStorage(dataPath string) *DiskStorage {
	return &DiskStorage{Path: dataPath}
}

func (d *DiskStorage) GetFileName(name string) (string, string) {
	fileName := path.Join(d.Path, name)
	return fileName, fileName + ".tmp"
}

// LoadProducts streams the product snapshot into the given handlers. A
// missing snapshot is not an error, the catalog just starts empty.
func (d *DiskStorage) LoadProducts(handlers ...types.ProductHandler) error {
	fileName, _ := d.GetFileName(productsFile)
	file, err := os.Open(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("No product snapshot at %s", fileName)
			return nil
		}
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	decoder := json.NewDecoder(zipReader)
	count := 0
	for {
		tmp := &types.Product{}
		if err = decoder.Decode(tmp); err != nil {
			break
		}
		if tmp.IsDeleted() {
			continue
		}
		for _, handler := range handlers {
			handler.HandleProduct(tmp)
		}
		count++
	}
	log.Printf("Loaded %d products from %s", count, fileName)

	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (d *DiskStorage) SaveProducts(products []types.Product) error {
	fileName, tmpFileName := d.GetFileName(productsFile)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}

	zipWriter := gzip.NewWriter(file)
	enc := json.NewEncoder(zipWriter)
	for i := range products {
		if err = enc.Encode(&products[i]); err != nil {
			break
		}
	}
	if closeErr := zipWriter.Close(); err == nil {
		err = closeErr
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpFileName)
		return err
	}
	return os.Rename(tmpFileName, fileName)
}

// LoadTaxonomy applies snapshotted categories and spec schemas onto the
// registry, leaving the built-in defaults in place when no snapshot exists.
func (d *DiskStorage) LoadTaxonomy(registry *taxonomy.Registry) error {
	categories := []taxonomy.Category{}
	if err := d.loadJson(&categories, taxonomyFile); err != nil {
		return err
	}
	if len(categories) > 0 {
		registry.UpdateCategories(categories)
	}

	schemas := map[string][]taxonomy.SpecField{}
	if err := d.loadJson(&schemas, specSchemaFile); err != nil {
		return err
	}
	for subcategory, fields := range schemas {
		registry.UpdateSpecFields(subcategory, fields)
	}
	return nil
}

func (d *DiskStorage) SaveTaxonomy(categories []taxonomy.Category) error {
	return d.saveJson(categories, taxonomyFile)
}

func (d *DiskStorage) SaveSpecSchemas(schemas map[string][]taxonomy.SpecField) error {
	return d.saveJson(schemas, specSchemaFile)
}

func (d *DiskStorage) saveJson(data any, name string) error {
	fileName, tmpFileName := d.GetFileName(name)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(file)
	err = enc.Encode(data)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpFileName)
		return err
	}
	return os.Rename(tmpFileName, fileName)
}

func (d *DiskStorage) loadJson(data any, name string) error {
	fileName, _ := d.GetFileName(name)
	file, err := os.Open(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	err = json.NewDecoder(file).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
