package storage

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/matst80/slask-filters/pkg/common/jsoncompat"
	"github.com/matst80/slask-filters/pkg/presentation"
	"github.com/matst80/slask-filters/pkg/types"
)

const customAttributesFile = "custom-attributes.json"
const messagesFile = "messages.json"

// LoadCustomAttributes replaces the attributes of config with the stored ones.
func (d *DiskStorage) LoadCustomAttributes(config *types.CustomAttributeConfig) error {
	attributes := make([]*types.CustomAttribute, 0)
	if err := d.LoadJson(&attributes, customAttributesFile); err != nil {
		return fmt.Errorf("load custom attributes: %w", err)
	}
	config.Replace(attributes)
	log.Printf("Loaded %d custom attributes", len(config.Names()))
	return nil
}

// LoadMessages returns the defaults overridden by the stored catalog, if any.
func (d *DiskStorage) LoadMessages() (presentation.Messages, error) {
	overrides := presentation.Messages{}
	err := d.LoadJson(&overrides, messagesFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return presentation.DefaultMessages(), fmt.Errorf("load messages: %w", err)
	}
	return presentation.DefaultMessages().Merge(overrides), nil
}

func (d *DiskStorage) LoadJson(data any, filename string) error {
	file, err := os.Open(d.FileName(filename))
	if err != nil {
		return err
	}
	defer file.Close()

	err = jsoncompat.NewDecoder(file).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
