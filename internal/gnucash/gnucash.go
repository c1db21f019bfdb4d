// Package gnucash reads the account tree out of GnuCash XML books.
//
// GnuCash writes XML books gzip-compressed by default; Parse sniffs the
// stream and decompresses transparently. Only what the converter needs
// is decoded: accounts, their commodities, and the count-data entries.
package gnucash

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Bluebull7/pulsevector-sim/internal/model"
)

// Document is the account-level view of one GnuCash XML book.
type Document struct {
	// Accounts holds every account record in document order, template
	// accounts included.
	Accounts []model.Account

	// RootGUID is the GUID of the "Root Account" ROOT record, or "".
	RootGUID string

	// TemplateRootGUID is the GUID of the "Template Root" ROOT record, or "".
	TemplateRootGUID string

	// Counts holds the file's count-data entries, e.g. "account" -> 64.
	Counts map[string]int

	byGUID map[string]int
}

// ParseFile opens path and parses it as a GnuCash book.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// gzipMagic is the two-byte header of a gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

// Parse reads a GnuCash book, decompressing gzip input transparently.
func Parse(r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(gzipMagic))
	if err == nil && bytes.Equal(head, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer gz.Close()
		return decode(gz)
	}
	return decode(br)
}

func decode(r io.Reader) (*Document, error) {
	var raw xmlDocument
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding XML: %w", err)
	}

	doc := &Document{
		Counts: make(map[string]int),
		byGUID: make(map[string]int),
	}
	for _, c := range raw.Counts {
		doc.addCount(c)
	}
	for _, b := range raw.Books {
		for _, c := range b.Counts {
			doc.addCount(c)
		}
		for _, a := range b.Accounts {
			doc.add(a.toModel())
		}
		for _, a := range b.Templates.Accounts {
			doc.add(a.toModel())
		}
	}
	return doc, nil
}

func (d *Document) addCount(c xmlCount) {
	n, err := c.value()
	if err != nil {
		return
	}
	d.Counts[strings.TrimSpace(c.Type)] += n
}

func (d *Document) add(a model.Account) {
	if a.IsRoot() {
		switch a.Name {
		case model.RootAccountName:
			d.RootGUID = a.GUID
		case model.TemplateRootName:
			d.TemplateRootGUID = a.GUID
		}
	}
	if _, ok := d.byGUID[a.GUID]; !ok && a.GUID != "" {
		d.byGUID[a.GUID] = len(d.Accounts)
	}
	d.Accounts = append(d.Accounts, a)
}

// Account returns the record with the given GUID. When a file holds
// duplicate GUIDs the first record wins.
func (d *Document) Account(guid string) (model.Account, bool) {
	i, ok := d.byGUID[guid]
	if !ok {
		return model.Account{}, false
	}
	return d.Accounts[i], true
}

// DefaultCurrency returns the currency code on the root account's
// commodity, or fallback when there is no root account or its commodity
// is not a currency.
func (d *Document) DefaultCurrency(fallback string) string {
	root, ok := d.Account(d.RootGUID)
	if !ok {
		return fallback
	}
	if code := root.Currency(); code != "" {
		return code
	}
	return fallback
}
