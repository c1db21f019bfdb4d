// Package convert copies the account hierarchy of a GnuCash XML book
// into a fresh GnuCash SQLite book.
//
// The copy preserves names, types, parent/child structure, and currency
// commodities, assigning new GUIDs on the destination side. Transactions
// are never migrated; the source's transaction count is reported so the
// caller can say how much was left behind.
package convert

import (
	"log/slog"
	"sort"

	"github.com/Bluebull7/pulsevector-sim/internal/book"
	"github.com/Bluebull7/pulsevector-sim/internal/gnucash"
	"github.com/Bluebull7/pulsevector-sim/internal/model"
)

// DefaultFallbackCurrency is used when the source root declares no
// currency and the config offers no override.
const DefaultFallbackCurrency = "EUR"

// Options configures a conversion.
type Options struct {
	// FallbackCurrency becomes the book's default currency when the
	// source root account has none. Empty means EUR.
	FallbackCurrency string

	// CurrencyNames adds display names for created currency commodities.
	CurrencyNames map[string]string

	// Logger receives progress and warnings. Nil means slog.Default().
	Logger *slog.Logger
}

// Result summarizes one conversion.
type Result struct {
	OutputPath          string
	Created             int
	DefaultCurrency     string
	Flattened           bool
	SkippedTransactions int
}

// Run converts the book at input into a SQLite book at output.
func Run(input, output string, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	fallback := opts.FallbackCurrency
	if fallback == "" {
		fallback = DefaultFallbackCurrency
	}

	doc, err := gnucash.ParseFile(input)
	if err != nil {
		return Result{}, err
	}

	currency := doc.DefaultCurrency(fallback)
	log.Debug("parsed source book",
		"accounts", len(doc.Accounts),
		"declared_accounts", doc.Counts["account"],
		"default_currency", currency)

	b, err := book.Create(output, currency, book.Options{CurrencyNames: opts.CurrencyNames})
	if err != nil {
		return Result{}, err
	}
	defer b.Close()

	c := &copier{
		book:     b,
		children: childIndex(doc.Accounts),
		created:  make(map[string]book.Account),
	}
	if doc.RootGUID != "" {
		c.created[doc.RootGUID] = b.Root()
	}
	if doc.TemplateRootGUID != "" {
		c.created[doc.TemplateRootGUID] = b.TemplateRoot()
	}

	flattened := doc.RootGUID == ""
	if flattened {
		// The source has no "Root Account" record to walk from, so
		// every record lands under the new root, orphaned subtrees
		// losing their internal nesting.
		log.Warn("source has no root account, flattening hierarchy under the new root",
			"accounts", len(doc.Accounts))
		err = c.copyFlat(doc.Accounts)
	} else {
		err = c.copySubtree(doc.RootGUID, b.Root())
	}
	if err != nil {
		return Result{}, err
	}

	if err := b.Save(); err != nil {
		return Result{}, err
	}

	log.Debug("wrote book", "path", output, "created", c.count)
	return Result{
		OutputPath:          output,
		Created:             c.count,
		DefaultCurrency:     currency,
		Flattened:           flattened,
		SkippedTransactions: doc.Counts["transaction"],
	}, nil
}

// copier tracks the source-to-destination account mapping while the
// tree is rebuilt.
type copier struct {
	book     *book.Book
	children map[string][]model.Account
	created  map[string]book.Account
	count    int
}

// childIndex groups non-ROOT records by parent GUID.
func childIndex(accounts []model.Account) map[string][]model.Account {
	children := make(map[string][]model.Account)
	for _, a := range accounts {
		if a.IsRoot() {
			continue
		}
		children[a.ParentGUID] = append(children[a.ParentGUID], a)
	}
	return children
}

// copySubtree walks depth-first from parentGUID, creating each child
// under parent. Children are created in ascending name order so the
// destination ordering is deterministic.
func (c *copier) copySubtree(parentGUID string, parent book.Account) error {
	kids := c.children[parentGUID]
	sortByName(kids)
	for _, rec := range kids {
		acc, err := c.copyAccount(rec, parent)
		if err != nil {
			return err
		}
		if err := c.copySubtree(rec.GUID, acc); err != nil {
			return err
		}
	}
	return nil
}

// copyFlat handles sources without a resolvable root: every non-ROOT
// record is created in name order, attached to its parent when that
// parent was already created and to the new root otherwise.
func (c *copier) copyFlat(accounts []model.Account) error {
	var recs []model.Account
	for _, a := range accounts {
		if a.IsRoot() {
			continue
		}
		recs = append(recs, a)
	}
	sortByName(recs)

	for _, rec := range recs {
		parent, ok := c.created[rec.ParentGUID]
		if !ok {
			parent = c.book.Root()
		}
		if _, err := c.copyAccount(rec, parent); err != nil {
			return err
		}
	}
	return nil
}

func (c *copier) copyAccount(rec model.Account, parent book.Account) (book.Account, error) {
	var cur *book.Commodity
	if code := rec.Currency(); code != "" {
		resolved, err := c.book.Commodity(code)
		if err != nil {
			return book.Account{}, err
		}
		cur = resolved
	}

	acc, err := c.book.NewAccount(parent, rec, cur)
	if err != nil {
		return book.Account{}, err
	}
	c.created[rec.GUID] = acc
	c.count++
	return acc, nil
}

func sortByName(recs []model.Account) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Name < recs[j].Name
	})
}
