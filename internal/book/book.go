package book

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Bluebull7/pulsevector-sim/internal/guid"
	"github.com/Bluebull7/pulsevector-sim/internal/model"
)

// templateNamespace marks the placeholder commodity GnuCash attaches to
// scheduled-transaction template accounts.
const templateNamespace = "template"

// Book is a GnuCash SQLite book being written. Content goes through a
// single transaction that Save commits; a Book abandoned before Save
// leaves nothing committed.
type Book struct {
	conn  *sql.DB
	tx    *sql.Tx
	saved bool

	guid         string
	root         Account
	templateRoot Account

	currencies map[string]*Commodity
	names      map[string]string

	hostname string
	pid      int
}

// Account identifies a created account row, usable as a parent for
// further inserts.
type Account struct {
	GUID string
	Name string
	Type model.AccountType
}

// Commodity identifies a created commodities row.
type Commodity struct {
	GUID      string
	Namespace string
	Mnemonic  string
	Fullname  string
	Fraction  int
}

// Options adjusts book creation.
type Options struct {
	// CurrencyNames adds display names for currency codes beyond the
	// built-in table. Keys are upper-case ISO codes.
	CurrencyNames map[string]string
}

// Create makes a fresh book at path, replacing any existing file. The
// book starts with the GnuCash schema, a lock row, the template
// commodity, the default currency, and the two ROOT accounts. Callers
// must Save to commit and Close to release the file.
func Create(path, currencyCode string, opts Options) (*Book, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("removing existing %s: %w", path, err)
	}

	conn, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := applySchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	b := &Book{
		conn:       conn,
		currencies: make(map[string]*Commodity),
		names:      opts.CurrencyNames,
		hostname:   lockHostname(),
		pid:        os.Getpid(),
	}
	if err := b.lock(); err != nil {
		conn.Close()
		return nil, err
	}

	b.tx, err = conn.Begin()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	if err := b.initContent(currencyCode); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

func lockHostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "localhost"
	}
	return h
}

// lock claims the book the way GnuCash does, with a gnclock row naming
// this process. Save releases it.
func (b *Book) lock() error {
	_, err := b.conn.Exec(`INSERT INTO gnclock (Hostname, PID) VALUES (?, ?)`, b.hostname, b.pid)
	if err != nil {
		return fmt.Errorf("locking book: %w", err)
	}
	return nil
}

// initContent writes the rows every fresh book carries: the template
// commodity, the default currency, both ROOT accounts, and the books
// row tying them together.
func (b *Book) initContent(currencyCode string) error {
	tmpl := &Commodity{
		GUID:      guid.New(),
		Namespace: templateNamespace,
		Mnemonic:  templateNamespace,
		Fullname:  templateNamespace,
		Fraction:  1,
	}
	if err := b.insertCommodity(tmpl); err != nil {
		return err
	}

	cur, err := b.Commodity(currencyCode)
	if err != nil {
		return err
	}

	b.root = Account{GUID: guid.New(), Name: model.RootAccountName, Type: model.AccountTypeRoot}
	if err := b.insertAccount(b.root, cur, "", "", ""); err != nil {
		return err
	}
	b.templateRoot = Account{GUID: guid.New(), Name: model.TemplateRootName, Type: model.AccountTypeRoot}
	if err := b.insertAccount(b.templateRoot, nil, "", "", ""); err != nil {
		return err
	}

	b.guid = guid.New()
	if _, err := b.tx.Exec(
		`INSERT INTO books (guid, root_account_guid, root_template_guid) VALUES (?, ?, ?)`,
		b.guid, b.root.GUID, b.templateRoot.GUID,
	); err != nil {
		return fmt.Errorf("inserting books row: %w", err)
	}
	return nil
}

// Root returns the handle of the book's "Root Account".
func (b *Book) Root() Account { return b.root }

// TemplateRoot returns the handle of the book's "Template Root".
func (b *Book) TemplateRoot() Account { return b.templateRoot }

// Commodity returns the currency commodity for an ISO code, creating
// the row on first use. Codes are normalized to upper case, so the same
// code always maps to the same single row.
func (b *Book) Commodity(code string) (*Commodity, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if c, ok := b.currencies[code]; ok {
		return c, nil
	}
	c := &Commodity{
		GUID:      guid.New(),
		Namespace: model.CommoditySpaceCurrency,
		Mnemonic:  code,
		Fullname:  b.fullname(code),
		Fraction:  100,
	}
	if err := b.insertCommodity(c); err != nil {
		return nil, err
	}
	b.currencies[code] = c
	return c, nil
}

func (b *Book) insertCommodity(c *Commodity) error {
	_, err := b.exec(
		`INSERT INTO commodities (guid, namespace, mnemonic, fullname, cusip, fraction, quote_flag, quote_source, quote_tz)
		 VALUES (?, ?, ?, ?, '', ?, 0, NULL, NULL)`,
		c.GUID, c.Namespace, c.Mnemonic, c.Fullname, c.Fraction,
	)
	if err != nil {
		return fmt.Errorf("inserting commodity %s: %w", c.Mnemonic, err)
	}
	return nil
}

// NewAccount inserts rec as a child of parent and returns the new row's
// handle. The row gets a fresh GUID; cur may be nil for accounts
// without a currency commodity.
func (b *Book) NewAccount(parent Account, rec model.Account, cur *Commodity) (Account, error) {
	a := Account{GUID: guid.New(), Name: rec.Name, Type: rec.Type}
	if err := b.insertAccount(a, cur, parent.GUID, rec.Code, rec.Description); err != nil {
		return Account{}, err
	}
	return a, nil
}

func (b *Book) insertAccount(a Account, cur *Commodity, parentGUID, code, description string) error {
	var commodityGUID any
	scu := 0
	if cur != nil {
		commodityGUID = cur.GUID
		scu = cur.Fraction
	}
	var parent any
	if parentGUID != "" {
		parent = parentGUID
	}
	_, err := b.exec(
		`INSERT INTO accounts (guid, name, account_type, commodity_guid, commodity_scu, non_std_scu, parent_guid, code, description, hidden, placeholder)
		 VALUES (?, ?, ?, ?, ?, 0, ?, ?, ?, 0, 0)`,
		a.GUID, a.Name, string(a.Type), commodityGUID, scu, parent, code, description,
	)
	if err != nil {
		return fmt.Errorf("inserting account %s: %w", a.Name, err)
	}
	return nil
}

func (b *Book) exec(query string, args ...any) (sql.Result, error) {
	return b.tx.Exec(query, args...)
}

// Save commits the book's content and releases the lock row.
func (b *Book) Save() error {
	if b.saved {
		return errors.New("book already saved")
	}
	if err := b.tx.Commit(); err != nil {
		return fmt.Errorf("committing book: %w", err)
	}
	b.saved = true
	if _, err := b.conn.Exec(`DELETE FROM gnclock WHERE Hostname = ? AND PID = ?`, b.hostname, b.pid); err != nil {
		return fmt.Errorf("releasing lock: %w", err)
	}
	return nil
}

// Close releases the file. A book abandoned before Save is rolled back
// and unlocked first.
func (b *Book) Close() error {
	if !b.saved && b.tx != nil {
		if err := b.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			b.conn.Close()
			return fmt.Errorf("rolling back: %w", err)
		}
		_, _ = b.conn.Exec(`DELETE FROM gnclock WHERE Hostname = ? AND PID = ?`, b.hostname, b.pid)
	}
	return b.conn.Close()
}
