package book

import (
	"database/sql"
	"fmt"
)

// StoredAccount is one accounts row read back from a saved book.
type StoredAccount struct {
	GUID          string
	Name          string
	Type          string
	CommodityGUID string // "" when NULL
	SCU           int
	ParentGUID    string // "" when NULL
	Code          string
	Description   string
}

// StoredCommodity is one commodities row read back from a saved book.
type StoredCommodity struct {
	GUID      string
	Namespace string
	Mnemonic  string
	Fullname  string
	Fraction  int
}

// Info is the books row of a saved book.
type Info struct {
	GUID             string
	RootGUID         string
	TemplateRootGUID string
}

func openRead(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return conn, nil
}

// ReadInfo returns the books row of the book at path.
func ReadInfo(path string) (Info, error) {
	conn, err := openRead(path)
	if err != nil {
		return Info{}, err
	}
	defer conn.Close()

	var info Info
	err = conn.QueryRow(`SELECT guid, root_account_guid, root_template_guid FROM books`).
		Scan(&info.GUID, &info.RootGUID, &info.TemplateRootGUID)
	if err != nil {
		return Info{}, fmt.Errorf("reading books row: %w", err)
	}
	return info, nil
}

// ReadAccounts returns the accounts rows of the book at path in
// insertion order.
func ReadAccounts(path string) ([]StoredAccount, error) {
	conn, err := openRead(path)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(`
		SELECT guid, name, account_type,
		       COALESCE(commodity_guid, ''), commodity_scu,
		       COALESCE(parent_guid, ''), COALESCE(code, ''), COALESCE(description, '')
		FROM accounts ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("reading accounts: %w", err)
	}
	defer rows.Close()

	var out []StoredAccount
	for rows.Next() {
		var a StoredAccount
		if err := rows.Scan(&a.GUID, &a.Name, &a.Type, &a.CommodityGUID, &a.SCU, &a.ParentGUID, &a.Code, &a.Description); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ReadCommodities returns the commodities rows of the book at path in
// insertion order.
func ReadCommodities(path string) ([]StoredCommodity, error) {
	conn, err := openRead(path)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(`
		SELECT guid, namespace, mnemonic, COALESCE(fullname, ''), fraction
		FROM commodities ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("reading commodities: %w", err)
	}
	defer rows.Close()

	var out []StoredCommodity
	for rows.Next() {
		var c StoredCommodity
		if err := rows.Scan(&c.GUID, &c.Namespace, &c.Mnemonic, &c.Fullname, &c.Fraction); err != nil {
			return nil, fmt.Errorf("scanning commodity: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ReadVersions returns the table_versions entries of the book at path.
func ReadVersions(path string) (map[string]int, error) {
	conn, err := openRead(path)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(`SELECT table_name, table_version FROM versions`)
	if err != nil {
		return nil, fmt.Errorf("reading versions: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var name string
		var version int
		if err := rows.Scan(&name, &version); err != nil {
			return nil, fmt.Errorf("scanning version: %w", err)
		}
		out[name] = version
	}
	return out, rows.Err()
}
