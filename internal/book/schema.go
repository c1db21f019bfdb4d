// Package book writes GnuCash SQLite books over mattn/go-sqlite3.
//
// Only the tables the converter populates are created: the lock and
// version bookkeeping, the books row, commodities, and accounts, plus
// the empty slots/transactions/splits/prices tables GnuCash expects to
// find. Content accumulates in one transaction and hits disk on Save.
package book

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// schemaSQL mirrors the table shapes GnuCash 3 writes for a new book.
const schemaSQL = `
CREATE TABLE gnclock ( Hostname varchar(255), PID int );

CREATE TABLE versions (
	table_name    text(50) PRIMARY KEY NOT NULL,
	table_version integer NOT NULL
);

CREATE TABLE books (
	guid               text(32) PRIMARY KEY NOT NULL,
	root_account_guid  text(32) NOT NULL,
	root_template_guid text(32) NOT NULL
);

CREATE TABLE commodities (
	guid         text(32) PRIMARY KEY NOT NULL,
	namespace    text(2048) NOT NULL,
	mnemonic     text(2048) NOT NULL,
	fullname     text(2048),
	cusip        text(2048),
	fraction     integer NOT NULL,
	quote_flag   integer NOT NULL,
	quote_source text(2048),
	quote_tz     text(2048)
);

CREATE TABLE accounts (
	guid           text(32) PRIMARY KEY NOT NULL,
	name           text(2048) NOT NULL,
	account_type   text(2048) NOT NULL,
	commodity_guid text(32),
	commodity_scu  integer NOT NULL,
	non_std_scu    integer NOT NULL,
	parent_guid    text(32),
	code           text(2048),
	description    text(2048),
	hidden         integer,
	placeholder    integer
);

CREATE TABLE slots (
	id                integer PRIMARY KEY AUTOINCREMENT NOT NULL,
	obj_guid          text(32) NOT NULL,
	name              text(4096) NOT NULL,
	slot_type         integer NOT NULL,
	int64_val         bigint,
	string_val        text(4096),
	double_val        float8,
	timespec_val      text(19),
	guid_val          text(32),
	numeric_val_num   bigint,
	numeric_val_denom bigint,
	gdate_val         text(8)
);
CREATE INDEX slots_guid_index ON slots (obj_guid);

CREATE TABLE transactions (
	guid          text(32) PRIMARY KEY NOT NULL,
	currency_guid text(32) NOT NULL,
	num           text(2048) NOT NULL,
	post_date     text(19),
	enter_date    text(19),
	description   text(2048)
);
CREATE INDEX tx_post_date_index ON transactions (post_date);

CREATE TABLE splits (
	guid            text(32) PRIMARY KEY NOT NULL,
	tx_guid         text(32) NOT NULL,
	account_guid    text(32) NOT NULL,
	memo            text(2048) NOT NULL,
	action          text(2048) NOT NULL,
	reconcile_state text(1) NOT NULL,
	reconcile_date  text(19),
	value_num       bigint NOT NULL,
	value_denom     bigint NOT NULL,
	quantity_num    bigint NOT NULL,
	quantity_denom  bigint NOT NULL,
	lot_guid        text(32)
);
CREATE INDEX splits_tx_guid_index ON splits (tx_guid);
CREATE INDEX splits_account_guid_index ON splits (account_guid);

CREATE TABLE prices (
	guid           text(32) PRIMARY KEY NOT NULL,
	commodity_guid text(32) NOT NULL,
	currency_guid  text(32) NOT NULL,
	date           text(19) NOT NULL,
	source         text(2048),
	type           text(2048),
	value_num      bigint NOT NULL,
	value_denom    bigint NOT NULL
);
`

// versionRows matches the table_versions entries GnuCash 3 records for
// the tables above. The Gnucash row carries the writing application's
// version number, Gnucash-Resave the oldest version able to read it.
var versionRows = []struct {
	table   string
	version int
}{
	{"Gnucash", 3000001},
	{"Gnucash-Resave", 19920},
	{"books", 1},
	{"commodities", 1},
	{"accounts", 1},
	{"slots", 4},
	{"transactions", 4},
	{"splits", 5},
	{"prices", 3},
}

func applySchema(conn *sql.DB) error {
	if _, err := conn.Exec(schemaSQL); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	for _, v := range versionRows {
		if _, err := conn.Exec(
			`INSERT INTO versions (table_name, table_version) VALUES (?, ?)`,
			v.table, v.version,
		); err != nil {
			return fmt.Errorf("recording version for %s: %w", v.table, err)
		}
	}
	return nil
}
