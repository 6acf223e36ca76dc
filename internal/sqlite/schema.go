package sqlite

// Schema DDL. Statements are idempotent so Open can run them on every start.
const (
	createContacts = `CREATE TABLE IF NOT EXISTS contacts (
    id TEXT PRIMARY KEY,
    ordinal INTEGER NOT NULL,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    city TEXT NOT NULL DEFAULT '',
    job TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`

	createPhones = `CREATE TABLE IF NOT EXISTS phones (
    contact_id TEXT NOT NULL,
    label TEXT NOT NULL,
    number TEXT NOT NULL,
    PRIMARY KEY (contact_id, label),
    FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
);`

	idxContactsOrdinal = `CREATE INDEX IF NOT EXISTS idx_contacts_ordinal ON contacts(ordinal);`
	idxContactsLast    = `CREATE INDEX IF NOT EXISTS idx_contacts_last_name ON contacts(last_name);`
	idxPhonesNumber    = `CREATE INDEX IF NOT EXISTS idx_phones_number ON phones(number);`
)

// schemaDDL lists all CREATE statements in dependency order.
var schemaDDL = []string{
	createContacts,
	createPhones,
	idxContactsOrdinal,
	idxContactsLast,
	idxPhonesNumber,
}
