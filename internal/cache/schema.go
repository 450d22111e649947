package cache

const schemaSQL = `
CREATE TABLE IF NOT EXISTS expenses (
    position   INTEGER PRIMARY KEY,
    id         TEXT NOT NULL UNIQUE,
    title      TEXT NOT NULL,
    amount     TEXT NOT NULL,
    category   TEXT NOT NULL,
    date       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_meta (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL
);
`
