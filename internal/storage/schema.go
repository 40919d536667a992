package storage

// MetaSchema is the SQL schema for the central _meta.db database.
const MetaSchema = `
CREATE TABLE IF NOT EXISTS campaigns (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    description TEXT DEFAULT '',
    db_path     TEXT NOT NULL,
    status      TEXT NOT NULL DEFAULT 'active'
                CHECK(status IN ('active', 'archived')),
    created_at  TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_campaigns_status ON campaigns(status);
`

// DesignSchema is the SQL schema for each per-campaign database.
const DesignSchema = `
CREATE TABLE IF NOT EXISTS designs (
    id          TEXT PRIMARY KEY,
    kind        TEXT NOT NULL,
    name        TEXT NOT NULL DEFAULT '',
    motif       TEXT NOT NULL DEFAULT '',
    score       REAL NULL,
    format      TEXT NOT NULL DEFAULT '',
    input       TEXT NOT NULL DEFAULT '{}',
    output      TEXT NOT NULL DEFAULT '',
    created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
    deleted_at  TEXT NULL
);

CREATE VIRTUAL TABLE IF NOT EXISTS designs_fts USING fts5(
    kind,
    name,
    motif,
    input,
    content='designs',
    content_rowid='rowid'
);

CREATE INDEX IF NOT EXISTS idx_designs_active ON designs(created_at) WHERE deleted_at IS NULL;
CREATE INDEX IF NOT EXISTS idx_designs_kind ON designs(kind) WHERE deleted_at IS NULL;
`

// DesignTriggers keep designs_fts in sync with the designs table.
const DesignTriggers = `
CREATE TRIGGER IF NOT EXISTS designs_ai AFTER INSERT ON designs BEGIN
    INSERT INTO designs_fts(rowid, kind, name, motif, input) VALUES (new.rowid, new.kind, new.name, new.motif, new.input);
END;
CREATE TRIGGER IF NOT EXISTS designs_ad AFTER DELETE ON designs BEGIN
    INSERT INTO designs_fts(designs_fts, rowid, kind, name, motif, input) VALUES('delete', old.rowid, old.kind, old.name, old.motif, old.input);
END;
CREATE TRIGGER IF NOT EXISTS designs_au AFTER UPDATE ON designs BEGIN
    INSERT INTO designs_fts(designs_fts, rowid, kind, name, motif, input) VALUES('delete', old.rowid, old.kind, old.name, old.motif, old.input);
    INSERT INTO designs_fts(rowid, kind, name, motif, input) VALUES (new.rowid, new.kind, new.name, new.motif, new.input);
END;
`

const dsnPragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"

func dsn(path string) string { return "file:" + path + dsnPragmas }
