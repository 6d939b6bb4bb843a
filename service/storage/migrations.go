package storage

const schemaV1 = `
CREATE TABLE IF NOT EXISTS analyses (
    analysis_id     INTEGER PRIMARY KEY AUTOINCREMENT,
    run_uuid        TEXT UNIQUE NOT NULL,
    account_id      TEXT NOT NULL,
    region          TEXT NOT NULL,
    analyzed_at     DATETIME DEFAULT CURRENT_TIMESTAMP,
    started_at      TEXT NOT NULL,
    finished_at     TEXT NOT NULL,
    duration_ms     INTEGER,
    flagged_groups  INTEGER DEFAULT 0,
    unused_count    INTEGER DEFAULT 0,
    warning_count   INTEGER DEFAULT 0,
    alert_count     INTEGER DEFAULT 0,
    failed_sources  TEXT,
    cli_version     TEXT,
    profile         TEXT,
    report_json     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_account_timestamp
    ON analyses(account_id, analyzed_at);
CREATE INDEX IF NOT EXISTS idx_analyses_timestamp
    ON analyses(analyzed_at DESC);

CREATE TABLE IF NOT EXISTS findings (
    finding_id      INTEGER PRIMARY KEY AUTOINCREMENT,
    account_id      TEXT NOT NULL,
    region          TEXT NOT NULL,
    finding_hash    TEXT NOT NULL,
    kind            TEXT NOT NULL,
    group_id        TEXT NOT NULL,
    group_name      TEXT,
    protocol        TEXT,
    cidr            TEXT,
    ports           TEXT,
    severity        TEXT NOT NULL,
    first_seen      TEXT NOT NULL,
    last_seen       TEXT NOT NULL,
    resolved_at     TEXT,
    status          TEXT DEFAULT 'OPEN',
    UNIQUE(account_id, region, finding_hash)
);

CREATE INDEX IF NOT EXISTS idx_findings_hash ON findings(finding_hash);
CREATE INDEX IF NOT EXISTS idx_findings_status ON findings(status);
CREATE INDEX IF NOT EXISTS idx_findings_group ON findings(group_id);

CREATE TABLE IF NOT EXISTS analysis_findings (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    analysis_id    INTEGER NOT NULL,
    finding_hash   TEXT NOT NULL,
    kind           TEXT NOT NULL,
    group_id       TEXT NOT NULL,
    cidr           TEXT,
    ports          TEXT,
    severity       TEXT NOT NULL,
    status         TEXT NOT NULL,
    FOREIGN KEY (analysis_id) REFERENCES analyses(analysis_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_analysis_findings_analysis ON analysis_findings(analysis_id);
CREATE INDEX IF NOT EXISTS idx_analysis_findings_hash ON analysis_findings(finding_hash);
`
