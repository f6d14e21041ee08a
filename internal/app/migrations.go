package app

// SQL-миграции встроены в код для упрощения деплоя.
// Порядок важен: scores ссылается на users.
var migrations = []struct {
	version int
	sql     string
}{
	{1, migration001Users},
	{2, migration002Sessions},
	{3, migration003Scores},
	{4, migration004Daily},
}

var migration001Users = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    username VARCHAR(64) NOT NULL,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_lower ON users (LOWER(username));
`

var migration002Sessions = `
CREATE TABLE IF NOT EXISTS sessions (
    token TEXT PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    expires_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions (expires_at);

CREATE TABLE IF NOT EXISTS login_attempts (
    id BIGSERIAL PRIMARY KEY,
    username VARCHAR(64) NOT NULL,
    attempt_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    success BOOLEAN NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_login_attempts_username_time ON login_attempts (username, attempt_time DESC);
`

// submitted_at ставит база: клиент время не присылает.
// Частичный уникальный индекс даёт не больше одного результата ежедневной задачи на пользователя в день.
var migration003Scores = `
CREATE TABLE IF NOT EXISTS scores (
    id BIGSERIAL PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    value BIGINT NOT NULL CHECK (value >= 0),
    awarded BIGINT NOT NULL CHECK (awarded >= 0),
    submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    daily_date DATE
);

CREATE INDEX IF NOT EXISTS idx_scores_user_submitted ON scores (user_id, submitted_at DESC);
CREATE UNIQUE INDEX IF NOT EXISTS idx_scores_user_daily ON scores (user_id, daily_date) WHERE daily_date IS NOT NULL;
`

// Первичный ключ по дате и есть защита от двух головоломок на один день.
var migration004Daily = `
CREATE TABLE IF NOT EXISTS daily_challenges (
    challenge_date DATE PRIMARY KEY,
    puzzle TEXT NOT NULL CHECK (puzzle <> ''),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
