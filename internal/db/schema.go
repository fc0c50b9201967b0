package db

// SchemaSQL contains the database schema initialization SQL.
// conv_log ids are the conversation ids themselves; legacy rows use the
// "{date}_{sequence}" pattern, post-cutover rows carry hash linkage fields.
const SchemaSQL = `
    -- ==========================================================================
    -- CONVERSATIONAL LOG
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS conv_log SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS date ON conv_log TYPE datetime;
    DEFINE FIELD IF NOT EXISTS qa ON conv_log TYPE string ASSERT $value IN ["Q", "A"];
    DEFINE FIELD IF NOT EXISTS content ON conv_log TYPE string;
    DEFINE FIELD IF NOT EXISTS user_id ON conv_log TYPE string;
    DEFINE FIELD IF NOT EXISTS hash_value ON conv_log TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS hash_ref ON conv_log TYPE option<string>;

    DEFINE INDEX IF NOT EXISTS conv_log_date ON conv_log FIELDS date;
    DEFINE INDEX IF NOT EXISTS conv_log_user ON conv_log FIELDS user_id;

    -- ==========================================================================
    -- CLICK LOG
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS clicked_log SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS conv_id ON clicked_log TYPE string;
    DEFINE FIELD IF NOT EXISTS clicked ON clicked_log TYPE string ASSERT $value IN ["o", "x"];
    DEFINE FIELD IF NOT EXISTS user_id ON clicked_log TYPE string;

    DEFINE INDEX IF NOT EXISTS clicked_log_conv ON clicked_log FIELDS conv_id;

    -- ==========================================================================
    -- STOCK CLASSIFICATION
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS stock_cls SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS conv_id ON stock_cls TYPE string;
    DEFINE FIELD IF NOT EXISTS ensemble ON stock_cls TYPE string ASSERT $value IN ["o", "x"];
    DEFINE FIELD IF NOT EXISTS gpt_res ON stock_cls TYPE string;
    DEFINE FIELD IF NOT EXISTS enc_res ON stock_cls TYPE string;

    DEFINE INDEX IF NOT EXISTS stock_cls_conv ON stock_cls FIELDS conv_id;
`
