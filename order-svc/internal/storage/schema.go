package storage

import "fmt"

// OrderChangesChannel is the NOTIFY channel fed by the orders trigger.
const OrderChangesChannel = "order_changes"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS restaurant_settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		restaurant_name TEXT NOT NULL DEFAULT 'Restaurant',
		currency TEXT NOT NULL DEFAULT 'EUR' CHECK (currency IN ('EUR', 'DJF', 'USD')),
		eur_to_djf NUMERIC(12, 4) NOT NULL DEFAULT 200 CHECK (eur_to_djf > 0),
		eur_to_usd NUMERIC(12, 4) NOT NULL DEFAULT 1.10 CHECK (eur_to_usd > 0),
		admin_pin_hash TEXT NOT NULL,
		security_pin_hash TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS dishes (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		price_eur NUMERIC(10, 2) NOT NULL CHECK (price_eur >= 0),
		category_id INTEGER REFERENCES categories(id) ON DELETE SET NULL,
		image_url TEXT,
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		table_number TEXT NOT NULL CHECK (table_number <> ''),
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'preparing', 'ready', 'completed')),
		total_price NUMERIC(10, 2) NOT NULL,
		customer_message TEXT,
		additional_message TEXT,
		is_paid BOOLEAN NOT NULL DEFAULT FALSE,
		is_archived BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id SERIAL PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		dish_id INTEGER REFERENCES dishes(id) ON DELETE SET NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		unit_price_eur NUMERIC(10, 2) NOT NULL,
		notes TEXT
	)`,
	"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders (status, created_at) WHERE is_archived = FALSE",
	"CREATE INDEX IF NOT EXISTS idx_orders_created ON orders (created_at)",
	"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id)",
	`CREATE OR REPLACE FUNCTION notify_order_change() RETURNS trigger AS $$
	DECLARE
		rec RECORD;
	BEGIN
		IF TG_OP = 'DELETE' THEN
			rec := OLD;
		ELSE
			rec := NEW;
		END IF;
		PERFORM pg_notify('` + OrderChangesChannel + `', json_build_object(
			'table', TG_TABLE_NAME,
			'op', TG_OP,
			'id', rec.id,
			'status', rec.status,
			'is_paid', rec.is_paid,
			'is_archived', rec.is_archived,
			'at', NOW()
		)::text);
		RETURN NULL;
	END;
	$$ LANGUAGE plpgsql`,
	"DROP TRIGGER IF EXISTS orders_notify_change ON orders",
	`CREATE TRIGGER orders_notify_change
		AFTER INSERT OR UPDATE OR DELETE ON orders
		FOR EACH ROW EXECUTE FUNCTION notify_order_change()`,
}

func (r *PostgresRepository) EnsureSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	for i, ch := range stmt {
		if ch == '\n' {
			return stmt[:i]
		}
	}
	return stmt
}
