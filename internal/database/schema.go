package database

// Schema is the DDL for the shop tables. Tests and the seed script apply it
// against a fresh database; production databases are migrated out of band.
const Schema = `
	CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price DECIMAL(10,2) NOT NULL CHECK (price >= 0),
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		category_id TEXT NOT NULL REFERENCES categories(id),
		season TEXT NOT NULL DEFAULT '',
		region TEXT NOT NULL DEFAULT '',
		farmer TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
	CREATE INDEX IF NOT EXISTS idx_products_active ON products(is_active);

	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		order_number TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		payment_status TEXT NOT NULL,
		shipping_address JSONB NOT NULL,
		billing_address JSONB NOT NULL,
		subtotal DECIMAL(10,2) NOT NULL CHECK (subtotal >= 0),
		mwst DECIMAL(10,2) NOT NULL CHECK (mwst >= 0),
		shipping_cost DECIMAL(10,2) NOT NULL CHECK (shipping_cost >= 0),
		total DECIMAL(10,2) NOT NULL CHECK (total >= 0),
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number);

	CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id TEXT NOT NULL REFERENCES products(id),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		unit_price DECIMAL(10,2) NOT NULL CHECK (unit_price >= 0),
		line_total DECIMAL(10,2) NOT NULL CHECK (line_total >= 0)
	);

	CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
`
