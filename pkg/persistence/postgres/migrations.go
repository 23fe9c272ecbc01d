package postgres

// migrations returns the ordered schema migrations for the maintenance
// record store.
func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE IF NOT EXISTS users (
				email VARCHAR(255) PRIMARY KEY,
				full_name VARCHAR(255) NOT NULL DEFAULT '',
				role VARCHAR(50) NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_users_role ON users (role);

			CREATE TABLE IF NOT EXISTS work_orders (
				id VARCHAR(255) PRIMARY KEY,
				description TEXT NOT NULL DEFAULT '',
				type VARCHAR(100) NOT NULL DEFAULT '',
				priority VARCHAR(50) NOT NULL DEFAULT '',
				status VARCHAR(50) NOT NULL,
				assigned_to VARCHAR(255),
				created_by VARCHAR(255) NOT NULL DEFAULT '',
				approval_notes TEXT NOT NULL DEFAULT '',
				approval_log JSONB NOT NULL DEFAULT '[]',
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_work_orders_status ON work_orders (status);

			CREATE TABLE IF NOT EXISTS equipment (
				id VARCHAR(255) PRIMARY KEY,
				name VARCHAR(255) NOT NULL DEFAULT '',
				numero_interno VARCHAR(100) NOT NULL DEFAULT '',
				status VARCHAR(50) NOT NULL DEFAULT 'operativo',
				fecha_proxima_mantencion TIMESTAMP WITH TIME ZONE
			);
			CREATE INDEX IF NOT EXISTS idx_equipment_due ON equipment (fecha_proxima_mantencion);

			CREATE TABLE IF NOT EXISTS spare_parts (
				id VARCHAR(255) PRIMARY KEY,
				code VARCHAR(100) NOT NULL DEFAULT '',
				name VARCHAR(255) NOT NULL DEFAULT '',
				stock_actual INTEGER,
				stock_minimo INTEGER,
				activo BOOLEAN NOT NULL DEFAULT TRUE
			);
			CREATE INDEX IF NOT EXISTS idx_spare_parts_activo ON spare_parts (activo);

			CREATE TABLE IF NOT EXISTS notifications (
				id VARCHAR(255) PRIMARY KEY,
				user_email VARCHAR(255) NOT NULL,
				type VARCHAR(100) NOT NULL,
				title TEXT NOT NULL DEFAULT '',
				message TEXT NOT NULL DEFAULT '',
				metadata JSONB NOT NULL DEFAULT '{}',
				created_date TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				read BOOLEAN NOT NULL DEFAULT FALSE
			);
			CREATE INDEX IF NOT EXISTS idx_notifications_type_created
				ON notifications (type, created_date);
			CREATE INDEX IF NOT EXISTS idx_notifications_user
				ON notifications (user_email);

			CREATE TABLE IF NOT EXISTS subscriptions (
				user_email VARCHAR(255) PRIMARY KEY,
				plan VARCHAR(50) NOT NULL DEFAULT 'free',
				status VARCHAR(50) NOT NULL DEFAULT 'active',
				ends_at TIMESTAMP WITH TIME ZONE
			);
		`,
	}
}
