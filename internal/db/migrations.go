package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'listing_type') THEN
			CREATE TYPE listing_type AS ENUM ('Order It', 'Secure It', 'Buy It');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'vehicle_status') THEN
			CREATE TYPE vehicle_status AS ENUM ('Available', 'In Transit', 'Sold');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'car_listing_status') THEN
			CREATE TYPE car_listing_status AS ENUM ('available', 'sold');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title TEXT NOT NULL,
		brand VARCHAR(100) NOT NULL,
		model VARCHAR(100) NOT NULL,
		variant VARCHAR(100),
		year INTEGER NOT NULL,
		price INTEGER,
		price_min INTEGER,
		price_max INTEGER,
		mileage INTEGER,
		mileage_min INTEGER,
		mileage_max INTEGER,
		transmission VARCHAR(20),
		fuel_type VARCHAR(20),
		drivetrain VARCHAR(50),
		exterior_color VARCHAR(50),
		import_source VARCHAR(100) NOT NULL DEFAULT 'Japan',
		auction_grade VARCHAR(20),
		eta TIMESTAMPTZ,
		listing_type listing_type NOT NULL,
		status vehicle_status NOT NULL DEFAULT 'Available',
		description TEXT,
		images JSONB NOT NULL DEFAULT '[]',
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		published BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_brand ON vehicles (brand);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_model ON vehicles (model);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_year ON vehicles (year);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_listing_type ON vehicles (listing_type);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_status ON vehicles (status);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_published ON vehicles (published);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_created_at ON vehicles (created_at);`,
	`CREATE TABLE IF NOT EXISTS car_listings (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		make VARCHAR(100) NOT NULL,
		model VARCHAR(100) NOT NULL,
		year INTEGER NOT NULL,
		price INTEGER NOT NULL,
		mileage INTEGER NOT NULL,
		description TEXT,
		images JSONB NOT NULL DEFAULT '[]',
		status car_listing_status NOT NULL DEFAULT 'available',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_car_listings_status ON car_listings (status);`,
	`CREATE TABLE IF NOT EXISTS blogs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		author VARCHAR(100) NOT NULL,
		publication_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		images JSONB NOT NULL DEFAULT '[]',
		tags JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_blogs_publication_date ON blogs (publication_date);`,
	`CREATE TABLE IF NOT EXISTS form_submissions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(200) NOT NULL,
		email VARCHAR(200) NOT NULL,
		phone VARCHAR(50),
		vehicle TEXT,
		budget VARCHAR(100),
		message TEXT NOT NULL,
		read BOOLEAN NOT NULL DEFAULT FALSE,
		submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_form_submissions_submitted_at ON form_submissions (submitted_at);`,
	`CREATE TABLE IF NOT EXISTS admins (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		username VARCHAR(100) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE OR REPLACE FUNCTION set_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_vehicles_updated_at') THEN
			CREATE TRIGGER trg_vehicles_updated_at
				BEFORE UPDATE ON vehicles
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_blogs_updated_at') THEN
			CREATE TRIGGER trg_blogs_updated_at
				BEFORE UPDATE ON blogs
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_admins_updated_at') THEN
			CREATE TRIGGER trg_admins_updated_at
				BEFORE UPDATE ON admins
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
