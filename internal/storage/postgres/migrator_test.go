package postgres

import "testing"

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations()
	if err != nil {
		t.Fatalf("load migrations: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("expected at least one embedded migration")
	}

	var prev int64
	for _, m := range migrations {
		if m.Version <= prev {
			t.Fatalf("migrations are not sorted: %d after %d", m.Version, prev)
		}
		prev = m.Version

		if m.UpSQL == "" || m.DownSQL == "" {
			t.Fatalf("migration %d_%s is missing a script", m.Version, m.Name)
		}
	}
}

func TestMigrationFilePattern(t *testing.T) {
	valid := []string{"0001_init.up.sql", "0001_init.down.sql", "0002_add_index.up.sql"}
	for _, name := range valid {
		if migrationFilePattern.FindStringSubmatch(name) == nil {
			t.Errorf("expected %q to match", name)
		}
	}

	invalid := []string{"init.up.sql", "0001-init.up.sql", "0001_init.sql"}
	for _, name := range invalid {
		if migrationFilePattern.FindStringSubmatch(name) != nil {
			t.Errorf("expected %q not to match", name)
		}
	}
}
