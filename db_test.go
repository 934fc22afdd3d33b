package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/robalobadob/wordscramble/server/internal/config"
	"github.com/robalobadob/wordscramble/server/internal/words"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := openDB(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := migrate(db, migrationsFS); err != nil {
			t.Fatalf("migrate run %d: %v", i+1, err)
		}
	}
	var applied int
	if err := db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&applied); err != nil {
		t.Fatal(err)
	}
	if applied == 0 {
		t.Error("no migrations recorded")
	}
	if _, err := db.Exec(`INSERT INTO dictionary(word, locale, added_at) VALUES ('silent','en','now')`); err != nil {
		t.Errorf("dictionary table missing: %v", err)
	}
}

func TestBuildDictionary(t *testing.T) {
	if err := words.Init(); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	dict, admin, db, err := buildDictionary(ctx, &config.Config{Dictionary: "static", Locale: "en"})
	if err != nil || admin != nil || db != nil {
		t.Fatalf("static: admin=%v db=%v err=%v", admin, db, err)
	}
	if !dict.IsKnownWord("silent", "en") {
		t.Error("static dictionary missing silent")
	}

	cfg := &config.Config{Dictionary: "sqlite", Locale: "en", DBPath: filepath.Join(t.TempDir(), "dict.db")}
	dict, admin, db, err = buildDictionary(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if admin == nil {
		t.Error("sqlite dictionary should accept admin words")
	}
	if !dict.IsKnownWord("silent", "en") {
		t.Error("sqlite dictionary was not seeded")
	}
	if n, err := admin.Add(ctx, "en", "zzzz"); err != nil || n != 1 {
		t.Fatalf("add: n=%d err=%v", n, err)
	}
	if !dict.IsKnownWord("zzzz", "en") {
		t.Error("added word not visible")
	}
}
