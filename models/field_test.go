package models

import (
	"errors"
	"image"
	"testing"

	"cardserver/config"
	"cardserver/db"
	"cardserver/psd"

	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	config.MYSQL_DSN = ""
	config.SQLITE_FILE = t.TempDir() + "/test.db"
	db.Init()
	Init()
}

func testRegions() []psd.Region {
	return []psd.Region{
		{Name: "Fundo", Kind: psd.KindOther, BBox: image.Rect(0, 0, 600, 380)},
		{Name: "Nome", Kind: psd.KindText, BBox: image.Rect(40, 60, 400, 100)},
		{Name: "RG", Kind: psd.KindText, BBox: image.Rect(40, 120, 300, 160)},
		{Name: "Validade", Kind: psd.KindText, BBox: image.Rect(40, 180, 300, 220)},
	}
}

func TestFieldsFromRegions(t *testing.T) {
	fields := FieldsFromRegions(SideFront, testRegions())
	if len(fields) != 3 {
		t.Fatalf("expected 3 text fields, got %d", len(fields))
	}
	expected := []string{"Nome", "RG", "Validade"}
	for i, f := range fields {
		if f.OriginalName != expected[i] {
			t.Errorf("field %d: expected %q, got %q", i, expected[i], f.OriginalName)
		}
		if f.DisplayName != f.OriginalName {
			t.Errorf("field %d: display name should default to %q, got %q", i, f.OriginalName, f.DisplayName)
		}
		if !f.Editable {
			t.Errorf("field %d: should default to editable", i)
		}
		if f.SortOrder != i {
			t.Errorf("field %d: expected sort order %d, got %d", i, i, f.SortOrder)
		}
	}
	if got := fields[0].BBox(); got != image.Rect(40, 60, 400, 100) {
		t.Errorf("bbox not preserved: %v", got)
	}
}

func TestReplaceFields(t *testing.T) {
	setupTestDB(t)

	count, err := ReplaceFields(SideFront, testRegions())
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Fatalf("expected 3 fields, got %d", count)
	}
	// Second side must not be affected by front replacements
	if _, err = ReplaceFields(SideBack, []psd.Region{
		{Name: "Observacoes", Kind: psd.KindText, BBox: image.Rect(10, 10, 500, 80)},
	}); err != nil {
		t.Fatal(err)
	}

	// Customize, then replace the front with a smaller set
	front, err := FieldsForSide(SideFront)
	if err != nil {
		t.Fatal(err)
	}
	if err = UpdateFieldConfig(front[0].ID, "Nome completo", false); err != nil {
		t.Fatal(err)
	}
	count, err = ReplaceFields(SideFront, []psd.Region{
		{Name: "Nome", Kind: psd.KindText, BBox: image.Rect(50, 70, 410, 110)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected 1 field after replace, got %d", count)
	}

	front, err = FieldsForSide(SideFront)
	if err != nil {
		t.Fatal(err)
	}
	if len(front) != 1 {
		t.Fatalf("expected 1 front field, got %d", len(front))
	}
	// Replace resets customizations to the template defaults
	if front[0].DisplayName != "Nome" || !front[0].Editable {
		t.Errorf("replace should reset customizations: %+v", front[0])
	}
	if front[0].BBox() != image.Rect(50, 70, 410, 110) {
		t.Errorf("new bbox not stored: %v", front[0].BBox())
	}

	back, err := FieldsForSide(SideBack)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 1 || back[0].OriginalName != "Observacoes" {
		t.Errorf("back side should be untouched, got %+v", back)
	}
}

func TestUpdateFieldConfigUnknownID(t *testing.T) {
	setupTestDB(t)

	if _, err := ReplaceFields(SideFront, testRegions()); err != nil {
		t.Fatal(err)
	}
	err := UpdateFieldConfig(99999, "Whatever", false)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for unknown id, got %v", err)
	}
	// The existing schema must be untouched
	front, err := FieldsForSide(SideFront)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range front {
		if f.DisplayName == "Whatever" || !f.Editable {
			t.Errorf("unknown-id update leaked into %+v", f)
		}
	}
}

func TestReplaceFieldsEmpty(t *testing.T) {
	setupTestDB(t)

	if _, err := ReplaceFields(SideFront, testRegions()); err != nil {
		t.Fatal(err)
	}
	count, err := ReplaceFields(SideFront, nil)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("expected 0 fields, got %d", count)
	}
	front, err := FieldsForSide(SideFront)
	if err != nil {
		t.Fatal(err)
	}
	if len(front) != 0 {
		t.Errorf("expected empty schema, got %d fields", len(front))
	}
}

func TestSystemConfigRoundTrip(t *testing.T) {
	setupTestDB(t)

	cfg, err := LoadSystemConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Ready() {
		t.Error("fresh config should not be ready")
	}
	if cfg.PhotoRegion() != nil {
		t.Error("fresh config should have no photo region")
	}

	cfg.SetTemplatePath(SideFront, "templates/front.psd")
	cfg.SetTemplatePath(SideBack, "templates/back.psd")
	cfg.SetPhotoRegion(image.Rect(400, 60, 560, 280))
	if err = cfg.Save(); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadSystemConfig()
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Ready() {
		t.Error("config with both templates should be ready")
	}
	if loaded.TemplatePath(SideFront) != "templates/front.psd" {
		t.Errorf("front path lost: %q", loaded.TemplatePath(SideFront))
	}
	region := loaded.PhotoRegion()
	if region == nil || *region != image.Rect(400, 60, 560, 280) {
		t.Errorf("photo region lost: %v", region)
	}
}

func TestGenerationHistory(t *testing.T) {
	setupTestDB(t)

	first := NewGeneration("Maria Silva", "12.345.678-9")
	if err := first.Create(); err != nil {
		t.Fatal(err)
	}
	second := NewGeneration("Joao Santos", "98.765.432-1")
	if err := second.Create(); err != nil {
		t.Fatal(err)
	}
	if first.Token == second.Token {
		t.Fatal("tokens must be unique")
	}

	gen, err := GenerationByToken(second.Token)
	if err != nil {
		t.Fatal(err)
	}
	if gen.PersonName != "Joao Santos" {
		t.Errorf("wrong generation: %+v", gen)
	}

	gens, err := LatestGenerations(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(gens) != 2 {
		t.Fatalf("expected 2 generations, got %d", len(gens))
	}
	if gens[0].Token != second.Token {
		t.Errorf("history should be most recent first, got %s", gens[0].Token)
	}

	count, err := CountGenerations()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}

	if _, err = GenerationByToken("no-such-token"); err == nil {
		t.Error("expected error for unknown token")
	}
}
