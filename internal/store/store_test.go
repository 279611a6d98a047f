package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/matthewbaird/formcanvas/internal/schema"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "formcanvas.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSchemaSaveAndGet(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	sc := schema.NewWithSection("Hiring intake", "Candidate")
	sec := sc.Items[0].Section
	sec.Fields = append(sec.Fields, schema.DefaultField(schema.TypeShortText))
	schema.RenumberFields(sec.Fields)

	if err := st.SaveSchema(ctx, sc); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := st.GetSchema(ctx, sc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Hiring intake" {
		t.Errorf("title = %q", got.Title)
	}
	if len(got.Items) != 1 || got.Items[0].Section == nil {
		t.Fatalf("items not preserved: %+v", got.Items)
	}
	if len(got.Items[0].Section.Fields) != 1 {
		t.Errorf("section fields = %d, want 1", len(got.Items[0].Section.Fields))
	}
}

func TestSaveSchemaUpsert(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	sc := schema.New("Before")
	if err := st.SaveSchema(ctx, sc); err != nil {
		t.Fatalf("save: %v", err)
	}
	sc.Title = "After"
	sc.Touch()
	if err := st.SaveSchema(ctx, sc); err != nil {
		t.Fatalf("resave: %v", err)
	}

	infos, err := st.ListSchemas(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("got %d schemas, want 1", len(infos))
	}
	if infos[0].Title != "After" {
		t.Errorf("title = %q, want After", infos[0].Title)
	}
}

func TestGetSchemaNotFound(t *testing.T) {
	st := openTestStore(t)
	_, err := st.GetSchema(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteSchemaCascadesResponses(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	sc := schema.New("Survey")
	if err := st.SaveSchema(ctx, sc); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := st.SaveResponse(ctx, sc.ID, map[string]any{"f1": "yes"}, time.Now().UTC()); err != nil {
		t.Fatalf("save response: %v", err)
	}

	if err := st.DeleteSchema(ctx, sc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	resps, err := st.ListResponses(ctx, sc.ID)
	if err != nil {
		t.Fatalf("list responses: %v", err)
	}
	if len(resps) != 0 {
		t.Errorf("responses survived delete: %d", len(resps))
	}
	if err := st.DeleteSchema(ctx, sc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestResponsesNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	sc := schema.New("Survey")
	if err := st.SaveSchema(ctx, sc); err != nil {
		t.Fatalf("save: %v", err)
	}
	base := time.Now().UTC()
	first, err := st.SaveResponse(ctx, sc.ID, map[string]any{"n": float64(1)}, base)
	if err != nil {
		t.Fatalf("save response: %v", err)
	}
	second, err := st.SaveResponse(ctx, sc.ID, map[string]any{"n": float64(2)}, base.Add(time.Second))
	if err != nil {
		t.Fatalf("save response: %v", err)
	}

	resps, err := st.ListResponses(ctx, sc.ID)
	if err != nil {
		t.Fatalf("list responses: %v", err)
	}
	if len(resps) != 2 {
		t.Fatalf("got %d responses, want 2", len(resps))
	}
	if resps[0].ID != second || resps[1].ID != first {
		t.Errorf("order = [%s %s], want newest first", resps[0].ID, resps[1].ID)
	}
	if resps[0].Values["n"] != float64(2) {
		t.Errorf("values not preserved: %+v", resps[0].Values)
	}
}

func TestCurateFollowsDocumentOrder(t *testing.T) {
	sc := schema.New("Curated")
	name := schema.DefaultField(schema.TypeShortText)
	name.Label = "Name"
	auto := schema.DefaultField(schema.TypeUDFEmail)
	dept := schema.DefaultField(schema.TypeDropdown)
	dept.Label = "Department"
	sec := schema.Section{ID: schema.NewID(), Title: "Work", Fields: []schema.Field{dept}}
	sc.Items = []schema.Item{schema.FieldItem(&name), schema.FieldItem(&auto), schema.SectionItem(&sec)}
	schema.RenumberItems(sc.Items)

	values := map[string]any{
		dept.ID: "eng",
		name.ID: "Ada",
		auto.ID: "ada@example.com",
		"ghost": "ignored",
	}

	curated := Curate(sc, values)
	if len(curated) != 2 {
		t.Fatalf("got %d curated values, want 2", len(curated))
	}
	if curated[0].Label != "Name" || curated[0].Value != "Ada" {
		t.Errorf("first = %+v, want Name/Ada", curated[0])
	}
	if curated[1].Label != "Department" || curated[1].Value != "eng" {
		t.Errorf("second = %+v, want Department/eng", curated[1])
	}
}
