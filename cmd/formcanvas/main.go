// cmd/formcanvas is the command-line front end for the form editor. It keeps
// schemas and submitted responses in a local SQLite database and drives the
// same editor, validation, and render pipeline an embedding UI would.
//
// Usage:
//
//	formcanvas init -title "Onboarding" [-section "Basics"]
//	formcanvas list
//	formcanvas add -schema <id> -type short-text [-section <id>] [-label "Name"] [-required]
//	formcanvas section -schema <id> [-title "Details"]
//	formcanvas move -schema <id> -field <id> [-section <id>] -index 0
//	formcanvas show -schema <id> [-mode preview|response]
//	formcanvas validate -schema <id> -values values.json
//	formcanvas submit -schema <id> -values values.json
//	formcanvas responses -schema <id>
//
// Every subcommand takes -db (default formcanvas.db) and -types, a YAML file
// of extension field types loaded into the registry before anything runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/matthewbaird/formcanvas/internal/canvas"
	"github.com/matthewbaird/formcanvas/internal/codec"
	"github.com/matthewbaird/formcanvas/internal/registry"
	"github.com/matthewbaird/formcanvas/internal/render"
	"github.com/matthewbaird/formcanvas/internal/schema"
	"github.com/matthewbaird/formcanvas/internal/store"
	"github.com/matthewbaird/formcanvas/internal/validate"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("formcanvas: ")

	if len(os.Args) < 2 {
		usage()
	}
	cmd, args := os.Args[1], os.Args[2:]

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	dbPath := fs.String("db", "formcanvas.db", "path to the SQLite database")
	typesPath := fs.String("types", "", "YAML file of extension field types")

	var (
		title     = fs.String("title", "", "schema or section title")
		sectionID = fs.String("section", "", "target section id")
		schemaID  = fs.String("schema", "", "schema id")
		fieldID   = fs.String("field", "", "field id")
		fieldType = fs.String("type", "short-text", "field type to insert")
		label     = fs.String("label", "", "field label")
		required  = fs.Bool("required", false, "mark the field required")
		index     = fs.Int("index", canvas.AppendIndex, "insertion index, -1 appends")
		mode      = fs.String("mode", "preview", "render mode: preview or response")
		values    = fs.String("values", "", "JSON file of field values")
	)
	fs.Parse(args)

	reg := registry.New()
	if *typesPath != "" {
		f, err := os.Open(*typesPath)
		if err != nil {
			log.Fatalf("open types file: %v", err)
		}
		n, err := reg.LoadExtensions(f)
		f.Close()
		if err != nil {
			log.Fatalf("load extension types: %v", err)
		}
		fmt.Printf("registered %d extension types\n", n)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	switch cmd {
	case "init":
		if *title == "" {
			log.Fatal("init: -title is required")
		}
		var sc *schema.Schema
		if *sectionID != "" {
			sc = schema.NewWithSection(*title, *sectionID)
		} else {
			sc = schema.New(*title)
		}
		if err := st.SaveSchema(ctx, sc); err != nil {
			log.Fatalf("init: %v", err)
		}
		fmt.Println(sc.ID)

	case "list":
		infos, err := st.ListSchemas(ctx)
		if err != nil {
			log.Fatalf("list: %v", err)
		}
		for _, info := range infos {
			fmt.Printf("%s  %-30s  updated %s\n",
				info.ID, info.Title, info.UpdatedAt.Format(time.RFC3339))
		}

	case "add":
		ed := loadEditor(ctx, st, reg, *schemaID)
		before := len(schema.Flatten(ed.Schema()))
		ed.InsertField(schema.FieldType(*fieldType), *sectionID, *index)
		if len(schema.Flatten(ed.Schema())) == before {
			log.Fatalf("add: section %s not found", *sectionID)
		}
		if *label != "" || *required {
			upd := canvas.FieldUpdate{}
			if *label != "" {
				upd.Label = label
			}
			if *required {
				upd.Required = required
			}
			ed.UpdateField(ed.Selected(), upd)
		}
		saveEditor(ctx, st, ed)
		fmt.Println(ed.Selected())

	case "section":
		ed := loadEditor(ctx, st, reg, *schemaID)
		ed.AddSection()
		secs := ed.SectionSummaries()
		last := secs[len(secs)-1]
		if *title != "" {
			ed.UpdateSectionMeta(last.ID, canvas.SectionTitle, *title)
		}
		saveEditor(ctx, st, ed)
		fmt.Println(last.ID)

	case "move":
		if *fieldID == "" {
			log.Fatal("move: -field is required")
		}
		ed := loadEditor(ctx, st, reg, *schemaID)
		ed.MoveField(*fieldID, *sectionID, *index)
		saveEditor(ctx, st, ed)

	case "show":
		sc := loadSchema(ctx, st, *schemaID)
		view := render.New(reg).Render(sc, nil, render.Mode(*mode))
		printView(view)

	case "validate":
		sc := loadSchema(ctx, st, *schemaID)
		res := validate.New(reg).Validate(sc, loadValues(*values))
		if res.Valid {
			fmt.Println("valid")
			return
		}
		for _, iss := range res.Issues {
			fmt.Printf("%s  %s: %s\n", iss.FieldID, iss.Code, iss.Message)
		}
		os.Exit(1)

	case "submit":
		sc := loadSchema(ctx, st, *schemaID)
		rs := render.NewResponseSession(sc, reg)
		for id, v := range loadValues(*values) {
			rs.SetValue(id, v)
		}
		res := rs.Submit()
		if !res.Valid {
			for _, iss := range res.Issues {
				fmt.Printf("%s  %s: %s\n", iss.FieldID, iss.Code, iss.Message)
			}
			os.Exit(1)
		}
		at, _ := rs.Submitted()
		id, err := st.SaveResponse(ctx, sc.ID, rs.Values(), at)
		if err != nil {
			log.Fatalf("submit: %v", err)
		}
		fmt.Println(id)

	case "responses":
		sc := loadSchema(ctx, st, *schemaID)
		resps, err := st.ListResponses(ctx, sc.ID)
		if err != nil {
			log.Fatalf("responses: %v", err)
		}
		for _, r := range resps {
			fmt.Printf("%s  submitted %s\n", r.ID, r.SubmittedAt.Format(time.RFC3339))
			for _, cv := range store.Curate(sc, r.Values) {
				fmt.Printf("    %s: %v\n", cv.Label, cv.Value)
			}
		}

	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: formcanvas <init|list|add|section|move|show|validate|submit|responses> [flags]")
	os.Exit(2)
}

func loadSchema(ctx context.Context, st *store.SQLiteStore, id string) *schema.Schema {
	if id == "" {
		log.Fatal("-schema is required")
	}
	sc, err := st.GetSchema(ctx, id)
	if err != nil {
		log.Fatalf("load schema: %v", err)
	}
	return sc
}

func loadEditor(ctx context.Context, st *store.SQLiteStore, reg *registry.Registry, id string) *canvas.Editor {
	return canvas.NewEditor(loadSchema(ctx, st, id), reg)
}

func saveEditor(ctx context.Context, st *store.SQLiteStore, ed *canvas.Editor) {
	if err := st.SaveSchema(ctx, ed.Schema()); err != nil {
		log.Fatalf("save schema: %v", err)
	}
}

func loadValues(path string) map[string]any {
	if path == "" {
		return map[string]any{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read values: %v", err)
	}
	values, err := codec.UnmarshalValues(data)
	if err != nil {
		log.Fatalf("parse values: %v", err)
	}
	return values
}

func printView(v render.View) {
	fmt.Printf("%s (%s, %s layout)\n", v.Title, v.Mode, v.Layout)
	if v.Description != "" {
		fmt.Printf("  %s\n", v.Description)
	}
	for _, f := range v.Fields {
		printFieldView(f, "  ")
	}
	for _, sec := range v.Sections {
		fmt.Printf("  [%s] %s (%d/%d answered)\n", sec.Heading, sec.Title, sec.Answered, sec.Total)
		for _, f := range sec.Fields {
			printFieldView(f, "    ")
		}
	}
}

func printFieldView(f render.FieldView, indent string) {
	marker := ""
	if f.Required {
		marker = " *"
	}
	if f.Disabled {
		marker += " (disabled)"
	}
	fmt.Printf("%s%d. %s%s [%s]\n", indent, f.Number, f.Label, marker, f.Control)
}
