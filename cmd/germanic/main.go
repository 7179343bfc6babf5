package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/klauspost/compress/zstd"
	"github.com/mattn/go-isatty"

	germanic "github.com/germanicdev/germanic"
	"github.com/germanicdev/germanic/grm"
	"github.com/germanicdev/germanic/i18n"
)

func main() {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "compile":
		compileCmd(os.Args[2:])
	case "validate":
		validateCmd(os.Args[2:])
	case "inspect":
		inspectCmd(os.Args[2:])
	case "init":
		initCmd(os.Args[2:])
	case "convert":
		convertCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `germanic CLI

Usage:
  germanic compile -schema schema.json -input data.json [-o out.grm] [-z] [-lang en|de]
  germanic validate file.grm
  germanic inspect file.grm
  germanic init -input example.json -id my.schema.v1 [-o out.schema.json]
  germanic convert -input draft7.json [-o out.schema.json]

Notes:
  - Schema files ending in .yaml/.yml are parsed as YAML.
  - -z writes a zstd-compressed artifact next to the output (.zst).`)
}

func compileCmd(args []string) {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	var schemaPath, inputPath, out, lang string
	var compress bool
	fs.StringVar(&schemaPath, "schema", "", "path to schema file (.schema.json, JSON Schema or YAML)")
	fs.StringVar(&inputPath, "input", "", "path to JSON data file")
	fs.StringVar(&out, "o", "", "output filename (default: input with .grm extension)")
	fs.BoolVar(&compress, "z", false, "also write a zstd-compressed artifact")
	fs.StringVar(&lang, "lang", "en", "diagnostic language (en or de)")
	_ = fs.Parse(args)
	if schemaPath == "" || inputPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	i18n.SetLanguage(lang)

	schema, warnings := loadSchema(schemaPath)
	for _, w := range warnings {
		color.Yellow("warning: %s", w)
	}

	docSrc, err := os.ReadFile(inputPath)
	if err != nil {
		fatalf("reading input: %v", err)
	}
	doc, err := germanic.DecodeDocument(docSrc)
	if err != nil {
		reportAndExit(err)
	}
	if iss := germanic.PreValidate(docSrc, doc); len(iss) > 0 {
		reportAndExit(iss)
	}
	artifact, err := germanic.CompileValue(schema, doc)
	if err != nil {
		reportAndExit(err)
	}

	if out == "" {
		out = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".grm"
	}
	if err := os.WriteFile(out, artifact, 0o644); err != nil {
		fatalf("writing output: %v", err)
	}
	color.Green("wrote %s (%d bytes, schema %s)", out, len(artifact), schema.SchemaID)

	if compress {
		writeCompressed(out+".zst", artifact)
	}
}

func writeCompressed(path string, artifact []byte) {
	f, err := os.Create(path)
	if err != nil {
		fatalf("writing compressed output: %v", err)
	}
	defer f.Close()
	zw, err := zstd.NewWriter(f)
	if err != nil {
		fatalf("zstd: %v", err)
	}
	if _, err := zw.Write(artifact); err != nil {
		fatalf("zstd: %v", err)
	}
	if err := zw.Close(); err != nil {
		fatalf("zstd: %v", err)
	}
	color.Green("wrote %s", path)
}

func validateCmd(args []string) {
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fatalf("reading file: %v", err)
	}
	rep := grm.Inspect(data)
	if !rep.Valid {
		color.Red("invalid: %v", rep.Err)
		os.Exit(1)
	}
	color.Green("valid: schema %s, payload %d bytes", rep.SchemaID, rep.PayloadSize)
}

func inspectCmd(args []string) {
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fatalf("reading file: %v", err)
	}
	h, n, err := grm.ParseHeader(data)
	if err != nil {
		color.Red("header: %v", err)
		os.Exit(1)
	}
	fmt.Printf("schema-id:    %s\n", h.SchemaID)
	fmt.Printf("header size:  %d bytes\n", n)
	fmt.Printf("payload size: %d bytes\n", len(data)-n)
	if h.Signature != nil {
		fmt.Printf("signature:    present (% 02X...)\n", h.Signature[:8])
	} else {
		fmt.Println("signature:    none")
	}
}

func initCmd(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var inputPath, id, out string
	fs.StringVar(&inputPath, "input", "", "path to example JSON document")
	fs.StringVar(&id, "id", "", "schema id for the inferred schema")
	fs.StringVar(&out, "o", "", "output filename (default: input with .schema.json extension)")
	_ = fs.Parse(args)
	if inputPath == "" || id == "" {
		fs.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		fatalf("reading input: %v", err)
	}
	doc, err := germanic.DecodeDocument(data)
	if err != nil {
		reportAndExit(err)
	}
	schema, err := germanic.InferSchema(doc, id)
	if err != nil {
		fatalf("%v", err)
	}
	writeSchema(schema, out, inputPath)
	color.Green("inferred %d fields for %s", schema.FieldCount(), schema.SchemaID)
}

func convertCmd(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	var inputPath, out string
	fs.StringVar(&inputPath, "input", "", "path to JSON Schema Draft 7 file")
	fs.StringVar(&out, "o", "", "output filename (default: input with .schema.json extension)")
	_ = fs.Parse(args)
	if inputPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	schema, warnings := loadSchema(inputPath)
	for _, w := range warnings {
		color.Yellow("warning: %s", w)
	}
	writeSchema(schema, out, inputPath)
	color.Green("converted to %s (%d fields)", schema.SchemaID, schema.FieldCount())
}

func loadSchema(path string) (*germanic.SchemaDefinition, []string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("reading schema: %v", err)
	}
	var schema *germanic.SchemaDefinition
	var warnings []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		schema, warnings, err = germanic.ParseSchemaYAML(data)
	default:
		schema, warnings, err = germanic.ParseSchema(data)
	}
	if err != nil {
		fatalf("%v", err)
	}
	return schema, warnings
}

func writeSchema(schema *germanic.SchemaDefinition, out, inputPath string) {
	if out == "" {
		out = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".schema.json"
	}
	data, err := schema.MarshalIndentJSON()
	if err != nil {
		fatalf("encoding schema: %v", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		fatalf("writing schema: %v", err)
	}
}

func reportAndExit(err error) {
	if iss, ok := germanic.AsIssues(err); ok {
		for _, it := range iss {
			color.Red("%s: %s (%s)", it.Path, it.Message, it.Code)
		}
		os.Exit(1)
	}
	color.Red("%v", err)
	os.Exit(1)
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
