package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/webasoo/oasgen/core"
	"github.com/webasoo/oasgen/redoc"
	"github.com/webasoo/oasgen/scalar"
	"github.com/webasoo/oasgen/swagger"
)

func commandName() string {
	if len(os.Args) == 0 {
		return "oasgen"
	}
	base := filepath.Base(os.Args[0])
	if strings.HasSuffix(strings.ToLower(base), ".exe") {
		base = base[:len(base)-len(filepath.Ext(base))]
	}
	base = strings.TrimSpace(base)
	if base == "" || strings.EqualFold(base, "main") {
		return "oasgen"
	}
	return base
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate", "gen":
		if err := runGenerate(os.Args[2:]); err != nil {
			log.Fatalf("oasgen generate: %v", err)
		}
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			log.Fatalf("oasgen serve: %v", err)
		}
	case "help", "-h", "--help", "-help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	definition := fs.String("definition", "api.yaml", "YAML API definition to generate from")
	output := fs.String("o", "", "output file (default <module-root>/openapi.yaml; .json extension switches encoding)")
	title := fs.String("title", "", "override the document title")
	version := fs.String("version", "", "override the document version")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s generate [flags]\n\n", commandName())
		fmt.Fprintln(fs.Output(), "Flags:")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output())
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	def, err := core.LoadDefinition(*definition)
	if err != nil {
		return err
	}
	if strings.TrimSpace(*title) != "" {
		def.Title = strings.TrimSpace(*title)
	}
	if strings.TrimSpace(*version) != "" {
		def.Version = strings.TrimSpace(*version)
	}

	apis, registry, err := def.Build()
	if err != nil {
		return err
	}
	doc, err := core.GenerateWith(apis, def.Config, registry)
	if err != nil {
		return err
	}
	dst, err := core.SaveDocument(doc, *output)
	if err != nil {
		return err
	}

	fmt.Printf("generated %s\n", dst)
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	specPath := fs.String("spec", "openapi.yaml", "OpenAPI document to serve")
	addr := fs.String("addr", ":8080", "listen address")
	ui := fs.String("ui", "swagger", "UI flavour: swagger, redoc or scalar")
	title := fs.String("title", "", "page title")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s serve [flags]\n\n", commandName())
		fmt.Fprintln(fs.Output(), "Flags:")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output())
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	spec, err := os.ReadFile(*specPath)
	if err != nil {
		return fmt.Errorf("read spec %q: %w", *specPath, err)
	}

	var handler http.Handler
	var mount string
	switch strings.ToLower(strings.TrimSpace(*ui)) {
	case "", "swagger":
		handler = swagger.HandlerWithOptions(spec, swagger.UIOptions{Title: *title})
		mount = "/swagger"
	case "redoc":
		handler = redoc.HandlerWithOptions(spec, redoc.UIOptions{Title: *title})
		mount = "/redoc"
	case "scalar":
		handler = scalar.HandlerWithOptions(spec, scalar.UIOptions{Title: *title})
		mount = "/scalar"
	default:
		return fmt.Errorf("unknown ui %q", *ui)
	}

	mux := http.NewServeMux()
	mux.Handle(mount, handler)
	mux.Handle(mount+"/", handler)
	mux.Handle("/", http.RedirectHandler(mount, http.StatusTemporaryRedirect))

	log.Printf("serving %s on %s%s", *specPath, *addr, mount)
	return http.ListenAndServe(*addr, mux)
}

func printUsage() {
	cmd := commandName()
	fmt.Printf(`%s - OpenAPI generation CLI

Usage: %s <command> [arguments]

Available Commands:
  generate    Build an OpenAPI document from a YAML API definition
  serve       Serve a documentation UI for an existing document
  help        Show this help message

Examples:
  %[1]s generate -definition api.yaml
  %[1]s generate -definition api.yaml -o api/openapi.json
  %[1]s serve -spec openapi.yaml -ui redoc
`, cmd, cmd)
}
