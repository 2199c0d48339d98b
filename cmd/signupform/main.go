package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/goliatone/go-signupform/pkg/formdef"
	pkgopenapi "github.com/goliatone/go-signupform/pkg/openapi"
	"github.com/goliatone/go-signupform/pkg/orchestrator"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/renderers/tui"
	"github.com/goliatone/go-signupform/pkg/renderers/vanilla"
)

func main() {
	renderer := flag.String("renderer", "vanilla", "renderer to use: vanilla, tui or openapi")
	output := flag.String("output", "", "output file (stdout if empty)")
	definition := flag.String("definition", "", "form definition file (embedded registration form if empty)")
	preset := flag.String("preset", "", "JSON preset applied to the built form")
	themeName := flag.String("theme", "", "theme name for the vanilla renderer")
	variant := flag.String("variant", "", "theme variant for the vanilla renderer")
	locale := flag.String("locale", "", "locale passed to renderers")
	format := flag.String("format", string(tui.OutputFormatJSON), "tui output format: json, form or pretty")
	page := flag.Bool("page", true, "wrap vanilla output in a complete HTML document")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	options, err := orchestratorOptions(*definition, *preset, *format)
	if err != nil {
		log.Fatalf("Failed to configure: %v", err)
	}
	gen := orchestrator.New(options...)

	var out []byte
	switch *renderer {
	case "openapi":
		form, err := gen.Model(ctx, orchestrator.Request{})
		if err != nil {
			log.Fatalf("Failed to build form: %v", err)
		}
		doc, err := pkgopenapi.Export(ctx, form)
		if err != nil {
			log.Fatalf("Failed to export contract: %v", err)
		}
		out, err = doc.MarshalJSON()
		if err != nil {
			log.Fatalf("Failed to encode contract: %v", err)
		}
	default:
		req := orchestrator.Request{
			Renderer:      *renderer,
			ThemeName:     *themeName,
			ThemeVariant:  *variant,
			RenderOptions: render.RenderOptions{Locale: *locale},
		}
		out, err = gen.Generate(ctx, req)
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(130)
		}
		if err != nil {
			log.Fatalf("Failed to generate form: %v", err)
		}
		if *renderer == "vanilla" && *page {
			out, err = wrapPage(ctx, gen, *locale, out)
			if err != nil {
				log.Fatalf("Failed to wrap page: %v", err)
			}
		}
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
		return
	}
	if *renderer == "tui" {
		// already surfaced by the renderer
		return
	}
	fmt.Println(string(out))
}

func orchestratorOptions(definition, preset, format string) ([]orchestrator.Option, error) {
	selector, err := orchestrator.NewManifestSelector(orchestrator.DefaultManifest())
	if err != nil {
		return nil, err
	}

	prompt, err := tui.New(tui.WithOutputFormat(tui.OutputFormat(format)))
	if err != nil {
		return nil, err
	}
	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(prompt)

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithThemeSelector(selector),
	}

	if definition != "" {
		def, err := formdef.LoadFile(definition)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithDefinition(def))
	}
	if preset != "" {
		raw, err := os.ReadFile(preset)
		if err != nil {
			return nil, fmt.Errorf("read preset: %w", err)
		}
		transformer, err := orchestrator.NewJSONPresetTransformer(raw)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithSchemaTransformer(transformer))
	}
	return options, nil
}

func wrapPage(ctx context.Context, gen *orchestrator.Orchestrator, locale string, body []byte) ([]byte, error) {
	form, err := gen.Model(ctx, orchestrator.Request{})
	if err != nil {
		return nil, err
	}
	renderer, err := gen.Renderer("vanilla")
	if err != nil {
		return nil, err
	}
	html, ok := renderer.(*vanilla.Renderer)
	if !ok {
		return body, nil
	}
	return html.Page(form.Title, locale, body)
}
