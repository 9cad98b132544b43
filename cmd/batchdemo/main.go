// Command batchdemo classifies the renderables of a YAML scene into
// draw-call batches and prints the result.
package main

import (
	_ "embed"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/gogpu/batch"
	"github.com/gogpu/batch/atlas"
	"github.com/gogpu/batch/shader"
)

//go:embed scene.yaml
var defaultScene []byte

// options holds the command-line settings.
type options struct {
	scenePath string
	pagesDir  string
	maxCat    int
}

func main() {
	var (
		opts    options
		verbose = flag.Bool("v", false, "log classification decisions")
		watch   = flag.Bool("watch", false, "re-run whenever the scene file changes")
	)
	flag.StringVar(&opts.scenePath, "scene", "", "scene file (default: built-in scene)")
	flag.StringVar(&opts.pagesDir, "pages", "", "directory to write atlas pages as PNG")
	flag.IntVar(&opts.maxCat, "max", 0, "maximum number of catalogues (0 = unlimited)")
	flag.Parse()

	if *verbose {
		batch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(os.Stdout, opts); err != nil {
		log.Fatal(err)
	}

	if *watch {
		if opts.scenePath == "" {
			log.Fatal("-watch requires -scene")
		}
		if err := watchScene(opts.scenePath, func() {
			if err := run(os.Stdout, opts); err != nil {
				log.Printf("Run failed: %v", err)
			}
		}); err != nil {
			log.Fatalf("Watch failed: %v", err)
		}
	}
}

// run loads the scene, classifies it and reports the batches to w.
func run(w io.Writer, opts options) error {
	scene, err := loadScene(opts.scenePath)
	if err != nil {
		return fmt.Errorf("failed to load scene: %w", err)
	}

	programs, err := compilePrograms(scene.Shaders)
	if err != nil {
		return fmt.Errorf("failed to compile shaders: %w", err)
	}

	manager, err := atlas.NewManager(scene.AtlasConfig(),
		atlas.WithLabel("demo"),
		atlas.WithSource(atlas.SourceFunc(swatch)))
	if err != nil {
		return fmt.Errorf("invalid atlas config: %w", err)
	}

	pool := batch.NewPool(
		batch.WithAtlasFactory(manager.NewPage),
		batch.WithMaxCatalogues(opts.maxCat),
	)

	placed := classify(w, pool, scene, programs)
	printBatches(w, pool)

	stats := pool.Stats()
	fmt.Fprintf(w, "\n%d/%d objects in %d batches (%d probes, %d refusals, %d atlas pages)\n",
		placed, len(scene.Objects), pool.Len(), stats.Probes, stats.Refusals, manager.PageCount())

	if opts.pagesDir != "" {
		if err := writePages(opts.pagesDir, manager.Pages()); err != nil {
			return fmt.Errorf("failed to write pages: %w", err)
		}
		log.Printf("Atlas pages saved to %s\n", opts.pagesDir)
	}
	return nil
}

func loadScene(path string) (*Scene, error) {
	if path == "" {
		return ParseScene(defaultScene)
	}
	return LoadScene(path)
}

// compilePrograms compiles the built-in sprite shaders once per program
// name, giving each program its own shader identity.
func compilePrograms(names []string) (map[string]Program, error) {
	programs := make(map[string]Program, len(names))
	for _, name := range names {
		vs, err := shader.Compile(name+"_vs", shader.StageVertex, shader.SpriteVertexSource)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		fs, err := shader.Compile(name+"_fs", shader.StageFragment, shader.SpriteFragmentSource)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		programs[name] = Program{Vertex: vs, Fragment: fs}
	}
	return programs, nil
}

// classify places every object and reports the ones that could not be placed.
func classify(w io.Writer, pool *batch.Pool, scene *Scene, programs map[string]Program) int {
	placed := 0
	for i, r := range scene.Renderables(programs) {
		if _, err := pool.Place(r); err != nil {
			fmt.Fprintf(w, "skip %s: %v\n", scene.Objects[i].Name, err)
			continue
		}
		placed++
	}
	return placed
}

func printBatches(w io.Writer, pool *batch.Pool) {
	for i, c := range pool.Catalogues() {
		fmt.Fprintf(w, "batch %d: %s\n", i, c)
		if ids := c.Textures(); len(ids) > 0 {
			fmt.Fprintf(w, "  textures %v\n", ids)
		}
	}
}

// swatch generates a small flat colored image for a texture ID.
func swatch(id batch.TextureID) (image.Image, bool) {
	c := color.RGBA{
		R: uint8(id * 67),  //nolint:gosec // wraps intentionally
		G: uint8(id * 131), //nolint:gosec // wraps intentionally
		B: uint8(id * 29),  //nolint:gosec // wraps intentionally
		A: 255,
	}
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img, true
}

func writePages(dir string, pages []*atlas.Grid) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, g := range pages {
		path := filepath.Join(dir, g.Label()+".png")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := png.Encode(f, g.Image()); err != nil {
			_ = f.Close()
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
