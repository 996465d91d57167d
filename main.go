package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/loaders"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/xerrors"
)

var cmdRoot = &cobra.Command{
	Use:   "raytracer",
	Short: "Phong raytracer for spheres, planes and triangles",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog reads its settings from the standard flag set
		return flag.CommandLine.Parse(nil)
	},
}

var (
	scenesDir string
	sceneName string
	outDir    string
	workers   int
	tileSize  int
	depth     int
)

func init() {
	cmdRoot.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	cmdRoot.PersistentFlags().StringVar(&scenesDir, "scenes-dir", "scenes", "Directory searched for JSON scenes")

	cmdRender.Flags().StringVar(&sceneName, "scene", "default", "Built-in scene name, JSON scene name or path to a .json file")
	cmdRender.Flags().StringVar(&outDir, "out", "output", "Directory the pictures are written to")
	cmdRender.Flags().IntVar(&workers, "workers", 0, "Number of parallel workers (0 = one per CPU)")
	cmdRender.Flags().IntVar(&tileSize, "tile-size", renderer.DefaultConfig().TileSize, "Side length of a render tile in pixels")
	cmdRender.Flags().IntVar(&depth, "depth", -1, "Override the recursion depth of the scene (-1 = keep)")
}

var cmdRender = &cobra.Command{
	Use:   "render",
	Short: "Render every picture of a scene to PNG files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		s, err := createScene(sceneName)
		if err != nil {
			return err
		}
		if depth >= 0 {
			s.RecursionDepth = depth
		}

		glog.Infof("Rendering scene %q: %d bodies, %d lights, %d pictures at %dx%d",
			s.Name, s.GetPrimitiveCount(), len(s.World.Lights()), len(s.Pictures), s.Camera.Width, s.Camera.Height)

		var progress io.Writer
		if term.IsTerminal(int(os.Stderr.Fd())) {
			progress = os.Stderr
		}

		config := renderer.Config{Workers: workers, TileSize: tileSize}
		paths, err := renderScene(ctx, s, config, createOutputDir(outDir, s.Name), progress)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	},
}

var cmdScenes = &cobra.Command{
	Use:   "scenes",
	Short: "List the built-in and JSON scenes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := scene.ListAllScenes(scenesDir)
		if err != nil {
			return err
		}
		for _, info := range infos {
			fmt.Printf("%-20s %-8s %s\n", info.ID, info.Type, info.Description)
		}
		return nil
	},
}

var cmdCompare = &cobra.Command{
	Use:   "compare a.png b.png",
	Short: "Print the largest per-channel difference of two images",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loaders.LoadImage(args[0])
		if err != nil {
			return err
		}
		b, err := loaders.LoadImage(args[1])
		if err != nil {
			return err
		}
		diff, err := loaders.MaxDifference(a, b)
		if err != nil {
			return err
		}
		fmt.Printf("%g\n", diff)
		return nil
	},
}

// createScene resolves a built-in scene name, the name of a JSON scene in the
// scenes directory, or a path to a JSON scene file
func createScene(name string) (*scene.Scene, error) {
	return loaders.ResolveScene(name, scenesDir)
}

// createOutputDir returns the directory the pictures of a scene are written to
func createOutputDir(base, sceneName string) string {
	return filepath.Join(base, sceneName)
}

// renderScene renders every picture of the scene into dir and returns the written
// file names. Progress lines are written to progress unless it is nil.
func renderScene(ctx context.Context, s *scene.Scene, config renderer.Config, dir string, progress io.Writer) ([]string, error) {
	rt, err := renderer.NewSceneRaytracer(s, config, core.GlogLogger{Level: 1})
	if err != nil {
		return nil, err
	}

	var (
		paths []string
		mu    sync.Mutex // Tiles finish on several workers at once
	)
	for i, picture := range s.Pictures {
		if progress != nil {
			n, total := i+1, len(s.Pictures)
			rt.SetProgress(func(done, tiles int) {
				mu.Lock()
				defer mu.Unlock()
				fmt.Fprintf(progress, "\rpicture %d/%d: %3d%%", n, total, 100*done/tiles)
			})
		}

		img, stats, err := rt.Render(ctx, picture)
		if progress != nil {
			fmt.Fprintln(progress)
		}
		if err != nil {
			return paths, xerrors.Errorf("while rendering picture %d: %w", i+1, err)
		}

		path := filepath.Join(dir, fmt.Sprintf("picture_%d.png", i+1))
		if err := loaders.SavePNG(path, img); err != nil {
			return paths, err
		}
		glog.Infof("Saved %s (%v, average luminance %.3f)", path, stats, renderer.CalculateAverageLuminance(img))
		paths = append(paths, path)
	}
	return paths, nil
}

func main() {
	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	if err := renderer.RegisterMetrics(); err != nil {
		glog.Fatalf("Failed to register metrics: %v", err)
	}

	cmdRoot.AddCommand(cmdRender, cmdScenes, cmdCompare)

	if err := cmdRoot.Execute(); err != nil {
		glog.Flush()
		os.Exit(1)
	}
}
