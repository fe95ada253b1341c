package main

import (
	"flag"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/term"

	"xraysim/internal/config"
	"xraysim/internal/console"
	"xraysim/internal/physics"
)

func main() {
	cfg := config.Load()

	width := flag.Int("width", cfg.Render.DefaultWidth, "image width in pixels")
	height := flag.Int("height", cfg.Render.DefaultHeight, "image height in pixels")
	out := flag.String("out", console.DefaultSavePath, "PNG file written by the save key")
	flag.Parse()

	if err := (physics.Shape{Height: *height, Width: *width}).Validate(); err != nil {
		log.Fatalf("invalid image size: %v", err)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatal("stdin is not a terminal")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("failed to open screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("failed to initialize screen: %v", err)
	}

	s := console.NewSession(physics.NewCalculator(cfg.Physics), screen, console.SessionConfig{
		Width:    *width,
		Height:   *height,
		SavePath: *out,
	})
	// Run waits out an in-flight render before returning
	s.Run()
	screen.Fini()
}
