package main

import (
	"log"
	"os"

	"github.com/Carmen-Shannon/holo-go/shell"
	"github.com/Carmen-Shannon/holo-go/shell/renderer"
	"github.com/Carmen-Shannon/holo-go/shell/window"
	"go.uber.org/zap"
)

const defaultURL = "https://servo.org/hl-home/index.html"

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer logger.Sync()

	url := defaultURL
	if len(os.Args) > 1 {
		url = os.Args[1]
	}

	opts := []shell.ShellBuilderOption{
		shell.WithLogger(logger),
		shell.WithWindowOptions(
			window.WithTitle("Immersive Shell"),
		),
		shell.WithRendererOptions(
			renderer.WithPresentMode(renderer.PresentModeVSync),
		),
		shell.WithEngine(url),
	}
	if addr := os.Getenv("HOLOSHELL_DIAG_ADDR"); addr != "" {
		opts = append(opts, shell.WithDiagAddr(addr))
	}

	s, err := shell.NewShell(opts...)
	if err != nil {
		logger.Fatal("creating shell", zap.Error(err))
	}
	s.Run()
}
